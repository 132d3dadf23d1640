// Package cmd implements the CLI application to manage a crypto portfolio.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/coinsphere/coinsphere"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Environment variables read by the application, possibly from the env file.
const (
	EnvAPIKey        = "COINGECKO_API_KEY"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
)

type group struct {
	name     string
	commands []subcommands.Command
}

var groups = []group{
	{"portfolio", []subcommands.Command{&initCmd{}, &addCmd{}, &sellCmd{}, &historyCmd{}, &pricesCmd{}}},
	{"reports", []subcommands.Command{&valueCmd{}, &allocationCmd{}, &performanceCmd{}}},
	{"tools", []subcommands.Command{&calcCmd{}, &topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

// Commands returns the names of all subcommands, by group.
func Commands() map[string][]string {
	names := make(map[string][]string)
	for _, g := range groups {
		for _, cmd := range g.commands {
			names[g.name] = append(names[g.name], cmd.Name())
		}
	}
	return names
}

// IsCommand reports whether name is a built-in subcommand.
func IsCommand(name string) bool {
	switch name {
	case "help", "flags", "commands":
		return true
	}
	for _, g := range groups {
		for _, cmd := range g.commands {
			if cmd.Name() == name {
				return true
			}
		}
	}
	return false
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.json", "Path to the portfolio file, YAML if it ends with .yaml or .yml")
var envFile = flag.String("env-file", ".env", "Path to an optional dotenv file defining "+EnvAPIKey+" and "+EnvRedisAddr)
var defaultCurrency = flag.String("currency", coinsphere.DefaultCurrency, "Reporting currency of a new portfolio")

// LoadEnv loads the env file into the environment. Variables already set are
// kept. A missing file is not an error.
func LoadEnv() {
	err := godotenv.Load(*envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, cannot load env file %q: %v", *envFile, err)
	}
}

// DecodePortfolio loads the portfolio file. A missing file is an empty
// portfolio.
func DecodePortfolio() (*coinsphere.Portfolio, error) {
	p, err := coinsphere.LoadPortfolio(*portfolioFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, portfolio file does not exist, using an empty portfolio instead")
		return coinsphere.NewPortfolio("", *defaultCurrency)
	}
	return p, err
}

// EncodePortfolio saves the portfolio file.
func EncodePortfolio(p *coinsphere.Portfolio) error {
	return coinsphere.SavePortfolio(*portfolioFile, p)
}

// printMarkdown renders md for the terminal, GLAMOUR_STYLE selects the style.
func printMarkdown(md string) {
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printJSON prints v as indented JSON.
func printJSON(v any) subcommands.ExitStatus {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(data))
	return subcommands.ExitSuccess
}
