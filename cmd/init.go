package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/coinsphere/coinsphere"
	"github.com/google/subcommands"
)

type initCmd struct {
	name     string
	currency string
	force    bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create an empty portfolio file" }
func (*initCmd) Usage() string {
	return `coinsphere init [-n <name>] [-c <currency>] [-f]

  Creates an empty portfolio valued in the given currency.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "Portfolio name")
	f.StringVar(&c.currency, "c", "", "Reporting currency (ISO 4217), defaults to the -currency global flag")
	f.BoolVar(&c.force, "f", false, "overwrite an existing portfolio file")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.currency == "" {
		c.currency = *defaultCurrency
	}
	p, err := coinsphere.NewPortfolio(c.name, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if _, err := os.Stat(*portfolioFile); err == nil && !c.force {
		fmt.Fprintf(os.Stderr, "Error: portfolio file %q already exists, use -f to overwrite it\n", *portfolioFile)
		return subcommands.ExitFailure
	}

	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created %s portfolio %s\n", p.Currency, *portfolioFile)
	return subcommands.ExitSuccess
}
