package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Environment variables passed to extensions, with the global flag values.
const (
	EnvPortfolioFile   = "COINSPHERE_PORTFOLIO_FILE"
	EnvEnvFile         = "COINSPHERE_ENV_FILE"
	EnvDefaultCurrency = "COINSPHERE_CURRENCY"
)

// extensionPrefix is the prefix of the executables extending coinsphere.
const extensionPrefix = "coinsphere-"

// RunExtension runs the coinsphere-<subcommand> executable found in the PATH
// with args, and returns its exit code. found is false when there is no such
// executable.
func RunExtension(subcommand string, args []string) (found bool, code int) {
	name := extensionPrefix + subcommand
	path, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}

	ext := exec.Command(path, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = append(os.Environ(),
		EnvPortfolioFile+"="+*portfolioFile,
		EnvEnvFile+"="+*envFile,
		EnvDefaultCurrency+"="+*defaultCurrency,
	)

	err = ext.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exitErr):
		return true, exitErr.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "Error executing extension %q: %v\n", name, err)
		return true, 1
	}
}
