package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/coinsphere/coinsphere"
	"github.com/coinsphere/coinsphere/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	symbol string
	json   bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the recorded transactions" }
func (*historyCmd) Usage() string {
	return `coinsphere history [-json] [-s <symbol>]

  Displays the transactions recorded by add and sell, oldest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "only the transactions of this token")
	f.BoolVar(&c.json, "json", false, "print the transactions as JSON")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	txs := p.TransactionsOf(c.symbol)
	if c.json {
		if txs == nil {
			txs = []coinsphere.Transaction{}
		}
		return printJSON(txs)
	}
	printMarkdown(renderer.TransactionsMarkdown(p.Name, p.Currency, txs))
	return subcommands.ExitSuccess
}
