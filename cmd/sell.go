package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type sellCmd struct {
	txFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "remove tokens from the portfolio" }
func (*sellCmd) Usage() string {
	return `coinsphere sell -s <symbol> -a <amount> [-p <price>] [-fee <fee>] [-notes <text>]

  Removes tokens from a holding and records the transaction, the average buy
  price is unchanged. With -p it is a sale, without it a transfer out.
  A holding sold down to zero is removed.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	c.txFlags.SetFlags(f)
	f.StringVar(&c.price, "p", "", "Sell price per token in the portfolio currency")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := DecodePortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	h, err := p.Record(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodePortfolio(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(describe(p, h))
	return subcommands.ExitSuccess
}
