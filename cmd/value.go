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

// reportFlags are the flags shared by the report commands.
type reportFlags struct {
	feedFlags
	json   bool
	update bool
}

func (c *reportFlags) SetFlags(f *flag.FlagSet) {
	c.feedFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "print the report as JSON")
	f.BoolVar(&c.update, "u", false, "update with current prices before calculating the report, the portfolio file is not modified")
}

// load returns the portfolio, with fresh prices if requested.
func (c *reportFlags) load(ctx context.Context) (*coinsphere.Portfolio, error) {
	p, err := DecodePortfolio()
	if err != nil || !c.update {
		return p, err
	}
	u, release, err := c.updater(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	if _, err := u.Refresh(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

type valueCmd struct {
	reportFlags
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "display the portfolio value, cost and profit" }
func (*valueCmd) Usage() string {
	return `coinsphere value [-json] [-u]

  Displays the total value of the portfolio at current prices, its cost basis
  and the unrealized profit or loss.
`
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	stats := p.Stats()
	if c.json {
		return printJSON(stats)
	}
	printMarkdown(renderer.StatsMarkdown(p.Name, stats))
	return subcommands.ExitSuccess
}
