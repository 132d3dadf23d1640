package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/coinsphere/coinsphere/renderer"
	"github.com/google/subcommands"
)

type allocationCmd struct {
	reportFlags
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the share of each token in the portfolio value" }
func (*allocationCmd) Usage() string {
	return `coinsphere allocation [-json] [-u]

  Displays every holding with its current value and its share of the total
  value, largest first.
`
}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	allocation := p.Allocation()
	if c.json {
		return printJSON(allocation)
	}
	printMarkdown(renderer.AllocationMarkdown(p.Name, allocation))
	return subcommands.ExitSuccess
}
