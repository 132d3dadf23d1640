package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/coinsphere/coinsphere/renderer"
	"github.com/google/subcommands"
)

type performanceCmd struct {
	reportFlags
	top int
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display the profit or loss of each holding" }
func (*performanceCmd) Usage() string {
	return `coinsphere performance [-json] [-u] [-top <n>]

  Displays the cost, value and unrealized profit or loss of every holding,
  best percentage first. With -top only the n best holdings with a known
  cost are listed.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	c.reportFlags.SetFlags(f)
	f.IntVar(&c.top, "top", 0, "list only the n top performers with a known cost")
}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := c.load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	perf := p.Performance()
	if c.top > 0 {
		perf = perf.Top(c.top)
	}
	if c.json {
		return printJSON(perf)
	}
	printMarkdown(renderer.PerformanceMarkdown(p.Name, perf))
	return subcommands.ExitSuccess
}
