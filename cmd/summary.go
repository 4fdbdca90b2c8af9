package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/carbonplan/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	noProjection bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the plan metrics, MACC, breakdown and projection" }
func (*summaryCmd) Usage() string {
	return `cpl [-budget <amount>] [-target <tonnes>] [-alloc <id>=<spend>]... summary [-no-projection]

  Displays the full plan: budget and target metrics, the funded interventions
  ranked by cost per tonne, the spend per category and the multi-year
  projection.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noProjection, "no-projection", false, "Do not display the multi-year projection.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := renderSession(s, renderer.PlanRenderOptions{SkipProjection: c.noProjection})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing plan: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
