package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/carbonplan/renderer"
	"github.com/google/subcommands"
)

type breakdownCmd struct{}

func (*breakdownCmd) Name() string     { return "breakdown" }
func (*breakdownCmd) Synopsis() string { return "display the spend per category" }
func (*breakdownCmd) Usage() string {
	return `cpl [-alloc <id>=<spend>]... breakdown

  Displays the spend of every funded category, biggest first, with its share
  of the total spend.
`
}

func (*breakdownCmd) SetFlags(f *flag.FlagSet) {}

func (*breakdownCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := s.Report()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing plan: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderBreakdown(renderer.NewPlan(s.Catalog(), report, s.ID())))
	return subcommands.ExitSuccess
}
