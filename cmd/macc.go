package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/carbonplan/renderer"
	"github.com/google/subcommands"
)

type maccCmd struct{}

func (*maccCmd) Name() string     { return "macc" }
func (*maccCmd) Synopsis() string { return "display funded interventions ranked by cost per tonne" }
func (*maccCmd) Usage() string {
	return `cpl [-alloc <id>=<spend>]... macc

  Displays the marginal abatement cost curve: every funded intervention,
  cheapest tonne first.
`
}

func (*maccCmd) SetFlags(f *flag.FlagSet) {}

func (*maccCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := renderSession(s, renderer.PlanRenderOptions{MACCOnly: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing plan: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
