package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type jsonCmd struct {
	indent bool
}

func (*jsonCmd) Name() string     { return "json" }
func (*jsonCmd) Synopsis() string { return "print the plan report as JSON" }
func (*jsonCmd) Usage() string {
	return `cpl [-alloc <id>=<spend>]... json [-indent]

  Prints the state, the metrics, the ranking, the breakdown and the
  projection as a single JSON object.
`
}

func (c *jsonCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.indent, "indent", true, "Indent the JSON output.")
}

func (c *jsonCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	enc := json.NewEncoder(os.Stdout)
	if c.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
