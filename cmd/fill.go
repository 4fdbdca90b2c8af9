package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/carbonplan"
	"github.com/etnz/carbonplan/renderer"
	"github.com/google/subcommands"
)

type fillCmd struct {
	category string
	record   bool
}

func (*fillCmd) Name() string     { return "fill" }
func (*fillCmd) Synopsis() string { return "spend the remaining budget on a category, best ROI first" }
func (*fillCmd) Usage() string {
	return `cpl [-budget <amount>] [-alloc <id>=<spend>]... fill -c <category> [-record]

  Tops up the interventions of the category, cheapest tonne first, until
  each one is saturated or the remaining budget is exhausted.

  With -record, the fill operation is appended to the -ops-file so that the
  next commands replay it.
`
}

func (c *fillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category to fill (electricity, gas, water, waste, travel).")
	f.BoolVar(&c.record, "record", false, "Append the fill operation to the operations file.")
}

func (c *fillCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	category, err := carbonplan.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing category: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.record && *opsFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -record requires an operations file (-ops-file or "+EnvOpsFile+")")
		return subcommands.ExitUsageError
	}

	s, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		return subcommands.ExitFailure
	}

	fills, err := s.FillCategory(category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error filling %s: %v\n", category, err)
		return subcommands.ExitFailure
	}

	if c.record {
		if err := appendOperation(*opsFile, carbonplan.FillCategory{Category: category}); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording operation: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var b strings.Builder
	b.WriteString(renderer.FillsMarkdown(s.Catalog(), category, fills))
	b.WriteString("\n")
	md, err := renderSession(s, renderer.PlanRenderOptions{SkipProjection: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing plan: %v\n", err)
		return subcommands.ExitFailure
	}
	b.WriteString(md)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// appendOperation appends the operation as a JSON line to the file.
func appendOperation(file string, op carbonplan.Operation) error {
	f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := carbonplan.EncodeOperation(f, op); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
