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

// categoryList collects repeated -c flags.
type categoryList []carbonplan.Category

func (l *categoryList) String() string {
	var parts []string
	for _, c := range *l {
		parts = append(parts, c.Slug())
	}
	return strings.Join(parts, ",")
}

func (l *categoryList) Set(s string) error {
	c, err := carbonplan.ParseCategory(s)
	if err != nil {
		return err
	}
	*l = append(*l, c)
	return nil
}

type catalogCmd struct {
	categories categoryList
	jsonl      bool
}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "list the interventions available for funding" }
func (*catalogCmd) Usage() string {
	return `cpl catalog [-c <category>]... [-jsonl]

  Lists the interventions of the catalog by category, cheapest tonne first,
  with the spend that saturates each of them.

  Use -jsonl to print the catalog in the format accepted by -catalog-file.
`
}

func (c *catalogCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.categories, "c", "Category to list (electricity, gas, water, waste, travel). Can be repeated.")
	f.BoolVar(&c.jsonl, "jsonl", false, "Print the catalog as JSONL.")
}

func (c *catalogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.jsonl {
		if err := carbonplan.EncodeCatalog(os.Stdout, s.Catalog()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding catalog: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.CatalogMarkdown(s.Catalog(), s.State(), c.categories...))
	return subcommands.ExitSuccess
}
