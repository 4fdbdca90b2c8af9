package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/carbonplan"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "extract values from the plan report with JSONPath" }
func (*queryCmd) Usage() string {
	return `cpl [-alloc <id>=<spend>]... query <jsonpath>...

  Evaluates each JSONPath expression against the JSON report (see 'cpl json')
  and prints one JSON result per line.

  Example:
    cpl -alloc led-lighting=4200 query '$.metrics.portfolioAbatement'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing JSONPath expression")
		return subcommands.ExitUsageError
	}
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
	for _, path := range f.Args() {
		v, err := queryReport(report, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		data, err := json.Marshal(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result of %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(data))
	}
	return subcommands.ExitSuccess
}

// queryReport evaluates the JSONPath against the JSON form of the report.
func queryReport(r *carbonplan.Report, path string) (any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, err
	}
	return jsonpath.Get(path, jobj)
}
