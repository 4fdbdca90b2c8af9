// Package cmd implements the CLI application to plan a carbon budget.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/carbonplan"
	"github.com/google/subcommands"
)

// Environment variables used as defaults for the global flags.
const (
	EnvCatalogFile = "CPL_CATALOG_FILE"
	EnvOpsFile     = "CPL_OPS_FILE"
	EnvVerbose     = "CPL_VERBOSE"
)

// Commands lists the subcommands of the application.
// A main package registers them and Execute() the user-selected one.
var Commands = []subcommands.Command{
	&catalogCmd{},
	&summaryCmd{},
	&maccCmd{},
	&breakdownCmd{},
	&fillCmd{},
	&sessionCmd{},
	&jsonCmd{},
	&queryCmd{},
	&AssistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	catalogFile = flag.String("catalog-file", os.Getenv(EnvCatalogFile), "Path to a JSONL catalog of interventions. Defaults to the built-in catalog.")
	opsFile     = flag.String("ops-file", os.Getenv(EnvOpsFile), "Path to a JSONL file of operations replayed into the session at start.")
	budgetFlag  = flag.String("budget", "", "Total budget of the planning year, like 500k or £1.2M.")
	targetFlag  = flag.String("target", "", "Annual abatement target in tCO₂e.")
	futureFlag  = flag.String("future", "", "Comma separated budgets of the 4 following years.")
	rawOutput   = flag.Bool("raw", false, "Print plain markdown instead of rendering it for the terminal.")
	Verbose     = flag.Bool("v", envBool(EnvVerbose), "Log every operation applied to the session.")
	allocFlags  allocationFlags
)

func init() {
	flag.Var(&allocFlags, "alloc", "Allocation as <id>=<spend>, can be repeated.")
}

func envBool(name string) bool {
	v, _ := strconv.ParseBool(os.Getenv(name))
	return v
}

// allocationFlags collects the repeated -alloc flags.
type allocationFlags []carbonplan.SetAllocation

func (a *allocationFlags) String() string {
	var parts []string
	for _, op := range *a {
		parts = append(parts, fmt.Sprintf("%s=%v", op.ID, op.Spend))
	}
	return strings.Join(parts, ",")
}

func (a *allocationFlags) Set(s string) error {
	id, spend, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("invalid allocation %q, expected <id>=<spend>", s)
	}
	amount, err := ParseAmount(spend)
	if err != nil {
		return err
	}
	*a = append(*a, carbonplan.SetAllocation{ID: strings.TrimSpace(id), Spend: amount})
	return nil
}

// DecodeCatalog decodes the catalog from the app catalog file, or returns the
// built-in catalog.
func DecodeCatalog() (*carbonplan.Catalog, error) {
	if *catalogFile == "" {
		return carbonplan.DefaultCatalog(), nil
	}
	f, err := os.Open(*catalogFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return carbonplan.DecodeCatalog(f)
}

// startupOperations returns the operations from the ops file followed by the
// ones from the global flags.
func startupOperations() ([]carbonplan.Operation, error) {
	var ops []carbonplan.Operation
	if *opsFile != "" {
		f, err := os.Open(*opsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if ops, err = carbonplan.DecodeOperations(f); err != nil {
			return nil, fmt.Errorf("error decoding operations file %q: %w", *opsFile, err)
		}
	}
	flagOps, err := flagOperations(*budgetFlag, *targetFlag, *futureFlag, allocFlags)
	if err != nil {
		return nil, err
	}
	return append(ops, flagOps...), nil
}

// flagOperations converts the global flag values into operations.
func flagOperations(budget, target, future string, allocations []carbonplan.SetAllocation) ([]carbonplan.Operation, error) {
	var ops []carbonplan.Operation
	if budget != "" {
		v, err := ParseAmount(budget)
		if err != nil {
			return nil, fmt.Errorf("invalid -budget: %w", err)
		}
		ops = append(ops, carbonplan.SetTotalBudget{Amount: v})
	}
	if target != "" {
		v, err := ParseAmount(target)
		if err != nil {
			return nil, fmt.Errorf("invalid -target: %w", err)
		}
		ops = append(ops, carbonplan.SetTarget{Tonnes: v})
	}
	if future != "" {
		budgets, err := ParseAmounts(strings.Split(future, ","))
		if err != nil {
			return nil, fmt.Errorf("invalid -future: %w", err)
		}
		ops = append(ops, carbonplan.SetFutureBudgets{Budgets: budgets})
	}
	for _, a := range allocations {
		ops = append(ops, a)
	}
	return ops, nil
}

// OpenSession creates the session of the command: the catalog, then the
// operations of the ops file and of the global flags.
//
// Rejected operations are logged and skipped, the session keeps the last
// valid state.
func OpenSession() (*carbonplan.Session, error) {
	catalog, err := DecodeCatalog()
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	s, err := carbonplan.NewSession(catalog)
	if err != nil {
		return nil, err
	}
	s.Verbose = *Verbose

	ops, err := startupOperations()
	if err != nil {
		return nil, err
	}
	if err := s.DispatchAll(ops...); err != nil && !errors.Is(err, carbonplan.ErrValidationRejected) {
		return nil, err
	}
	return s, nil
}

// printMarkdown renders markdown for the terminal, or prints it raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Printf("warning, cannot render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
