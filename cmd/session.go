package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/carbonplan"
	"github.com/etnz/carbonplan/renderer"
	"github.com/google/subcommands"
)

type sessionCmd struct{}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "edit the plan interactively" }
func (*sessionCmd) Usage() string {
	return `cpl [-budget <amount>] [-ops-file <file>] session

  Starts an interactive planning session. Type 'help' for the list of
  commands, 'bye' to leave.
`
}

func (*sessionCmd) SetFlags(f *flag.FlagSet) {}

func (*sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("session %s, type 'help' for help\n", s.ID())
	if err := runConsole(ctx, newConsole(s), os.Stdin, os.Stdout, printMarkdown); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const consoleHelp = `# Commands

| Command | Effect |
|:---|:---|
| budget <amount> | set the total budget, like 500k or £1.2M |
| target <tonnes> | set the annual abatement target |
| future <y2> <y3> <y4> <y5> | set the budgets of the 4 following years |
| alloc <id> <spend> | set the spend of an intervention |
| clear <id> | remove the spend of an intervention |
| reset | remove every allocation |
| fill <category> | spend the remaining budget on the category, best ROI first |
| show | display the full plan |
| macc | display the funded interventions ranked by cost per tonne |
| breakdown | display the spend per category |
| catalog [<category>] | list the interventions |
| save <file> | write the accepted operations as JSONL |
| bye | leave the session |
`

// errUnknownCommand is returned for a line that is not a console command.
var errUnknownCommand = errors.New("unknown command")

// console interprets the commands of an interactive session.
type console struct {
	session *carbonplan.Session
	// journal is the list of accepted operations, in order.
	journal []carbonplan.Operation
	done    bool
}

func newConsole(s *carbonplan.Session) *console { return &console{session: s} }

// dispatch applies the operation and journals it if accepted.
func (c *console) dispatch(op carbonplan.Operation) error {
	if err := c.session.Dispatch(op); err != nil {
		return err
	}
	c.journal = append(c.journal, op)
	return nil
}

// exec executes a single line and returns the markdown to display.
func (c *console) exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "help", "?":
		return consoleHelp, nil

	case "bye", "quit", "exit":
		c.done = true
		return "", nil

	case "budget", "target":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: %s <amount>", name)
		}
		v, err := ParseAmount(args[0])
		if err != nil {
			return "", err
		}
		var op carbonplan.Operation = carbonplan.SetTotalBudget{Amount: v}
		if name == "target" {
			op = carbonplan.SetTarget{Tonnes: v}
		}
		return c.metrics(c.dispatch(op))

	case "future":
		budgets, err := ParseAmounts(args)
		if err != nil {
			return "", err
		}
		return c.metrics(c.dispatch(carbonplan.SetFutureBudgets{Budgets: budgets}))

	case "alloc":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: alloc <id> <spend>")
		}
		v, err := ParseAmount(args[1])
		if err != nil {
			return "", err
		}
		return c.metrics(c.dispatch(carbonplan.SetAllocation{ID: args[0], Spend: v}))

	case "clear":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: clear <id>")
		}
		return c.metrics(c.dispatch(carbonplan.SetAllocation{ID: args[0]}))

	case "reset":
		return c.metrics(c.dispatch(carbonplan.ResetAllocations{}))

	case "fill":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: fill <category>")
		}
		category, err := carbonplan.ParseCategory(args[0])
		if err != nil {
			return "", err
		}
		fills, err := c.session.FillCategory(category)
		if err != nil {
			return "", err
		}
		c.journal = append(c.journal, carbonplan.FillCategory{Category: category})
		return renderer.FillsMarkdown(c.session.Catalog(), category, fills), nil

	case "show", "summary":
		return renderSession(c.session, renderer.PlanRenderOptions{})

	case "macc":
		return renderSession(c.session, renderer.PlanRenderOptions{MACCOnly: true})

	case "breakdown":
		report, err := c.session.Report()
		if err != nil {
			return "", err
		}
		return renderer.RenderBreakdown(renderer.NewPlan(c.session.Catalog(), report, c.session.ID())), nil

	case "catalog":
		var categories []carbonplan.Category
		for _, a := range args {
			category, err := carbonplan.ParseCategory(a)
			if err != nil {
				return "", err
			}
			categories = append(categories, category)
		}
		return renderer.CatalogMarkdown(c.session.Catalog(), c.session.State(), categories...), nil

	case "save":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: save <file>")
		}
		if err := c.save(args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("saved %d operations to %s\n", len(c.journal), args[0]), nil
	}
	return "", fmt.Errorf("%w %q, type 'help' for help", errUnknownCommand, name)
}

// metrics renders the plan metrics after a mutation, or returns err.
func (c *console) metrics(err error) (string, error) {
	if err != nil {
		return "", err
	}
	return renderSession(c.session, renderer.PlanRenderOptions{SkipProjection: true})
}

func (c *console) save(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	for _, op := range c.journal {
		if err := carbonplan.EncodeOperation(f, op); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// runConsole reads commands from in until 'bye', the end of input or the
// context is done. Markdown results go to print, prompts and errors to out.
func runConsole(ctx context.Context, c *console, in io.Reader, out io.Writer, print func(string)) error {
	scanner := bufio.NewScanner(in)
	for !c.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, "cpl> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		md, err := c.exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		if md != "" {
			print(md)
		}
	}
	return nil
}
