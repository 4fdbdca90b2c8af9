package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// asker answers a user turn.
type asker interface {
	Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error)
}

// Assistant is the planning console: each user line goes to a facilitator
// that consults the Planner and the other experts before answering.
type Assistant struct {
	out   io.Writer
	lines *bufio.Scanner

	Planner     *Expert
	Experts     []*Expert
	Facilitator *Expert

	// Print displays an answer, a plain line on the output by default.
	Print func(string)
}

// New creates an Assistant around the planner of the session and some
// extra experts, reading questions from in and writing to out.
func New(out io.Writer, in io.Reader, planner *Expert, others ...*Expert) *Assistant {
	team := append([]*Expert{planner}, others...)
	return &Assistant{
		out:         out,
		lines:       bufio.NewScanner(in),
		Planner:     planner,
		Experts:     others,
		Facilitator: newFacilitator(team...),
		Print:       func(s string) { fmt.Fprintln(out, s) },
	}
}

// team returns every expert started with the assistant, facilitator last.
func (a *Assistant) team() []*Expert {
	team := append([]*Expert{a.Planner}, a.Experts...)
	return append(team, a.Facilitator)
}

// Run opens the chats if needed and answers questions until "bye" or the
// end of input. The prompts are asked first, as if typed.
func (a *Assistant) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	for _, e := range a.team() {
		if e.chat != nil {
			continue
		}
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, "cpl assist: ask about the budget, the target or the interventions of your plan. 'bye' quits.")
	return a.converse(ctx, a.Facilitator, prompts)
}

const prompt = "plan> "

func (a *Assistant) converse(ctx context.Context, facilitator asker, queued []string) error {
	for {
		fmt.Fprint(a.out, prompt)

		var question string
		if len(queued) > 0 {
			question, queued = strings.TrimSpace(queued[0]), queued[1:]
			if question == "" {
				continue
			}
			fmt.Fprintln(a.out, question)
		} else {
			if !a.lines.Scan() {
				if err := a.lines.Err(); err != nil {
					return err
				}
				fmt.Fprintln(a.out)
				return nil
			}
			question = strings.TrimSpace(a.lines.Text())
			if question == "" {
				continue
			}
		}

		if question == "bye" {
			return nil
		}

		answer, err := facilitator.Ask(ctx, &genai.Part{Text: question})
		if err != nil {
			return fmt.Errorf("cannot answer %q: %w", question, err)
		}
		for _, p := range answer.Parts {
			if p.Text != "" {
				a.Print(p.Text)
			}
		}
	}
}
