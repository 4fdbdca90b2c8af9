package agent

import (
	"context"
	"fmt"

	"github.com/etnz/carbonplan"
	"github.com/etnz/carbonplan/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert talking to the user. It consults the
// team through its tools, the first one being the Planner.
func newFacilitator(team ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: "Answers the user about their carbon budget plan.",
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(team)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You answer a sustainability manager who splits a yearly budget in pounds sterling
			between carbon reduction interventions, to reach an abatement target in tCO2e per year.

			Your tools are experts who remember what you already asked them.
			The Planner reads the user's plan, read it before commenting on the plan.
			Ask the other experts for facts the plan does not hold, like grants or typical costs.

			Answer in short markdown, quote amounts in GBP and abatement in tCO2e.
		`}}},
		},
		Library: NewLibrary(team),
	}
}

// NewAdvisor creates an expert grounded on Google Search, for questions
// about the real world costs and benefits of interventions.
func NewAdvisor() *Expert {
	return &Expert{
		Name: "Advisor",
		Description: `This is an expert in corporate decarbonisation.
		Very well aware of the technologies, grants and typical costs of carbon reduction projects.
		Ask the Advisor whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in corporate decarbonisation in the UK, you can search and find about
			energy efficiency, renewables, water, waste and travel interventions. You leverage Google Search to
			ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewPlanner creates the expert reading the plan of the session.
func NewPlanner(s *carbonplan.Session) *Expert {
	lib := PlannerFunctions(s)
	return &Expert{
		Name: "Planner",
		Description: `This is the Planner. It reads the user's current allocation plan:
		budget, target, metrics, the interventions ranked by cost per tonne, the spend per category,
		and it can preview an ROI fill of a category.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are in charge of the user's carbon budget plan.
				You know how to use the Tools to extract relevant information about the plan.
				You are part of a team of experts, yours is everything about the user's plan. They might ask
				you questions about the plan, pardon their approximative language and figure out what they meant.

				Amounts are in GBP, abatement in tCO2e per year.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

var categoryParameter = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category": {
			Type:        genai.TypeString,
			Description: "The category: electricity, gas, water, waste or travel.",
			Enum:        []string{"electricity", "gas-heating", "water", "waste", "travel"},
		},
	},
	Required: []string{"category"},
}

// markdownFunc declares a function returning markdown computed on the session.
func markdownFunc(name, description string, params *genai.Schema, f func(args map[string]any) (string, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  params,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown document.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			md, err := f(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, md)
		},
	}
}

// PlannerFunctions returns the tools reading the session.
func PlannerFunctions(s *carbonplan.Session) []Function {
	plan := func(opts renderer.PlanRenderOptions) (string, error) {
		r, err := s.Report()
		if err != nil {
			return "", err
		}
		return renderer.RenderPlan(renderer.NewPlan(s.Catalog(), r, s.ID()), opts), nil
	}

	return []Function{
		markdownFunc("get_metrics",
			"Returns the budget, spend, abatement, target progress and the multi-year projection of the plan.",
			nil,
			func(map[string]any) (string, error) { return plan(renderer.PlanRenderOptions{}) }),

		markdownFunc("get_macc",
			"Returns the funded interventions ranked from the cheapest tonne of CO2e to the most expensive.",
			nil,
			func(map[string]any) (string, error) { return plan(renderer.PlanRenderOptions{MACCOnly: true}) }),

		markdownFunc("get_breakdown",
			"Returns the spend of every funded category and its share of the total spend.",
			nil,
			func(map[string]any) (string, error) {
				r, err := s.Report()
				if err != nil {
					return "", err
				}
				return renderer.RenderBreakdown(renderer.NewPlan(s.Catalog(), r, s.ID())), nil
			}),

		markdownFunc("list_interventions",
			"Returns the interventions of the catalog in a category, with their cost per tonne, capacity and current allocation.",
			categoryParameter,
			func(args map[string]any) (string, error) {
				c, err := parseCategory(args)
				if err != nil {
					return "", err
				}
				return renderer.CatalogMarkdown(s.Catalog(), s.State(), c), nil
			}),

		markdownFunc("preview_fill",
			"Returns the top-ups an ROI fill of the category would apply with the remaining budget, without applying them.",
			categoryParameter,
			func(args map[string]any) (string, error) {
				c, err := parseCategory(args)
				if err != nil {
					return "", err
				}
				_, fills, err := carbonplan.DistributeByROI(s.Catalog().InCategory(c), s.State().Allocations(), s.Remaining())
				if err != nil {
					return "", err
				}
				return renderer.FillsMarkdown(s.Catalog(), c, fills), nil
			}),
	}
}

func parseCategory(args map[string]any) (carbonplan.Category, error) {
	v, ok := args["category"]
	if !ok {
		return 0, fmt.Errorf("missing argument 'category'")
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("argument 'category' is not a string as expected but %T", v)
	}
	return carbonplan.ParseCategory(s)
}
