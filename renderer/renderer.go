package renderer

import (
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// PlanRenderOptions holds configuration for rendering a plan report.
type PlanRenderOptions struct {
	SkipProjection bool // Do not render the multi-year projection section.
	MACCOnly       bool // Render only the title and the MACC table.
}

// RenderPlan renders the Plan struct to a markdown string.
func RenderPlan(p *Plan, opts PlanRenderOptions) string {
	// Phase 1: Declare template dependencies.
	// An empty file name results in an empty template.
	partials := map[string]string{
		"plan_title":      "plan_title.md",
		"plan_metrics":    "plan_metrics.md",
		"plan_macc":       "plan_macc.md",
		"plan_breakdown":  "plan_breakdown.md",
		"plan_projection": "plan_projection.md",
	}
	if opts.SkipProjection {
		partials["plan_projection"] = ""
	}
	if opts.MACCOnly {
		partials["plan_metrics"] = ""
		partials["plan_breakdown"] = ""
		partials["plan_projection"] = ""
	}

	// Phase 2: Execute rendering with the generic utility.
	return renderTemplate("plan", "plan.md", partials, p)
}

// RenderBreakdown renders only the category breakdown of the plan.
func RenderBreakdown(p *Plan) string {
	return renderTemplate("plan_breakdown", "plan_breakdown.md", nil, p)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
