package renderer

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/carbonplan"
)

// CatalogMarkdown renders the interventions of the catalog, grouped by
// category and cheapest first. Only the given categories are rendered, all of
// them if none is given. Interventions funded in state are marked with their
// spend.
func CatalogMarkdown(c *carbonplan.Catalog, state carbonplan.State, categories ...carbonplan.Category) string {
	if len(categories) == 0 {
		categories = c.Categories()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Interventions\n\n")
	for _, cat := range categories {
		// categories without interventions are not printed at all.
		ConditionalBlock(&b, func(w io.Writer) bool {
			interventions := c.InCategory(cat)
			slices.SortStableFunc(interventions, func(x, y carbonplan.Intervention) int {
				return cmp.Compare(x.CostPerTonne(), y.CostPerTonne())
			})
			fmt.Fprintf(w, "## %s\n\n", cat)
			fmt.Fprintln(w, "| ID | Intervention | Cost per Tonne | Max per Year | Ceiling Spend | Allocated |")
			fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
			for _, i := range interventions {
				allocated := ""
				if spend := state.Spend(i.ID()); spend > 0 {
					allocated = carbonplan.FormatMoney(spend)
				}
				fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
					i.ID(),
					i.Name(),
					carbonplan.FormatCostPerTonne(i.CostPerTonne()),
					carbonplan.FormatTonnes(i.MaxTonnesPerYear()),
					carbonplan.FormatMoney(i.CeilingSpend()),
					allocated,
				)
			}
			fmt.Fprintln(w)
			return len(interventions) > 0
		})
	}
	return b.String()
}

// FillsMarkdown renders the top-ups applied by an ROI fill.
func FillsMarkdown(c *carbonplan.Catalog, category carbonplan.Category, fills []carbonplan.Fill) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# ROI fill of %s\n\n", category)
	if len(fills) == 0 {
		fmt.Fprintln(&b, "_Nothing to fill._")
		return b.String()
	}
	fmt.Fprintln(&b, "| Intervention | Previous | Added | New Allocation |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	total := 0.
	for _, f := range fills {
		name := f.InterventionID
		if i, ok := c.Lookup(f.InterventionID); ok {
			name = i.Name()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			name,
			carbonplan.FormatMoney(f.Previous),
			carbonplan.FormatMoney(f.Added),
			carbonplan.FormatMoney(f.Spend()),
		)
		total += f.Added
	}
	fmt.Fprintf(&b, "\nTotal added: %s\n", carbonplan.FormatMoney(total))
	return b.String()
}
