package renderer

import (
	"math"
	"strings"

	"github.com/etnz/carbonplan"
)

// barWidth is the number of cells of a full share bar.
const barWidth = 20

// Plan is the view of a carbonplan.Report. Numbers are already formatted for
// display, undefined values hold the carbonplan.Placeholder.
type Plan struct {
	Session      string         `json:"session,omitempty"`
	Budget       string         `json:"budget"`
	Spend        string         `json:"spend"`
	Remaining    string         `json:"remaining"`
	Utilisation  string         `json:"utilisation"`
	Overspent    bool           `json:"overspent"`
	Abatement    string         `json:"abatement"`
	Target       string         `json:"target"`
	Gap          string         `json:"gap"`
	Progress     string         `json:"progress"`
	CostPerTonne string         `json:"costPerTonne"`
	Efficiency   string         `json:"efficiency"`
	Fillable     []string       `json:"fillable,omitempty"`
	Rows         []PlanRow      `json:"rows"`
	Categories   []PlanCategory `json:"categories"`
	Years        []PlanYear     `json:"years"`
}

// PlanRow is one funded intervention in MACC order.
type PlanRow struct {
	Rank         int    `json:"rank"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Spend        string `json:"spend"`
	Abatement    string `json:"abatement"`
	CostPerTonne string `json:"costPerTonne"`
	Efficiency   string `json:"efficiency"`
	Saturated    bool   `json:"saturated"`
}

// PlanCategory is the spend of one category.
type PlanCategory struct {
	Category string `json:"category"`
	Spend    string `json:"spend"`
	Share    string `json:"share"`
	Bar      string `json:"bar"`
}

// PlanYear is one year of the projection.
type PlanYear struct {
	Year      int    `json:"year"`
	Budget    string `json:"budget"`
	Abatement string `json:"abatement"`
}

// NewPlan creates the view of a report computed on the catalog.
func NewPlan(catalog *carbonplan.Catalog, r *carbonplan.Report, session string) *Plan {
	m := r.Metrics
	p := &Plan{
		Session:      session,
		Budget:       carbonplan.FormatCurrency(r.State.TotalBudget()),
		Spend:        carbonplan.FormatCurrency(m.PortfolioSpend),
		Remaining:    carbonplan.FormatCurrency(r.Remaining),
		Utilisation:  carbonplan.FormatPercent(m.BudgetUtilisationPercent),
		Overspent:    m.Overspent(),
		Abatement:    carbonplan.FormatTonnes(m.PortfolioAbatement),
		Target:       carbonplan.FormatTonnes(r.State.TargetTonnes()),
		Gap:          carbonplan.FormatTonnes(m.GapToTarget),
		Progress:     carbonplan.FormatPercent(m.TargetProgressPercent()),
		CostPerTonne: carbonplan.FormatCostPerTonne(m.PortfolioCostPerTonne),
		Efficiency:   carbonplan.Placeholder,
	}
	if m.PortfolioAbatement > 0 {
		p.Efficiency = m.Efficiency.String()
	}
	for _, c := range r.Fillable {
		p.Fillable = append(p.Fillable, c.String())
	}

	for k, row := range r.Ranking {
		p.Rows = append(p.Rows, PlanRow{
			Rank:         k + 1,
			ID:           row.InterventionID,
			Name:         row.Name,
			Category:     row.Category.String(),
			Spend:        carbonplan.FormatCurrency(row.Spend),
			Abatement:    carbonplan.FormatTonnes(row.Abatement),
			CostPerTonne: carbonplan.FormatCostPerTonne(row.CostPerTonne),
			Efficiency:   carbonplan.Classify(row.CostPerTonne).String(),
			Saturated:    row.Saturated(catalog),
		})
	}

	for _, b := range r.Breakdown {
		p.Categories = append(p.Categories, PlanCategory{
			Category: b.Category.String(),
			Spend:    carbonplan.FormatCurrency(b.Spend),
			Share:    carbonplan.FormatPercent(b.PercentageOfTotalSpend),
			Bar:      bar(b.PercentageOfTotalSpend),
		})
	}

	for _, y := range r.Projection {
		p.Years = append(p.Years, PlanYear{
			Year:      y.Year,
			Budget:    carbonplan.FormatCurrency(y.Budget),
			Abatement: carbonplan.FormatTonnes(y.Abatement),
		})
	}
	return p
}

// bar draws a percentage as a horizontal bar of barWidth cells.
func bar(percent float64) string {
	n := int(math.Round(percent / 100 * barWidth))
	n = max(0, min(barWidth, n))
	return strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
}
