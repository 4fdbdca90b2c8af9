package carbonplan

import "fmt"

// Report gathers everything derived from a State, ready for rendering.
type Report struct {
	State      State               `json:"state"`
	Metrics    PortfolioMetrics    `json:"metrics"`
	Remaining  float64             `json:"remainingBudget"`
	Ranking    []AllocationRow     `json:"ranking"`
	Breakdown  []CategoryBreakdown `json:"breakdown"`
	Projection []YearProjection    `json:"projection"`
	// Fillable lists the categories where an ROI fill would be accepted.
	Fillable []Category `json:"fillable"`
}

// NewReport computes the report of the state. A nil projector uses the
// LinearProjection.
func NewReport(catalog *Catalog, s State, projector Projector) (*Report, error) {
	if projector == nil {
		projector = LinearProjection{}
	}
	r := &Report{State: s, Remaining: s.RemainingBudget()}

	var err error
	if r.Metrics, err = s.Metrics(catalog); err != nil {
		return nil, fmt.Errorf("error computing metrics: %w", err)
	}
	if r.Ranking, err = RankByEffectiveness(catalog, s.allocations); err != nil {
		return nil, fmt.Errorf("error ranking allocations: %w", err)
	}
	if r.Breakdown, err = GroupByCategory(catalog, s.allocations); err != nil {
		return nil, fmt.Errorf("error grouping allocations: %w", err)
	}
	if r.Projection, err = projector.Project(catalog, s.allocations, s.Budgets()); err != nil {
		return nil, fmt.Errorf("error projecting allocations: %w", err)
	}
	for _, c := range catalog.Categories() {
		if CanDistribute(catalog.InCategory(c), s.allocations, r.Remaining) {
			r.Fillable = append(r.Fillable, c)
		}
	}
	return r, nil
}
