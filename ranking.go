package carbonplan

import (
	"cmp"
	"fmt"
	"slices"
)

// AllocationRow is one funded intervention in a MACC ranking.
type AllocationRow struct {
	Category       Category `json:"category"`
	InterventionID string   `json:"interventionId"`
	Name           string   `json:"name"`
	Spend          float64  `json:"spend"`
	Abatement      float64  `json:"abatement"`
	CostPerTonne   float64  `json:"costPerTonne"`
}

// Saturated reports whether the row reached its intervention ceiling.
func (r AllocationRow) Saturated(catalog *Catalog) bool {
	i, ok := catalog.Lookup(r.InterventionID)
	return ok && r.Abatement >= i.maxTonnesPerYear
}

// RankByEffectiveness returns the funded interventions, cheapest abatement
// first: the marginal abatement cost curve order.
//
// Only interventions with a positive spend are ranked. Interventions with the
// same cost per tonne keep their catalog order.
func RankByEffectiveness(catalog *Catalog, allocations Allocations) ([]AllocationRow, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidInput)
	}
	var rows []AllocationRow
	for _, i := range catalog.interventions {
		spend := SpendOf(allocations, i.id)
		if spend <= 0 {
			continue
		}
		rows = append(rows, AllocationRow{
			Category:       i.category,
			InterventionID: i.id,
			Name:           i.name,
			Spend:          spend,
			Abatement:      abatement(i, spend),
			CostPerTonne:   i.costPerTonne,
		})
	}
	slices.SortStableFunc(rows, func(a, b AllocationRow) int {
		return cmp.Compare(a.CostPerTonne, b.CostPerTonne)
	})
	return rows, nil
}

// CategoryBreakdown is the spend of one category and its share of the
// portfolio spend.
type CategoryBreakdown struct {
	Category               Category `json:"category"`
	Spend                  float64  `json:"spend"`
	PercentageOfTotalSpend float64  `json:"percentageOfTotalSpend"`
}

// GroupByCategory sums the spend of each category.
//
// Categories without spend are omitted. The result is ordered by descending
// spend, categories with the same spend keep the canonical category order.
func GroupByCategory(catalog *Catalog, allocations Allocations) ([]CategoryBreakdown, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidInput)
	}
	spendByCategory := make(map[Category]float64)
	total := 0.
	for _, i := range catalog.interventions {
		spend := SpendOf(allocations, i.id)
		spendByCategory[i.category] += spend
		total += spend
	}

	var res []CategoryBreakdown
	for _, c := range AllCategories() {
		spend := spendByCategory[c]
		if spend <= 0 {
			continue
		}
		b := CategoryBreakdown{Category: c, Spend: spend}
		if total > 0 {
			b.PercentageOfTotalSpend = spend / total * 100
		}
		res = append(res, b)
	}
	slices.SortStableFunc(res, func(a, b CategoryBreakdown) int {
		return cmp.Compare(b.Spend, a.Spend)
	})
	return res, nil
}
