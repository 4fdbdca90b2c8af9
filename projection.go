package carbonplan

import "fmt"

// YearProjection is the abatement expected in one planning year.
type YearProjection struct {
	Year      int     `json:"year"` // 1 is the current planning year.
	Budget    float64 `json:"budget"`
	Abatement float64 `json:"abatement"`
}

// Projector projects the current mix of allocations over several yearly
// budgets. The first budget is the current year's.
type Projector interface {
	Project(catalog *Catalog, mix Allocations, budgets []float64) ([]YearProjection, error)
}

// LinearProjection is the default Projector.
//
// Year 1 is the abatement of the current mix. Every following year keeps the
// mix proportions and scales every spend by budget / current spend, the
// ceilings of the interventions still apply. An empty mix projects nothing.
//
// It does not model phasing, learning rates or asset lifetimes.
type LinearProjection struct{}

func (LinearProjection) Project(catalog *Catalog, mix Allocations, budgets []float64) ([]YearProjection, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidInput)
	}
	for k, b := range budgets {
		if err := checkAmount(fmt.Sprintf("budget of year %d", k+1), b); err != nil {
			return nil, err
		}
	}

	spend := 0.
	for _, i := range catalog.interventions {
		spend += SpendOf(mix, i.id)
	}

	res := make([]YearProjection, 0, len(budgets))
	for k, b := range budgets {
		p := YearProjection{Year: k + 1, Budget: b}
		if spend > 0 {
			scale := 1.
			if k > 0 {
				scale = b / spend
			}
			for _, i := range catalog.interventions {
				p.Abatement += abatement(i, SpendOf(mix, i.id)*scale)
			}
		}
		res = append(res, p)
	}
	return res, nil
}

// ProjectYears projects the mix over the budgets with the default
// LinearProjection.
func ProjectYears(catalog *Catalog, mix Allocations, budgets []float64) ([]YearProjection, error) {
	return LinearProjection{}.Project(catalog, mix, budgets)
}
