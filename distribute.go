package carbonplan

import (
	"cmp"
	"fmt"
	"slices"
)

// capacityTolerance is the unused capacity, in tonnes, below which an
// intervention is considered saturated. spend/cost*cost rarely round trips.
const capacityTolerance = 1e-9

// Fill is the top-up applied to one intervention by DistributeByROI.
type Fill struct {
	InterventionID string  `json:"interventionId"`
	Previous       float64 `json:"previous"`
	Added          float64 `json:"added"`
}

// Spend returns the allocation after the fill.
func (f Fill) Spend() float64 { return f.Previous + f.Added }

// DistributeByROI tops up the allocations of the interventions of a single
// category with remainingBudget, most cost-effective first.
//
// Each intervention receives at most what it takes to reach its ceiling,
// existing allocations are only ever increased, and other categories are not
// touched. It is a greedy fill, not an optimizer: each intervention is
// visited once in ascending cost per tonne.
//
// It returns the new allocations and the fills that were applied, the input
// allocations are never modified.
func DistributeByROI(categoryInterventions []Intervention, allocations Allocations, remainingBudget float64) (Allocations, []Fill, error) {
	if !isFinite(remainingBudget) {
		return allocations, nil, fmt.Errorf("%w: remaining budget is not a finite number: %v", ErrInvalidInput, remainingBudget)
	}
	if err := checkSingleCategory(categoryInterventions); err != nil {
		return allocations, nil, err
	}

	ordered := slices.Clone(categoryInterventions)
	slices.SortStableFunc(ordered, func(a, b Intervention) int {
		return cmp.Compare(a.costPerTonne, b.costPerTonne)
	})

	var fills []Fill
	for _, i := range ordered {
		if remainingBudget <= 0 {
			break
		}
		currentSpend := SpendOf(allocations, i.id)
		remainingCapacity := i.maxTonnesPerYear - abatement(i, currentSpend)
		if remainingCapacity <= capacityTolerance {
			continue
		}
		additional := min(remainingBudget, remainingCapacity*i.costPerTonne)

		var err error
		if allocations, err = allocations.With(i.id, currentSpend+additional); err != nil {
			return allocations, nil, err
		}
		remainingBudget -= additional
		fills = append(fills, Fill{InterventionID: i.id, Previous: currentSpend, Added: additional})
	}
	return allocations, fills, nil
}

// CanDistribute reports whether DistributeByROI would do anything: some
// budget remains and at least one intervention still has unused capacity.
func CanDistribute(categoryInterventions []Intervention, allocations Allocations, remainingBudget float64) bool {
	if !(remainingBudget > 0) {
		return false
	}
	for _, i := range categoryInterventions {
		if i.maxTonnesPerYear-abatement(i, SpendOf(allocations, i.id)) > capacityTolerance {
			return true
		}
	}
	return false
}

// checkSingleCategory checks the interventions and that they all belong to
// the same category.
func checkSingleCategory(interventions []Intervention) error {
	for _, i := range interventions {
		if err := i.validate(); err != nil {
			return err
		}
		if i.category != interventions[0].category {
			return fmt.Errorf("%w: %q is in %v, not in %v", ErrInvalidInput, i.id, i.category, interventions[0].category)
		}
	}
	return nil
}
