package carbonplan

import (
	"fmt"
	"slices"
)

// FutureYears is the number of planning years after the current one.
const FutureYears = 4

// Defaults of a new planning session.
const (
	DefaultTotalBudget  = 500_000.
	DefaultTargetTonnes = 3_000.
)

// State is a snapshot of the allocation state of a planning session.
//
// A State is a value: it is never modified in place. Apply returns a new
// snapshot for every successful operation.
type State struct {
	totalBudget   float64
	targetTonnes  float64
	futureBudgets [FutureYears]float64
	allocations   Allocations
}

// NewState returns the state of a new session: the default budget and
// target, no future budget and no allocation.
func NewState() State {
	return State{
		totalBudget:  DefaultTotalBudget,
		targetTonnes: DefaultTargetTonnes,
	}
}

func (s State) TotalBudget() float64     { return s.totalBudget }
func (s State) TargetTonnes() float64    { return s.targetTonnes }
func (s State) Allocations() Allocations { return s.allocations }
func (s State) FutureBudgets() []float64 { return slices.Clone(s.futureBudgets[:]) }
func (s State) Spend(id string) float64  { return SpendOf(s.allocations, id) }

// RemainingBudget is the budget left to allocate. It is negative when the
// allocations overspend.
func (s State) RemainingBudget() float64 { return s.totalBudget - s.allocations.Total() }

// Budgets returns the budget of the current year followed by the future ones.
func (s State) Budgets() []float64 {
	return append([]float64{s.totalBudget}, s.futureBudgets[:]...)
}

// Equal reports whether both states hold the same values.
func (s State) Equal(t State) bool {
	return s.totalBudget == t.totalBudget &&
		s.targetTonnes == t.targetTonnes &&
		s.futureBudgets == t.futureBudgets &&
		s.allocations.Equal(t.allocations)
}

func (s State) String() string {
	return fmt.Sprintf("budget=%v target=%v funded=%d", s.totalBudget, s.targetTonnes, s.allocations.Len())
}

// Metrics computes the portfolio metrics of the state.
func (s State) Metrics(catalog *Catalog) (PortfolioMetrics, error) {
	return ComputeMetrics(catalog, s.allocations, s.totalBudget, s.targetTonnes)
}

// Apply applies the operation to the state and returns the new state.
//
// A rejected operation returns the unchanged state and an error wrapping
// ErrValidationRejected.
func Apply(catalog *Catalog, s State, op Operation) (State, error) {
	if op == nil {
		return s, fmt.Errorf("%w: nil operation", ErrValidationRejected)
	}
	if catalog == nil {
		return s, fmt.Errorf("%w: %s: nil catalog", ErrValidationRejected, op.What())
	}
	next, err := op.apply(catalog, s)
	if err != nil {
		return s, fmt.Errorf("%w: %s: %w", ErrValidationRejected, op.What(), err)
	}
	return next, nil
}

// MarshalJSON implements the json.Marshaler interface for State.
func (s State) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("totalBudget", s.totalBudget)
	w.Append("targetTonnes", s.targetTonnes)
	w.Append("futureBudgets", s.futureBudgets)
	w.Append("allocations", s.allocations)
	return w.MarshalJSON()
}
