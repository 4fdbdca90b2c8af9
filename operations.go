package carbonplan

import (
	"fmt"
)

// CommandType is a typed string for identifying operations.
type CommandType string

// Command types of the operations that change a State.
const (
	CmdBudget   CommandType = "budget"
	CmdTarget   CommandType = "target"
	CmdFuture   CommandType = "future"
	CmdAllocate CommandType = "allocate"
	CmdReset    CommandType = "reset"
	CmdFill     CommandType = "fill"
)

// Operation is a change to a State. The set of operations is closed, they
// are all defined in this package and applied with Apply.
type Operation interface {
	What() CommandType // What returns the command type of the operation.
	// apply returns the new state, or the reason the operation is rejected.
	apply(catalog *Catalog, s State) (State, error)
}

// SetTotalBudget sets the budget available this planning year.
type SetTotalBudget struct {
	Amount float64
}

func (SetTotalBudget) What() CommandType { return CmdBudget }

func (op SetTotalBudget) apply(_ *Catalog, s State) (State, error) {
	if err := checkAmount("total budget", op.Amount); err != nil {
		return s, err
	}
	s.totalBudget = op.Amount
	return s, nil
}

// MarshalJSON implements the json.Marshaler interface for SetTotalBudget.
func (op SetTotalBudget) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", op.What())
	w.Append("amount", op.Amount)
	return w.MarshalJSON()
}

// SetTarget sets the annual abatement goal, in tonnes.
type SetTarget struct {
	Tonnes float64
}

func (SetTarget) What() CommandType { return CmdTarget }

func (op SetTarget) apply(_ *Catalog, s State) (State, error) {
	if err := checkAmount("target", op.Tonnes); err != nil {
		return s, err
	}
	s.targetTonnes = op.Tonnes
	return s, nil
}

// MarshalJSON implements the json.Marshaler interface for SetTarget.
func (op SetTarget) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", op.What())
	w.Append("tonnes", op.Tonnes)
	return w.MarshalJSON()
}

// SetFutureBudgets sets the budgets of the years after the current one.
// Exactly FutureYears budgets are required.
type SetFutureBudgets struct {
	Budgets []float64
}

func (SetFutureBudgets) What() CommandType { return CmdFuture }

func (op SetFutureBudgets) apply(_ *Catalog, s State) (State, error) {
	if len(op.Budgets) != FutureYears {
		return s, fmt.Errorf("%w: expected %d future budgets, got %d", ErrInvalidInput, FutureYears, len(op.Budgets))
	}
	for k, b := range op.Budgets {
		if err := checkAmount(fmt.Sprintf("budget of year %d", k+2), b); err != nil {
			return s, err
		}
	}
	copy(s.futureBudgets[:], op.Budgets)
	return s, nil
}

// MarshalJSON implements the json.Marshaler interface for SetFutureBudgets.
func (op SetFutureBudgets) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", op.What())
	w.Append("budgets", op.Budgets)
	return w.MarshalJSON()
}

// SetAllocation sets the spend of one intervention. A spend of 0 clears it.
type SetAllocation struct {
	ID    string
	Spend float64
}

func (SetAllocation) What() CommandType { return CmdAllocate }

func (op SetAllocation) apply(catalog *Catalog, s State) (State, error) {
	if _, ok := catalog.Lookup(op.ID); !ok {
		return s, fmt.Errorf("%w: unknown intervention %q", ErrInvalidInput, op.ID)
	}
	a, err := s.allocations.With(op.ID, op.Spend)
	if err != nil {
		return s, err
	}
	s.allocations = a
	return s, nil
}

// MarshalJSON implements the json.Marshaler interface for SetAllocation.
func (op SetAllocation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", op.What())
	w.Append("id", op.ID)
	w.Optional("spend", op.Spend)
	return w.MarshalJSON()
}

// ResetAllocations clears every allocation. Budgets and target are kept.
type ResetAllocations struct{}

func (ResetAllocations) What() CommandType { return CmdReset }

func (ResetAllocations) apply(_ *Catalog, s State) (State, error) {
	s.allocations = Allocations{}
	return s, nil
}

// MarshalJSON implements the json.Marshaler interface for ResetAllocations.
func (op ResetAllocations) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", op.What())
	return w.MarshalJSON()
}

// FillCategory distributes the remaining budget of the state across the
// interventions of one category, see DistributeByROI.
type FillCategory struct {
	Category Category
}

func (FillCategory) What() CommandType { return CmdFill }

func (op FillCategory) apply(catalog *Catalog, s State) (State, error) {
	if !op.Category.Valid() {
		return s, fmt.Errorf("%w: unknown category %v", ErrInvalidInput, op.Category)
	}
	interventions := catalog.InCategory(op.Category)
	remaining := s.RemainingBudget()
	if !CanDistribute(interventions, s.allocations, remaining) {
		return s, fmt.Errorf("nothing to fill in %v: remaining budget %v", op.Category, remaining)
	}
	a, _, err := DistributeByROI(interventions, s.allocations, remaining)
	if err != nil {
		return s, err
	}
	s.allocations = a
	return s, nil
}

// MarshalJSON implements the json.Marshaler interface for FillCategory.
func (op FillCategory) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", op.What())
	w.Append("category", op.Category)
	return w.MarshalJSON()
}
