package carbonplan

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// Session holds the allocation state of a single planning session.
//
// All the changes go through Dispatch, every read recomputes the derived
// values from the current State. A Session is not safe for concurrent use.
type Session struct {
	id        uuid.UUID
	catalog   *Catalog
	state     State
	projector Projector
	// Verbose logs every applied operation, rejections are always logged.
	Verbose bool
}

// NewSession creates a session on the catalog, with the default State.
func NewSession(catalog *Catalog) (*Session, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidInput)
	}
	return &Session{
		id:        uuid.New(),
		catalog:   catalog,
		state:     NewState(),
		projector: LinearProjection{},
	}, nil
}

// WithProjector replaces the projection strategy of the session.
func (s *Session) WithProjector(p Projector) *Session {
	s.projector = p
	return s
}

func (s *Session) ID() string        { return s.id.String() }
func (s *Session) Catalog() *Catalog { return s.catalog }
func (s *Session) State() State      { return s.state }

// Dispatch applies the operation to the current state.
//
// A rejected operation is logged and returned, the state is left unchanged.
func (s *Session) Dispatch(op Operation) error {
	next, err := Apply(s.catalog, s.state, op)
	if err != nil {
		log.Printf("session %s: %v", s.id, err)
		return err
	}
	if s.Verbose && op != nil {
		log.Printf("session %s: applied %s: %v", s.id, op.What(), next)
	}
	s.state = next
	return nil
}

// DispatchAll dispatches the operations in order. It does not stop on a
// rejected operation and returns all the rejections joined.
func (s *Session) DispatchAll(ops ...Operation) error {
	var errs []error
	for _, op := range ops {
		if err := s.Dispatch(op); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Session) SetTotalBudget(amount float64) error {
	return s.Dispatch(SetTotalBudget{Amount: amount})
}

func (s *Session) SetTarget(tonnes float64) error {
	return s.Dispatch(SetTarget{Tonnes: tonnes})
}

func (s *Session) SetFutureBudgets(budgets ...float64) error {
	return s.Dispatch(SetFutureBudgets{Budgets: budgets})
}

func (s *Session) SetAllocation(id string, spend float64) error {
	return s.Dispatch(SetAllocation{ID: id, Spend: spend})
}

func (s *Session) ResetAllocations() error {
	return s.Dispatch(ResetAllocations{})
}

// FillCategory distributes the remaining budget in the category and returns
// the fills that were applied.
func (s *Session) FillCategory(category Category) ([]Fill, error) {
	before := s.state.allocations
	if err := s.Dispatch(FillCategory{Category: category}); err != nil {
		return nil, err
	}
	var fills []Fill
	for _, i := range s.catalog.InCategory(category) {
		prev, now := SpendOf(before, i.id), s.state.Spend(i.id)
		if now != prev {
			fills = append(fills, Fill{InterventionID: i.id, Previous: prev, Added: now - prev})
		}
	}
	return fills, nil
}

// CanFill reports whether FillCategory would be accepted.
func (s *Session) CanFill(category Category) bool {
	return CanDistribute(s.catalog.InCategory(category), s.state.allocations, s.Remaining())
}

// Remaining returns the budget left to allocate.
func (s *Session) Remaining() float64 { return s.state.RemainingBudget() }

func (s *Session) Metrics() (PortfolioMetrics, error) { return s.state.Metrics(s.catalog) }

func (s *Session) Ranking() ([]AllocationRow, error) {
	return RankByEffectiveness(s.catalog, s.state.allocations)
}

func (s *Session) Breakdown() ([]CategoryBreakdown, error) {
	return GroupByCategory(s.catalog, s.state.allocations)
}

func (s *Session) Projection() ([]YearProjection, error) {
	return s.projector.Project(s.catalog, s.state.allocations, s.state.Budgets())
}

// Report computes the full report of the current state.
func (s *Session) Report() (*Report, error) {
	return NewReport(s.catalog, s.state, s.projector)
}
