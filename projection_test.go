package carbonplan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLinearProjection(t *testing.T) {
	c := testCatalog(t)
	// 40 t of elec-a and 10 t of gas-a for 2400.
	mix := alloc(map[string]float64{"elec-a": 1200, "gas-a": 1200})

	got, err := ProjectYears(c, mix, []float64{5000, 4800, 0, 9600, 240000})
	if err != nil {
		t.Fatalf("ProjectYears() error = %v", err)
	}
	want := []YearProjection{
		{Year: 1, Budget: 5000, Abatement: 50},
		{Year: 2, Budget: 4800, Abatement: 100},
		{Year: 3, Budget: 0, Abatement: 0},
		// 4x: elec-a capped at 100 t, gas-a 40 t.
		{Year: 4, Budget: 9600, Abatement: 140},
		// 100x: elec-a capped at 100 t, gas-a capped at 200 t.
		{Year: 5, Budget: 240000, Abatement: 300},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("ProjectYears() mismatch (-want +got):\n%s", diff)
	}
}

func TestLinearProjection_EmptyMix(t *testing.T) {
	got := must(ProjectYears(testCatalog(t), Allocations{}, []float64{1000, 2000}))
	for _, y := range got {
		if y.Abatement != 0 {
			t.Errorf("ProjectYears(empty mix) year %d = %v, want 0", y.Year, y.Abatement)
		}
	}
}

func TestLinearProjection_InvalidInput(t *testing.T) {
	if _, err := ProjectYears(testCatalog(t), Allocations{}, []float64{1, -1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ProjectYears(negative budget) error = %v, want %v", err, ErrInvalidInput)
	}
}

// flatProjection projects the current abatement for every year.
type flatProjection struct{}

func (flatProjection) Project(c *Catalog, mix Allocations, budgets []float64) ([]YearProjection, error) {
	m, err := ComputeMetrics(c, mix, 0, 0)
	if err != nil {
		return nil, err
	}
	res := make([]YearProjection, len(budgets))
	for k, b := range budgets {
		res[k] = YearProjection{Year: k + 1, Budget: b, Abatement: m.PortfolioAbatement}
	}
	return res, nil
}

func TestSession_WithProjector(t *testing.T) {
	s := must(NewSession(testCatalog(t))).WithProjector(flatProjection{})
	if err := s.SetAllocation("water-a", 300); err != nil {
		t.Fatalf("SetAllocation() error = %v", err)
	}
	got := must(s.Projection())
	for _, y := range got {
		if y.Abatement != 5 {
			t.Errorf("Projection() year %d = %v, want 5", y.Year, y.Abatement)
		}
	}
}
