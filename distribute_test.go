package carbonplan

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDistributeByROI(t *testing.T) {
	a := intervention("a", Electricity, 30, 100)
	b := intervention("b", Electricity, 80, 100)

	testCases := []struct {
		name        string
		category    []Intervention
		allocations Allocations
		remaining   float64
		want        map[string]float64
		wantFills   []Fill
	}{
		{
			name:        "cheapest first",
			category:    []Intervention{b, a},
			allocations: Allocations{},
			remaining:   4000,
			want:        map[string]float64{"a": 3000, "b": 1000},
			wantFills:   []Fill{{InterventionID: "a", Added: 3000}, {InterventionID: "b", Added: 1000}},
		},
		{
			name:        "tops up existing allocations",
			category:    []Intervention{a, b},
			allocations: alloc(map[string]float64{"a": 1500, "b": 400}),
			remaining:   2000,
			want:        map[string]float64{"a": 3000, "b": 900},
			wantFills:   []Fill{{InterventionID: "a", Previous: 1500, Added: 1500}, {InterventionID: "b", Previous: 400, Added: 500}},
		},
		{
			name:        "skips saturated interventions",
			category:    []Intervention{a, b},
			allocations: alloc(map[string]float64{"a": 5000}),
			remaining:   800,
			want:        map[string]float64{"a": 5000, "b": 800},
			wantFills:   []Fill{{InterventionID: "b", Added: 800}},
		},
		{
			name:        "budget left over when everything is full",
			category:    []Intervention{a, b},
			allocations: Allocations{},
			remaining:   100000,
			want:        map[string]float64{"a": 3000, "b": 8000},
			wantFills:   []Fill{{InterventionID: "a", Added: 3000}, {InterventionID: "b", Added: 8000}},
		},
		{
			name:        "no remaining budget",
			category:    []Intervention{a, b},
			allocations: alloc(map[string]float64{"b": 10}),
			remaining:   -50,
			want:        map[string]float64{"b": 10},
		},
		{
			name:        "other categories are untouched",
			category:    []Intervention{a},
			allocations: alloc(map[string]float64{"gas": 123}),
			remaining:   600,
			want:        map[string]float64{"a": 600, "gas": 123},
			wantFills:   []Fill{{InterventionID: "a", Added: 600}},
		},
		{
			name:        "empty category",
			category:    nil,
			allocations: Allocations{},
			remaining:   600,
			want:        map[string]float64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.allocations.Map()
			got, fills, err := DistributeByROI(tc.category, tc.allocations, tc.remaining)
			if err != nil {
				t.Fatalf("DistributeByROI() error = %v", err)
			}
			if diff := cmp.Diff(tc.want, got.Map(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("DistributeByROI() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantFills, fills, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("DistributeByROI() fills mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, tc.allocations.Map()); diff != "" {
				t.Errorf("DistributeByROI() modified its input (-before +after):\n%s", diff)
			}
		})
	}
}

func TestDistributeByROI_Scenario(t *testing.T) {
	a := intervention("a", Travel, 30, 100)
	b := intervention("b", Travel, 80, 100)

	got := must3(DistributeByROI([]Intervention{a, b}, Allocations{}, 4000))

	if abatA := must(Abatement(a, got.Spend("a"))); abatA != 100 {
		t.Errorf("abatement of a = %v, want 100", abatA)
	}
	if abatB := must(Abatement(b, got.Spend("b"))); abatB != 12.5 {
		t.Errorf("abatement of b = %v, want 12.5", abatB)
	}
}

func TestDistributeByROI_Invariants(t *testing.T) {
	c := DefaultCatalog()
	start := make(map[string]float64)
	for k, i := range c.Interventions() {
		start[i.ID()] = float64(k%4) * i.CeilingSpend() / 3
	}
	for _, cat := range c.Categories() {
		for _, remaining := range []float64{0, 1, 1234.5, 25000, 1e7} {
			before := alloc(start)
			after, _, err := DistributeByROI(c.InCategory(cat), before, remaining)
			if err != nil {
				t.Fatalf("DistributeByROI(%v, %v) error = %v", cat, remaining, err)
			}
			added := 0.
			for _, i := range c.Interventions() {
				b, a := before.Spend(i.ID()), after.Spend(i.ID())
				if a < b {
					t.Errorf("DistributeByROI(%v, %v) reduced %s from %v to %v", cat, remaining, i.ID(), b, a)
				}
				if i.Category() != cat && a != b {
					t.Errorf("DistributeByROI(%v, %v) changed %s in %v", cat, remaining, i.ID(), i.Category())
				}
				if b <= i.CeilingSpend() && a > i.CeilingSpend()*(1+1e-12) {
					t.Errorf("DistributeByROI(%v, %v) funded %s above its ceiling: %v > %v", cat, remaining, i.ID(), a, i.CeilingSpend())
				}
				added += a - b
			}
			if added > remaining+1e-6 {
				t.Errorf("DistributeByROI(%v, %v) added %v", cat, remaining, added)
			}
		}
	}
}

func TestDistributeByROI_InvalidInput(t *testing.T) {
	a := intervention("a", Electricity, 30, 100)
	g := intervention("g", GasHeating, 30, 100)

	if _, _, err := DistributeByROI([]Intervention{a, g}, Allocations{}, 100); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("DistributeByROI(mixed categories) error = %v, want %v", err, ErrInvalidInput)
	}
	if _, _, err := DistributeByROI([]Intervention{a}, Allocations{}, math.NaN()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("DistributeByROI(NaN) error = %v, want %v", err, ErrInvalidInput)
	}
}

func TestCanDistribute(t *testing.T) {
	a := intervention("a", Water, 30, 100)
	b := intervention("b", Water, 80, 100)
	full := alloc(map[string]float64{"a": 3000, "b": 8000})

	testCases := []struct {
		name        string
		allocations Allocations
		remaining   float64
		want        bool
	}{
		{name: "budget and capacity", allocations: Allocations{}, remaining: 10, want: true},
		{name: "no budget", allocations: Allocations{}, remaining: 0, want: false},
		{name: "overspent", allocations: Allocations{}, remaining: -10, want: false},
		{name: "no capacity", allocations: full, remaining: 1000, want: false},
		{name: "NaN budget", allocations: Allocations{}, remaining: math.NaN(), want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanDistribute([]Intervention{a, b}, tc.allocations, tc.remaining); got != tc.want {
				t.Errorf("CanDistribute() = %v, want %v", got, tc.want)
			}
		})
	}
}

func must3[T, U any](v T, _ U, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
