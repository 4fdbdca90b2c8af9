package carbonplan

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 15 {
		t.Errorf("DefaultCatalog().Len() = %d, want 15", c.Len())
	}
	if diff := cmp.Diff(AllCategories(), c.Categories()); diff != "" {
		t.Errorf("DefaultCatalog().Categories() mismatch (-want +got):\n%s", diff)
	}
	for _, cat := range AllCategories() {
		if n := len(c.InCategory(cat)); n != 3 {
			t.Errorf("DefaultCatalog() has %d interventions in %v, want 3", n, cat)
		}
	}
	i, ok := c.Lookup("solar-pv")
	if !ok {
		t.Fatalf("DefaultCatalog().Lookup(solar-pv) not found")
	}
	if i.Category() != Electricity || i.CostPerTonne() != 85 || i.MaxTonnesPerYear() != 400 {
		t.Errorf("DefaultCatalog().Lookup(solar-pv) = %+v", i)
	}
}

func TestNewCatalog_Integrity(t *testing.T) {
	valid := intervention("a", Water, 10, 10)

	testCases := []struct {
		name          string
		interventions []Intervention
	}{
		{name: "duplicate id", interventions: []Intervention{valid, valid}},
		{name: "zero value", interventions: []Intervention{valid, {}}},
		{name: "zero cost", interventions: []Intervention{{id: "b", category: Water, maxTonnesPerYear: 1}}},
		{name: "zero ceiling", interventions: []Intervention{{id: "b", category: Water, costPerTonne: 1}}},
		{name: "unknown category", interventions: []Intervention{{id: "b", costPerTonne: 1, maxTonnesPerYear: 1}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCatalog(tc.interventions...)
			if !errors.Is(err, ErrCatalogIntegrity) {
				t.Errorf("NewCatalog() error = %v, want %v", err, ErrCatalogIntegrity)
			}
			if c != nil {
				t.Errorf("NewCatalog() = %v, want no catalog", c)
			}
		})
	}
}

func TestNewIntervention(t *testing.T) {
	if _, err := NewIntervention("x", Waste, "X", 0, 10); !errors.Is(err, ErrCatalogIntegrity) {
		t.Errorf("NewIntervention(cost 0) error = %v, want %v", err, ErrCatalogIntegrity)
	}
	if _, err := NewIntervention("x", Waste, "X", 10, -1); !errors.Is(err, ErrCatalogIntegrity) {
		t.Errorf("NewIntervention(max -1) error = %v, want %v", err, ErrCatalogIntegrity)
	}
	i, err := NewIntervention("x", Waste, "X", 10, 5)
	if err != nil {
		t.Fatalf("NewIntervention() error = %v", err)
	}
	if got := i.CeilingSpend(); got != 50 {
		t.Errorf("CeilingSpend() = %v, want 50", got)
	}
}

func TestDecodeCatalog(t *testing.T) {
	input := `{"id":"a","category":"Water","name":"A","costPerTonne":10,"maxTonnesPerYear":5}

{"id":"b","category":"gas","name":"B","costPerTonne":20,"maxTonnesPerYear":7.5}
`
	c, err := DecodeCatalog(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCatalog() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("DecodeCatalog().Len() = %d, want 2", c.Len())
	}
	b, _ := c.Lookup("b")
	if b.Category() != GasHeating || b.MaxTonnesPerYear() != 7.5 {
		t.Errorf("DecodeCatalog() b = %+v", b)
	}

	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, c); err != nil {
		t.Fatalf("EncodeCatalog() error = %v", err)
	}
	want := `{"id":"a","category":"Water","name":"A","costPerTonne":10,"maxTonnesPerYear":5}
{"id":"b","category":"Gas/Heating","name":"B","costPerTonne":20,"maxTonnesPerYear":7.5}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeCatalog() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCatalog_Rejected(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "negative cost", input: `{"id":"a","category":"Water","name":"A","costPerTonne":-10,"maxTonnesPerYear":5}`},
		{name: "missing ceiling", input: `{"id":"a","category":"Water","name":"A","costPerTonne":10}`},
		{name: "unknown category", input: `{"id":"a","category":"Food","name":"A","costPerTonne":10,"maxTonnesPerYear":5}`},
		{name: "not json", input: `id=a`},
		{name: "duplicate", input: `{"id":"a","category":"Water","costPerTonne":1,"maxTonnesPerYear":1}
{"id":"a","category":"Waste","costPerTonne":1,"maxTonnesPerYear":1}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeCatalog(strings.NewReader(tc.input))
			if !errors.Is(err, ErrCatalogIntegrity) {
				t.Errorf("DecodeCatalog() error = %v, want %v", err, ErrCatalogIntegrity)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	testCases := []struct {
		in   string
		want Category
	}{
		{"Electricity", Electricity},
		{"gas/heating", GasHeating},
		{"Gas-Heating", GasHeating},
		{" heating ", GasHeating},
		{"WATER", Water},
		{"waste", Waste},
		{"travel", Travel},
	}
	for _, tc := range testCases {
		got, err := ParseCategory(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseCategory(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
		if back, err := ParseCategory(got.Slug()); err != nil || back != got {
			t.Errorf("ParseCategory(%q.Slug()) = %v, %v", got, back, err)
		}
	}
	if _, err := ParseCategory("food"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseCategory(food) error = %v, want %v", err, ErrInvalidInput)
	}
}
