package carbonplan

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Allocations maps intervention ids to the spend committed this planning
// year. Its zero value is an empty set of allocations, ready to use.
//
// Allocations is a value: With returns a modified copy and never changes the
// receiver. An id without an entry has a spend of zero, and a spend of zero
// is never stored.
type Allocations struct {
	spend map[string]float64
}

// NewAllocations creates allocations from a map of spend per id. Zero spends
// are dropped.
func NewAllocations(spend map[string]float64) (Allocations, error) {
	var a Allocations
	for _, id := range slices.Sorted(maps.Keys(spend)) {
		var err error
		if a, err = a.With(id, spend[id]); err != nil {
			return Allocations{}, err
		}
	}
	return a, nil
}

// SpendOf returns the spend allocated to id, or 0 if there is none.
func SpendOf(a Allocations, id string) float64 {
	return a.spend[id]
}

// Spend is a shortcut for SpendOf(a, id).
func (a Allocations) Spend(id string) float64 { return SpendOf(a, id) }

// With returns a copy of a where id is allocated spend. A spend of 0 clears
// the entry.
func (a Allocations) With(id string, spend float64) (Allocations, error) {
	if id == "" {
		return a, fmt.Errorf("%w: empty intervention id", ErrInvalidInput)
	}
	if !isFinite(spend) || spend < 0 {
		return a, fmt.Errorf("%w: spend for %q must be a non-negative number, got %v", ErrInvalidInput, id, spend)
	}
	n := Allocations{spend: maps.Clone(a.spend)}
	if n.spend == nil {
		n.spend = make(map[string]float64)
	}
	if spend == 0 {
		delete(n.spend, id)
	} else {
		n.spend[id] = spend
	}
	return n, nil
}

// Len returns the number of funded interventions.
func (a Allocations) Len() int { return len(a.spend) }

// Active returns the ids with a positive spend, sorted.
func (a Allocations) Active() []string {
	return slices.Sorted(maps.Keys(a.spend))
}

// Total returns the sum of all allocations, including ids that are unknown
// to the catalog.
func (a Allocations) Total() float64 {
	total := 0.
	// sorted keys to get the same rounding on every call.
	for _, id := range a.Active() {
		total += a.spend[id]
	}
	return total
}

// Map returns a copy of the allocations as a plain map.
func (a Allocations) Map() map[string]float64 {
	m := maps.Clone(a.spend)
	if m == nil {
		m = make(map[string]float64)
	}
	return m
}

// Equal reports whether both allocations hold exactly the same spends.
func (a Allocations) Equal(b Allocations) bool {
	return maps.Equal(a.spend, b.spend)
}

func (a Allocations) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Map())
}

func (a *Allocations) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	decoded, err := NewAllocations(m)
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
