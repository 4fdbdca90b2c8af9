package carbonplan

import (
	"encoding/json"
	"fmt"
	"math"
)

// Intervention is a discrete, fundable action with a fixed unit cost and an
// annual abatement ceiling.
//
// Interventions are immutable, and can only be built by NewIntervention
// (or decoded from a catalog) so that the cost and the ceiling are always
// strictly positive.
type Intervention struct {
	id               string
	category         Category
	name             string
	costPerTonne     float64
	maxTonnesPerYear float64
}

// NewIntervention creates an intervention, checking its invariants.
func NewIntervention(id string, category Category, name string, costPerTonne, maxTonnesPerYear float64) (Intervention, error) {
	i := Intervention{
		id:               id,
		category:         category,
		name:             name,
		costPerTonne:     costPerTonne,
		maxTonnesPerYear: maxTonnesPerYear,
	}
	if err := i.validate(); err != nil {
		return Intervention{}, fmt.Errorf("%w: %w", ErrCatalogIntegrity, err)
	}
	return i, nil
}

func (i Intervention) ID() string                { return i.id }
func (i Intervention) Category() Category        { return i.category }
func (i Intervention) Name() string              { return i.name }
func (i Intervention) CostPerTonne() float64     { return i.costPerTonne }
func (i Intervention) MaxTonnesPerYear() float64 { return i.maxTonnesPerYear }

// CeilingSpend is the spend at which the intervention reaches its ceiling.
// Any spend above it buys no extra abatement.
func (i Intervention) CeilingSpend() float64 { return i.costPerTonne * i.maxTonnesPerYear }

func (i Intervention) String() string {
	return fmt.Sprintf("%s (%s)", i.name, i.id)
}

// validate returns an ErrInvalidInput error for the first broken invariant.
func (i Intervention) validate() error {
	switch {
	case i.id == "":
		return fmt.Errorf("%w: intervention id is empty", ErrInvalidInput)
	case !i.category.Valid():
		return fmt.Errorf("%w: intervention %q has an unknown category", ErrInvalidInput, i.id)
	case !isFinite(i.costPerTonne) || i.costPerTonne <= 0:
		return fmt.Errorf("%w: intervention %q cost per tonne must be positive, got %v", ErrInvalidInput, i.id, i.costPerTonne)
	case !isFinite(i.maxTonnesPerYear) || i.maxTonnesPerYear <= 0:
		return fmt.Errorf("%w: intervention %q max tonnes per year must be positive, got %v", ErrInvalidInput, i.id, i.maxTonnesPerYear)
	}
	return nil
}

// interventionJSON is the wire form of an intervention in a catalog file.
type interventionJSON struct {
	ID               string   `json:"id"`
	Category         Category `json:"category"`
	Name             string   `json:"name"`
	CostPerTonne     float64  `json:"costPerTonne"`
	MaxTonnesPerYear float64  `json:"maxTonnesPerYear"`
}

func (i Intervention) MarshalJSON() ([]byte, error) {
	return json.Marshal(interventionJSON{
		ID:               i.id,
		Category:         i.category,
		Name:             i.name,
		CostPerTonne:     i.costPerTonne,
		MaxTonnesPerYear: i.maxTonnesPerYear,
	})
}

// UnmarshalJSON decodes an intervention and checks its invariants.
func (i *Intervention) UnmarshalJSON(data []byte) error {
	var v interventionJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	decoded, err := NewIntervention(v.ID, v.Category, v.Name, v.CostPerTonne, v.MaxTonnesPerYear)
	if err != nil {
		return err
	}
	*i = decoded
	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
