package carbonplan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is one of the fixed groups an intervention belongs to.
type Category int

// Categories in their canonical order.
const (
	Electricity Category = iota + 1
	GasHeating
	Water
	Waste
	Travel
)

// AllCategories returns every category in canonical order.
func AllCategories() []Category {
	return []Category{Electricity, GasHeating, Water, Waste, Travel}
}

var categoryNames = map[Category]string{
	Electricity: "Electricity",
	GasHeating:  "Gas/Heating",
	Water:       "Water",
	Waste:       "Waste",
	Travel:      "Travel",
}

// slugs accepted by ParseCategory on top of the display names.
var categorySlugs = map[string]Category{
	"electricity": Electricity,
	"gas":         GasHeating,
	"heating":     GasHeating,
	"gas-heating": GasHeating,
	"gas/heating": GasHeating,
	"water":       Water,
	"waste":       Waste,
	"travel":      Travel,
}

// ParseCategory parses a category display name or slug, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c, ok := categorySlugs[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Slug returns the lower case, shell friendly name of the category.
func (c Category) Slug() string {
	if c == GasHeating {
		return "gas-heating"
	}
	return strings.ToLower(c.String())
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: cannot marshal %v", ErrInvalidInput, c)
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
