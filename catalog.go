package carbonplan

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

//go:embed catalog.jsonl
var defaultCatalog []byte

// Catalog is the immutable, ordered list of interventions available for
// funding.
type Catalog struct {
	interventions []Intervention
	index         map[string]int
}

// NewCatalog creates a catalog from interventions, in the given order.
//
// The whole load is rejected if any entry breaks the intervention
// invariants or reuses an id: a catalog is never partially loaded.
func NewCatalog(interventions ...Intervention) (*Catalog, error) {
	c := &Catalog{
		interventions: make([]Intervention, 0, len(interventions)),
		index:         make(map[string]int, len(interventions)),
	}
	for _, i := range interventions {
		if err := i.validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalogIntegrity, err)
		}
		if _, exists := c.index[i.id]; exists {
			return nil, fmt.Errorf("%w: duplicate intervention id %q", ErrCatalogIntegrity, i.id)
		}
		c.index[i.id] = len(c.interventions)
		c.interventions = append(c.interventions, i)
	}
	return c, nil
}

// DefaultCatalog returns the compiled-in reference catalog.
func DefaultCatalog() *Catalog {
	c, err := DecodeCatalog(bytes.NewReader(defaultCatalog))
	if err != nil {
		// the embedded dataset is checked by the tests.
		panic(err)
	}
	return c
}

// DecodeCatalog reads a catalog from a stream of JSONL data, one
// intervention per line.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var interventions []Intervention
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var i Intervention
		if err := json.Unmarshal(lineBytes, &i); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrCatalogIntegrity, line, err)
		}
		interventions = append(interventions, i)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}
	return NewCatalog(interventions...)
}

// EncodeCatalog writes the catalog as JSONL, in catalog order.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	enc := json.NewEncoder(w)
	for _, i := range c.interventions {
		if err := enc.Encode(i); err != nil {
			return fmt.Errorf("error encoding intervention %q: %w", i.id, err)
		}
	}
	return nil
}

// Len returns the number of interventions.
func (c *Catalog) Len() int { return len(c.interventions) }

// Interventions returns a copy of the interventions in catalog order.
func (c *Catalog) Interventions() []Intervention { return slices.Clone(c.interventions) }

// Lookup returns the intervention with the given id.
func (c *Catalog) Lookup(id string) (Intervention, bool) {
	pos, ok := c.index[id]
	if !ok {
		return Intervention{}, false
	}
	return c.interventions[pos], true
}

// InCategory returns the interventions of one category in catalog order.
func (c *Catalog) InCategory(category Category) []Intervention {
	var res []Intervention
	for _, i := range c.interventions {
		if i.category == category {
			res = append(res, i)
		}
	}
	return res
}

// Categories returns the categories present in the catalog, in canonical
// order.
func (c *Catalog) Categories() []Category {
	var res []Category
	for _, cat := range AllCategories() {
		if slices.ContainsFunc(c.interventions, func(i Intervention) bool { return i.category == cat }) {
			res = append(res, cat)
		}
	}
	return res
}
