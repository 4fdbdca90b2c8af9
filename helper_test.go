package carbonplan

import "testing"

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// intervention is a helper for test to create a valid intervention named after its id.
func intervention(id string, c Category, costPerTonne, maxTonnesPerYear float64) Intervention {
	return must(NewIntervention(id, c, id, costPerTonne, maxTonnesPerYear))
}

// alloc is a helper for test to create allocations from a literal.
func alloc(spend map[string]float64) Allocations {
	return must(NewAllocations(spend))
}

// testCatalog returns a small catalog over two categories.
//
//	elec-a  Electricity  30 £/t  100 t
//	elec-b  Electricity  80 £/t  100 t
//	elec-c  Electricity  30 £/t   50 t
//	gas-a   Gas/Heating 120 £/t  200 t
//	water-a Water        60 £/t   10 t
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		intervention("elec-a", Electricity, 30, 100),
		intervention("elec-b", Electricity, 80, 100),
		intervention("elec-c", Electricity, 30, 50),
		intervention("gas-a", GasHeating, 120, 200),
		intervention("water-a", Water, 60, 10),
	)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}
