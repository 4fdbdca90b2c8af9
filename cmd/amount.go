package cmd

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var amountSuffixes = map[string]decimal.Decimal{
	"k": decimal.NewFromInt(1_000),
	"m": decimal.NewFromInt(1_000_000),
}

// ParseAmount parses a user amount like "250000", "£250,000", "250k" or
// "1.5M". The sign is kept, validation is left to the operations.
func ParseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.NewReplacer("£", "", ",", "", "_", "", " ", "").Replace(clean)
	factor := decimal.NewFromInt(1)
	if n := len(clean); n > 0 {
		if f, ok := amountSuffixes[strings.ToLower(clean[n-1:])]; ok {
			factor, clean = f, clean[:n-1]
		}
	}
	if clean == "" {
		return 0, fmt.Errorf("empty amount %q", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d.Mul(factor).InexactFloat64(), nil
}

// ParseAmounts parses every amount.
func ParseAmounts(values []string) ([]float64, error) {
	res := make([]float64, 0, len(values))
	for _, v := range values {
		a, err := ParseAmount(v)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}
