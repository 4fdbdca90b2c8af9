package carbonplan

import (
	"fmt"
	"math"
)

// Abatement returns the tonnes of CO₂e avoided per year by spending 'spend'
// on the intervention.
//
// The response is linear until the intervention ceiling, then flat:
//
//	min(maxTonnesPerYear, spend / costPerTonne)
//
// A spend lower or equal to zero abates nothing.
func Abatement(i Intervention, spend float64) (float64, error) {
	if !isFinite(spend) {
		return 0, fmt.Errorf("%w: spend on %q is not a finite number: %v", ErrInvalidInput, i.id, spend)
	}
	if err := i.validate(); err != nil {
		return 0, err
	}
	if spend <= 0 {
		return 0, nil
	}
	return math.Min(i.maxTonnesPerYear, spend/i.costPerTonne), nil
}

// abatement is Abatement for values already checked by the caller.
func abatement(i Intervention, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return math.Min(i.maxTonnesPerYear, spend/i.costPerTonne)
}
