package carbonplan

import "encoding/json"

// Efficiency buckets a cost per tonne.
type Efficiency int

const (
	Excellent Efficiency = iota // up to £50/t, including an undefined cost of 0
	Good                        // up to £100/t
	Fair                        // up to £150/t
	Poor                        // above £150/t
)

// Classify returns the efficiency class of a cost per tonne.
func Classify(costPerTonne float64) Efficiency {
	switch {
	case costPerTonne <= 50:
		return Excellent
	case costPerTonne <= 100:
		return Good
	case costPerTonne <= 150:
		return Fair
	default:
		return Poor
	}
}

func (e Efficiency) String() string {
	switch e {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Fair:
		return "fair"
	default:
		return "poor"
	}
}

func (e Efficiency) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }
