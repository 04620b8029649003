package pipeline

import "fmt"

// Policy names accepted in configuration.
const (
	PolicyVoltage = "voltage"
	PolicyPower   = "power"
)

// Policy pairs a transformer with its matching aggregator plus the
// presentation attributes that follow from the pairing. The two halves
// are chosen together at configuration time and must never be mixed.
type Policy struct {
	Name        string
	Transformer Transformer
	Aggregator  Aggregator
	ValueLabel  string  // column label in exports
	ExportBase  string  // export filename prefix
	ChartMax    float64 // bar ceiling; 0 means unbounded
	Watts       bool    // derive a watts figure per aggregate
}

// VoltagePolicy: linear scaling with a positive-mean summary.
func VoltagePolicy() Policy {
	return Policy{
		Name:        PolicyVoltage,
		Transformer: LinearScale{},
		Aggregator:  PositiveMean{},
		ValueLabel:  "Voltaje (V)",
		ExportBase:  "voltajes",
		ChartMax:    250,
		Watts:       true,
	}
}

// PowerPolicy: piecewise adjustment with a capacity-percentage summary.
func PowerPolicy() Policy {
	return Policy{
		Name:        PolicyPower,
		Transformer: PiecewisePower{},
		Aggregator:  PowerPercentage{},
		ValueLabel:  "Potencia (%)",
		ExportBase:  "potencias",
	}
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyVoltage:
		return VoltagePolicy(), nil
	case PolicyPower:
		return PowerPolicy(), nil
	default:
		return Policy{}, fmt.Errorf("unknown pipeline policy %q, expected %q or %q", name, PolicyVoltage, PolicyPower)
	}
}
