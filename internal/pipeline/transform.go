package pipeline

import (
	"math"

	"solar_telemetry"
)

// Transformer maps a raw integer payload to a reported value. The
// instant is a calibration hook for time-dependent adjustment; neither
// current policy branches on it, but the parameter stays in the
// contract so a future calibration can use it without an interface
// change.
type Transformer interface {
	Transform(raw int, at solar_telemetry.Instant) float64
}

// voltsPerCount converts the sensor's raw counts to volts.
const voltsPerCount = 0.062

// LinearScale produces a physical voltage reading.
type LinearScale struct{}

func (LinearScale) Transform(raw int, _ solar_telemetry.Instant) float64 {
	return round2(float64(raw) * voltsPerCount)
}

// Piecewise adjustment bands, applied to the doubled raw value.
const (
	lowBandLimit  = 1000.0
	midBandLimit  = 2000.0
	lowBandOffset = 800.0
	midBandOffset = 400.0
)

// PiecewisePower doubles the raw payload and lifts low and mid bands by
// fixed offsets; values above midBandLimit pass through unchanged.
type PiecewisePower struct{}

func (PiecewisePower) Transform(raw int, _ solar_telemetry.Instant) float64 {
	doubled := float64(raw) * 2
	switch {
	case doubled < lowBandLimit:
		doubled += lowBandOffset
	case doubled <= midBandLimit:
		doubled += midBandOffset
	}
	return round2(doubled)
}

// round2 rounds to 2 decimal places. Applied once at the end of every
// transform and summary, never at intermediate steps.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// VoltsToWatts derives an indicative wattage from a mean voltage, as
// displayed alongside voltage aggregates.
func VoltsToWatts(volts float64) float64 {
	return round2(volts * volts / 24 * 2)
}
