package draw

import "math"

// Curve parameters. These are presentation tuning, not protocol; the
// defaults match the shipped animation feel.
const (
	// BaseSpeed is the resting animation speed before and after a draw.
	BaseSpeed = 2.0
	// PeakSpeed is the plateau speed at full spin.
	PeakSpeed = 35.0

	// wobbleAmplitude bounds the plateau oscillation.
	wobbleAmplitude = 3.0
	// wobblePeriodMs divides the wall clock so the wobble never repeats
	// identically between draws.
	wobblePeriodMs = 50.0

	// rampUpEnd and rampDownStart split the window into the three
	// curve segments.
	rampUpEnd     = 0.2
	rampDownStart = 0.8
)

// Speed maps normalized draw progress in [0, 1) to an animation speed
// scalar. wallMs is the current wall-clock time in milliseconds; it only
// influences the plateau wobble, so the function is otherwise pure.
//
// Ramp-up is linear, the plateau wobbles around the peak, and ramp-down
// is a cubic ease-out so the stop feels like a deceleration rather than
// a mirror of the launch.
func Speed(progress, wallMs float64) float64 {
	switch {
	case progress < rampUpEnd:
		t := progress / rampUpEnd
		return BaseSpeed + (PeakSpeed-BaseSpeed)*t
	case progress < rampDownStart:
		return PeakSpeed + wobbleAmplitude*math.Sin(wallMs/wobblePeriodMs)
	default:
		q := (progress - rampDownStart) / (1 - rampDownStart)
		return PeakSpeed*(1-q*q*q) + BaseSpeed
	}
}
