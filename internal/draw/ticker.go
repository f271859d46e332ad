package draw

import "time"

// Tick cadence bounds. At base speed ticks arrive every slowTickInterval;
// at peak speed they compress to fastTickInterval.
const (
	slowTickInterval = 500 * time.Millisecond
	fastTickInterval = 40 * time.Millisecond
)

// TickScheduler converts the current animation speed into a percussive
// tick cadence. It keeps a single watermark: the next instant a tick is
// eligible to fire. It knows nothing about frame timing, so the cadence
// stays correct however often the frame loop polls it.
type TickScheduler struct {
	next time.Time
}

// TickInterval returns the gap between ticks for a given speed: linear
// interpolation between the slow and fast cadence, clamped to that range.
func TickInterval(speed float64) time.Duration {
	factor := (speed - BaseSpeed) / (PeakSpeed - BaseSpeed)
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	slow := float64(slowTickInterval)
	fast := float64(fastTickInterval)
	return time.Duration(slow - factor*(slow-fast))
}

// ShouldFire reports whether a tick fires at now given the current speed.
// Firing advances the watermark to now plus the speed's interval.
func (s *TickScheduler) ShouldFire(now time.Time, speed float64) bool {
	if !now.After(s.next) {
		return false
	}
	s.next = now.Add(TickInterval(speed))
	return true
}

// Reset clears the watermark so the next poll fires immediately.
func (s *TickScheduler) Reset() {
	s.next = time.Time{}
}
