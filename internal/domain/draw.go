// Package domain holds the core lottery types and the ports the draw
// engine depends on. It has no dependencies outside the standard library.
package domain

// Phase tracks the lifecycle of the draw controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseRevealing
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseRevealing:
		return "revealing"
	default:
		return "unknown"
	}
}

// DrawRequest captures the inputs to a single draw at the moment it starts.
// The pool slice is snapshotted by the caller; the engine never mutates it.
type DrawRequest struct {
	Pool        []string
	WinnerCount int
}

// EffectiveCount is the number of winners this request can actually
// produce: the requested count clamped to the pool size, never negative.
func (r DrawRequest) EffectiveCount() int {
	n := r.WinnerCount
	if n > len(r.Pool) {
		n = len(r.Pool)
	}
	if n < 0 {
		n = 0
	}
	return n
}

// WinnerSet is the outcome of a single draw: an ordered sequence of
// distinct pool members, chosen once at draw start and never recomputed.
// The order carries no meaning beyond presentation.
type WinnerSet []string
