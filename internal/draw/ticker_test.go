package draw

import (
	"testing"
	"time"
)

func TestTickIntervalBounds(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  time.Duration
	}{
		{"base speed", BaseSpeed, slowTickInterval},
		{"peak speed", PeakSpeed, fastTickInterval},
		{"below base clamps", 0, slowTickInterval},
		{"above peak clamps", PeakSpeed + wobbleAmplitude, fastTickInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TickInterval(tt.speed); got != tt.want {
				t.Fatalf("TickInterval(%v) = %v, want %v", tt.speed, got, tt.want)
			}
		})
	}
}

func TestTickIntervalMonotonicInSpeed(t *testing.T) {
	prev := TickInterval(0)
	for speed := 0.5; speed <= PeakSpeed+5; speed += 0.5 {
		got := TickInterval(speed)
		if got > prev {
			t.Fatalf("interval grew with speed at %v: %v > %v", speed, got, prev)
		}
		if got < fastTickInterval || got > slowTickInterval {
			t.Fatalf("interval %v outside [%v, %v]", got, fastTickInterval, slowTickInterval)
		}
		prev = got
	}
}

func TestTickSchedulerFiring(t *testing.T) {
	var s TickScheduler
	now := time.Unix(1000, 0)

	// Fresh scheduler fires on the first poll.
	if !s.ShouldFire(now, PeakSpeed) {
		t.Fatal("expected first poll to fire")
	}

	// Immediately after firing, nothing until the interval elapses.
	if s.ShouldFire(now.Add(time.Millisecond), PeakSpeed) {
		t.Fatal("fired before interval elapsed")
	}
	if s.ShouldFire(now.Add(fastTickInterval), PeakSpeed) {
		t.Fatal("fired exactly at the watermark; must be strictly after")
	}
	if !s.ShouldFire(now.Add(fastTickInterval+time.Millisecond), PeakSpeed) {
		t.Fatal("expected fire after interval elapsed")
	}
}

func TestTickSchedulerReset(t *testing.T) {
	var s TickScheduler
	now := time.Unix(2000, 0)

	s.ShouldFire(now, BaseSpeed)
	s.Reset()

	if !s.ShouldFire(now.Add(time.Nanosecond), BaseSpeed) {
		t.Fatal("expected fire immediately after reset")
	}
}

// Slow cadence at low speed, fast cadence at high speed: count firings
// over a simulated second of frame polls.
func TestTickCadenceTracksSpeed(t *testing.T) {
	countTicks := func(speed float64) int {
		var s TickScheduler
		start := time.Unix(3000, 0)
		fired := 0
		for ms := 0; ms < 1000; ms += 16 {
			if s.ShouldFire(start.Add(time.Duration(ms)*time.Millisecond), speed) {
				fired++
			}
		}
		return fired
	}

	slow := countTicks(BaseSpeed)
	fast := countTicks(PeakSpeed)
	if slow >= fast {
		t.Fatalf("expected faster cadence at peak speed: slow=%d fast=%d", slow, fast)
	}
	// 1 s at 500 ms spacing is 2-3 ticks; at 40 ms spacing with 16 ms
	// frames it lands in the high teens.
	if slow < 2 || slow > 3 {
		t.Fatalf("slow cadence fired %d times, expected 2-3", slow)
	}
	if fast < 15 {
		t.Fatalf("fast cadence fired %d times, expected at least 15", fast)
	}
}
