package audio

import (
	"math"
	"testing"
)

func TestToneLengthAndBounds(t *testing.T) {
	wave := tone(440, 0.1, 0.5, 10)
	if len(wave) != SampleRate/10 {
		t.Fatalf("expected %d samples, got %d", SampleRate/10, len(wave))
	}
	for i, s := range wave {
		if s > 0.5 || s < -0.5 {
			t.Fatalf("sample %d = %v exceeds volume bound", i, s)
		}
	}
}

func TestToneEnvelopeDecays(t *testing.T) {
	wave := tone(1200, 0.03, 0.5, 60)

	peak := func(from, to int) float64 {
		max := 0.0
		for _, s := range wave[from:to] {
			if a := math.Abs(float64(s)); a > max {
				max = a
			}
		}
		return max
	}

	head := peak(0, len(wave)/4)
	tail := peak(3*len(wave)/4, len(wave))
	if tail >= head {
		t.Fatalf("envelope not decaying: head=%v tail=%v", head, tail)
	}
}

func TestFanfareNonEmpty(t *testing.T) {
	wave := fanfareWave()
	if len(wave) == 0 {
		t.Fatal("fanfare rendered empty")
	}

	// It must actually contain audible signal.
	energy := 0.0
	for _, s := range wave {
		energy += float64(s) * float64(s)
	}
	if energy == 0 {
		t.Fatal("fanfare is silent")
	}

	// And stay within the normalized range after mixing.
	for i, s := range wave {
		if s > 1 || s < -1 {
			t.Fatalf("sample %d = %v outside [-1, 1]", i, s)
		}
	}
}

func TestMixOffsets(t *testing.T) {
	dst := make([]float32, 10)
	src := []float32{0.5, 0.5}

	mix(dst, src, 4)
	if dst[3] != 0 || dst[4] != 0.5 || dst[5] != 0.5 || dst[6] != 0 {
		t.Fatalf("mix placed samples wrong: %v", dst)
	}

	// Out-of-range offsets are dropped, not panicking.
	mix(dst, src, 9)
	mix(dst, src, -1)
	if dst[9] != 0.5 {
		t.Fatalf("partial tail mix failed: %v", dst)
	}
}

func TestMixClips(t *testing.T) {
	dst := []float32{0.9}
	mix(dst, []float32{0.9}, 0)
	if dst[0] != 1 {
		t.Fatalf("expected clip to 1, got %v", dst[0])
	}
}

func TestToPCM(t *testing.T) {
	pcm := toPCM([]float32{0, 1, -1, 2, -2})
	if len(pcm) != 10 {
		t.Fatalf("expected 10 bytes, got %d", len(pcm))
	}

	read := func(i int) int16 {
		return int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
	}
	if read(0) != 0 {
		t.Fatalf("zero sample encoded as %d", read(0))
	}
	if read(1) != 32767 {
		t.Fatalf("full-scale sample encoded as %d", read(1))
	}
	if read(2) != -32767 {
		t.Fatalf("negative full-scale encoded as %d", read(2))
	}
	// Out-of-range input clamps instead of wrapping.
	if read(3) != 32767 || read(4) != -32767 {
		t.Fatalf("clamping failed: %d, %d", read(3), read(4))
	}
}
