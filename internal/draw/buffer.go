package draw

import (
	"sync"

	"github.com/hammamikhairi/nebulapick/internal/domain"
)

// Buffer holds the announcement waveform produced by the background
// synthesizer until the controller consumes it at reveal time. Every
// value is tagged with the draw generation it was produced for; results
// arriving after the buffer has been reset for a newer draw are
// discarded, so a stale announcement can never be played against the
// wrong winner set.
type Buffer struct {
	mu      sync.Mutex
	gen     uint64
	wave    domain.Waveform
	present bool
}

// Reset clears the buffer and binds it to a new draw generation.
// Called at the start of every draw, before synthesis is requested.
func (b *Buffer) Reset(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen = gen
	b.wave = nil
	b.present = false
}

// Put deposits a synthesized waveform for the given generation. Returns
// false if the buffer has since been reset for a newer draw, in which
// case the waveform is discarded.
func (b *Buffer) Put(gen uint64, w domain.Waveform) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen || len(w) == 0 {
		return false
	}
	b.wave = w
	b.present = true
	return true
}

// Fail records that synthesis for the given generation failed. The
// buffer stays absent; the reveal will use the fallback path.
func (b *Buffer) Fail(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return
	}
	b.wave = nil
	b.present = false
}

// Take returns the waveform for the given generation if one is present.
// An absent, failed, or stale buffer returns false — all three are
// treated identically by the caller.
func (b *Buffer) Take(gen uint64) (domain.Waveform, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen || !b.present {
		return nil, false
	}
	return b.wave, true
}
