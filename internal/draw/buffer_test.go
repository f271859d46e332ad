package draw

import (
	"testing"

	"github.com/hammamikhairi/nebulapick/internal/domain"
)

func TestBufferLifecycle(t *testing.T) {
	var b Buffer
	wave := domain.Waveform{0.1, -0.2, 0.3}

	b.Reset(1)
	if _, ok := b.Take(1); ok {
		t.Fatal("fresh buffer should be absent")
	}

	if !b.Put(1, wave) {
		t.Fatal("put for current generation rejected")
	}
	got, ok := b.Take(1)
	if !ok || len(got) != len(wave) {
		t.Fatalf("expected stored wave, got %v (ok=%v)", got, ok)
	}
}

func TestBufferDiscardsStaleGeneration(t *testing.T) {
	var b Buffer
	wave := domain.Waveform{0.5}

	b.Reset(1)
	b.Reset(2) // a new draw started before synthesis finished

	if b.Put(1, wave) {
		t.Fatal("stale put accepted")
	}
	if _, ok := b.Take(2); ok {
		t.Fatal("new draw observed a stale announcement")
	}
}

func TestBufferFail(t *testing.T) {
	var b Buffer

	b.Reset(3)
	b.Fail(3)
	if _, ok := b.Take(3); ok {
		t.Fatal("failed buffer should read as absent")
	}

	// A failure reported for an older draw must not clobber a newer result.
	b.Reset(4)
	b.Put(4, domain.Waveform{1})
	b.Fail(3)
	if _, ok := b.Take(4); !ok {
		t.Fatal("stale failure clobbered current announcement")
	}
}

func TestBufferRejectsEmptyWave(t *testing.T) {
	var b Buffer
	b.Reset(1)
	if b.Put(1, nil) {
		t.Fatal("empty waveform accepted")
	}
	if _, ok := b.Take(1); ok {
		t.Fatal("buffer should stay absent after empty put")
	}
}

func TestBufferTakeWrongGeneration(t *testing.T) {
	var b Buffer
	b.Reset(5)
	b.Put(5, domain.Waveform{0.7})

	if _, ok := b.Take(4); ok {
		t.Fatal("take with old generation succeeded")
	}
	if _, ok := b.Take(6); ok {
		t.Fatal("take with future generation succeeded")
	}
}
