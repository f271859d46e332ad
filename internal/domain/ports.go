package domain

import "context"

// Waveform is decoded mono audio, one float per sample, normalized to
// [-1, 1]. The sample rate is fixed by the speech pipeline (24 kHz).
type Waveform []float32

// Synthesizer converts a winner set into a spoken announcement waveform.
// Implementations call out to a remote speech-generation service; the
// draw controller invokes this in the background and never waits on it.
type Synthesizer interface {
	Synthesize(ctx context.Context, winners WinnerSet) (Waveform, error)
}

// Speaker is the platform text-to-speech fallback path. Announce
// dispatches the congratulation utterance for a winner set; at most one
// utterance is active system-wide, so a new Announce preempts the
// previous one. Cancel stops the active utterance, if any.
type Speaker interface {
	Announce(ctx context.Context, winners WinnerSet) error
	Cancel()
}

// PoolSource provides the name pool a draw reads from. Snapshot returns
// an immutable copy; Freeze and Thaw bracket a running draw, during
// which pool mutations are rejected.
type PoolSource interface {
	Snapshot() []string
	Freeze()
	Thaw()
}

// Sound is the shared audio output surface: percussive ticks, the reveal
// fanfare, and playback of a decoded announcement waveform. All methods
// are best-effort; errors are reported so call sites can log them, but
// no audio failure may ever abort a draw.
type Sound interface {
	// Resume lazily creates or resumes the audio output context.
	Resume()
	// Tick plays one short percussive tone.
	Tick() error
	// Fanfare plays the fixed reveal fanfare.
	Fanfare() error
	// PlayWaveform plays a decoded announcement, blocking until done.
	PlayWaveform(ctx context.Context, w Waveform) error
}

// Presenter receives the draw controller's published outputs. The
// rendering collaborator consumes speed every frame and the winner set
// at reveal; Celebrate is a fire-and-forget side effect sized by the
// number of winners.
type Presenter interface {
	PublishSpeed(speed float64)
	RevealWinners(winners WinnerSet)
	Celebrate(winnerCount int)
}
