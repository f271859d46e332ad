// Package audio owns the shared sound output: percussive ticks, the
// reveal fanfare, and playback of the synthesized announcement. The oto
// context is a single process-wide resource, created on first use and
// resumed on demand. Every method is best-effort; playback failures are
// returned for logging but must never abort a draw.
package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

// Compile-time interface check.
var _ domain.Sound = (*Engine)(nil)

// SampleRate matches the announcement pipeline so one oto context
// serves both the local tones and the decoded remote waveform.
const SampleRate = 24000

// Engine plays tones and waveforms through oto.
type Engine struct {
	log *logger.Logger

	mu      sync.Mutex
	ctx     *oto.Context
	initErr error

	tickPCM    []byte
	fanfarePCM []byte
}

// New creates the audio engine. The underlying context is not created
// until the first Resume or playback call, so a machine without an
// audio device only fails when sound is actually used.
func New(log *logger.Logger) *Engine {
	return &Engine{log: log}
}

// ensureContext lazily creates the oto context and the pre-rendered
// tone buffers.
func (e *Engine) ensureContext() (*oto.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctx != nil || e.initErr != nil {
		return e.ctx, e.initErr
	}

	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		e.initErr = err
		return nil, err
	}
	<-readyChan

	e.ctx = ctx
	e.tickPCM = toPCM(tickTone())
	e.fanfarePCM = toPCM(fanfareWave())

	e.log.Debug("audio engine initialized (rate=%d)", SampleRate)
	return e.ctx, nil
}

// Resume lazily creates or resumes the audio context. Failures are
// logged and swallowed here because Resume is called on the draw start
// path, where audio must never block the draw.
func (e *Engine) Resume() {
	ctx, err := e.ensureContext()
	if err != nil {
		e.log.Warn("audio context unavailable: %v", err)
		return
	}
	if err := ctx.Resume(); err != nil {
		e.log.Debug("audio resume: %v", err)
	}
}

// Tick plays one short percussive tone. Non-blocking; overlapping ticks
// are fine at the fast cadence.
func (e *Engine) Tick() error {
	ctx, err := e.ensureContext()
	if err != nil {
		return err
	}
	e.playAsync(ctx, e.tickPCM)
	return nil
}

// Fanfare plays the reveal fanfare: an ascending triad, a sustained
// chord, and a descending bass sweep. Non-blocking.
func (e *Engine) Fanfare() error {
	ctx, err := e.ensureContext()
	if err != nil {
		return err
	}
	e.playAsync(ctx, e.fanfarePCM)
	return nil
}

// PlayWaveform plays a decoded announcement, blocking until playback
// finishes or ctx is cancelled.
func (e *Engine) PlayWaveform(ctx context.Context, w domain.Waveform) error {
	octx, err := e.ensureContext()
	if err != nil {
		return err
	}

	pcm := toPCM([]float32(w))
	player := octx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	e.log.Debug("audio: playing announcement (%d samples)", len(w))

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return player.Close()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return player.Close()
}

// playAsync starts playback and reaps the player in the background.
func (e *Engine) playAsync(ctx *oto.Context, pcm []byte) {
	if len(pcm) == 0 {
		return
	}
	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

// ── Tone synthesis ───────────────────────────────────────────────

// tickTone is a snappy 30 ms tick with a fast exponential decay.
func tickTone() []float32 {
	return tone(1200, 0.03, 0.5, 60)
}

// fanfareNote places one tone at a start offset within the fanfare.
type fanfareNote struct {
	freq    float64
	start   float64 // seconds
	dur     float64 // seconds
	volume  float64
	decay   float64
	glideTo float64 // 0 = constant pitch
}

// fanfareScore is the fixed reveal fanfare: C5-E5-G5 ascending, a
// sustained C-major chord with the octave on top, and a bass sweep
// falling away underneath. Presentation tuning, not contract.
var fanfareScore = []fanfareNote{
	{freq: 523.25, start: 0.00, dur: 0.15, volume: 0.4, decay: 8},
	{freq: 659.25, start: 0.12, dur: 0.15, volume: 0.4, decay: 8},
	{freq: 783.99, start: 0.24, dur: 0.15, volume: 0.4, decay: 8},
	{freq: 523.25, start: 0.36, dur: 0.70, volume: 0.25, decay: 3},
	{freq: 659.25, start: 0.36, dur: 0.70, volume: 0.25, decay: 3},
	{freq: 783.99, start: 0.36, dur: 0.70, volume: 0.25, decay: 3},
	{freq: 1046.50, start: 0.36, dur: 0.70, volume: 0.3, decay: 3},
	{freq: 300, start: 0.40, dur: 0.50, volume: 0.3, decay: 4, glideTo: 80},
}

// fanfareWave renders the score into one mixed buffer.
func fanfareWave() []float32 {
	end := 0.0
	for _, n := range fanfareScore {
		if n.start+n.dur > end {
			end = n.start + n.dur
		}
	}

	out := make([]float32, int(end*SampleRate))
	for _, n := range fanfareScore {
		var wave []float32
		if n.glideTo > 0 {
			wave = sweep(n.freq, n.glideTo, n.dur, n.volume, n.decay)
		} else {
			wave = tone(n.freq, n.dur, n.volume, n.decay)
		}
		mix(out, wave, int(n.start*SampleRate))
	}
	return out
}

// tone renders a decaying sine at a constant frequency.
func tone(freq, duration, volume, decay float64) []float32 {
	samples := int(duration * SampleRate)
	out := make([]float32, samples)
	for i := range out {
		t := float64(i) / SampleRate
		envelope := math.Exp(-t * decay)
		out[i] = float32(math.Sin(2*math.Pi*freq*t) * volume * envelope)
	}
	return out
}

// sweep renders a decaying sine gliding linearly from one frequency to
// another, integrating phase so the glide stays click-free.
func sweep(from, to, duration, volume, decay float64) []float32 {
	samples := int(duration * SampleRate)
	out := make([]float32, samples)
	phase := 0.0
	for i := range out {
		t := float64(i) / SampleRate
		freq := from + (to-from)*(t/duration)
		phase += 2 * math.Pi * freq / SampleRate
		envelope := math.Exp(-t * decay)
		out[i] = float32(math.Sin(phase) * volume * envelope)
	}
	return out
}

// mix adds src into dst at the given sample offset, clipping to [-1, 1].
func mix(dst, src []float32, offset int) {
	for i, s := range src {
		j := offset + i
		if j < 0 || j >= len(dst) {
			continue
		}
		v := dst[j] + s
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		dst[j] = v
	}
}

// toPCM converts a normalized waveform into little-endian 16-bit PCM.
func toPCM(wave []float32) []byte {
	out := make([]byte, len(wave)*2)
	for i, s := range wave {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}
