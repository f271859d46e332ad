package draw

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

// Default timing. The window and reveal delay are presentation tuning;
// change them with options, not by editing call sites.
const (
	DefaultWindow        = 8 * time.Second
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultRevealDelay   = 600 * time.Millisecond
)

// Option configures the controller.
type Option func(*Controller)

// WithClock substitutes the wall clock. Tests pass a fake clock to
// fast-forward through the animation window.
func WithClock(c clockwork.Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithWindow sets the fixed draw animation duration.
func WithWindow(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.window = d }
}

// WithFrameInterval sets how often the frame loop wakes up. The window
// deadline is computed from timestamps, so a slow frame rate only makes
// the animation coarser, never longer.
func WithFrameInterval(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.frameInterval = d }
}

// WithRevealDelay sets the pause between the fanfare starting and the
// spoken announcement, so the fanfare's opening stays audible.
func WithRevealDelay(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.revealDelay = d }
}

// WithRand substitutes the random source used for winner selection.
func WithRand(rng *rand.Rand) Option {
	return func(ctrl *Controller) { ctrl.rng = rng }
}

// WithSynthesizer enables the remote announcement path. Without one the
// reveal always uses the fallback speaker.
func WithSynthesizer(s domain.Synthesizer) Option {
	return func(ctrl *Controller) { ctrl.synth = s }
}

// Controller is the draw state machine: Idle -> Running -> Revealing ->
// Idle. It commits to the winner set at draw start, drives the speed
// curve and tick cadence over the fixed window, runs announcement
// synthesis in the background, and resolves speech exactly once at
// reveal time. A second Start while running is a no-op.
type Controller struct {
	pool    domain.PoolSource
	speaker domain.Speaker
	sound   domain.Sound
	present domain.Presenter
	synth   domain.Synthesizer // nil when the feature is disabled
	log     *logger.Logger

	clock         clockwork.Clock
	rng           *rand.Rand
	window        time.Duration
	frameInterval time.Duration
	revealDelay   time.Duration

	mu           sync.Mutex
	phase        domain.Phase
	generation   uint64
	winners      domain.WinnerSet // visible until Dismiss
	winnerCount  int
	soundEnabled bool
	cancelLoop   context.CancelFunc
	buffer       Buffer
}

// New creates a draw controller. The synthesizer is optional (see
// WithSynthesizer); everything else is required.
func New(pool domain.PoolSource, speaker domain.Speaker, sound domain.Sound, present domain.Presenter, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		pool:          pool,
		speaker:       speaker,
		sound:         sound,
		present:       present,
		log:           log,
		clock:         clockwork.NewRealClock(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		window:        DefaultWindow,
		frameInterval: DefaultFrameInterval,
		revealDelay:   DefaultRevealDelay,
		winnerCount:   1,
		soundEnabled:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the controller's current phase.
func (c *Controller) Phase() domain.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Winners returns the most recent winner set, or nil after Dismiss.
func (c *Controller) Winners() domain.WinnerSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.winners
}

// SetWinnerCount sets the requested winner count for future draws. The
// count is clamped to the pool size when a draw starts. Rejected while
// a draw is running.
func (c *Controller) SetWinnerCount(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != domain.PhaseIdle {
		return domain.ErrDrawInProgress
	}
	if n < 1 {
		n = 1
	}
	c.winnerCount = n
	return nil
}

// WinnerCount returns the currently requested winner count.
func (c *Controller) WinnerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.winnerCount
}

// SetSoundEnabled gates every audio path: ticks, fanfare, synthesized
// announcement, and fallback speech.
func (c *Controller) SetSoundEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.soundEnabled = on
}

// SoundEnabled reports whether audio is enabled.
func (c *Controller) SoundEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.soundEnabled
}

// Start begins a draw. The winner set is committed here, before the
// frame loop or the synthesis request exist, so both read an immutable
// snapshot. Returns ErrDrawInProgress if a draw is already running and
// ErrEmptyPool if there is nothing to draw from; neither changes state.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != domain.PhaseIdle {
		c.mu.Unlock()
		c.log.Debug("start ignored: draw already %s", c.phase)
		return domain.ErrDrawInProgress
	}

	req := domain.DrawRequest{Pool: c.pool.Snapshot(), WinnerCount: c.winnerCount}
	count := req.EffectiveCount()
	if count == 0 {
		c.mu.Unlock()
		return domain.ErrEmptyPool
	}

	c.phase = domain.PhaseRunning
	c.generation++
	gen := c.generation
	winners := Select(c.rng, req.Pool, count)
	c.winners = winners
	c.buffer.Reset(gen)
	soundOn := c.soundEnabled

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancelLoop = cancel
	c.mu.Unlock()

	c.pool.Freeze()

	if soundOn {
		c.sound.Resume()
		if c.synth != nil {
			// Fire-and-forget. The request outlives loop cancellation;
			// a late result is discarded by the generation check. The
			// timeout bounds background resource retention.
			sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), c.window+c.revealDelay)
			go func() {
				defer scancel()
				c.synthesize(sctx, gen, winners)
			}()
		}
	}

	started := c.clock.Now()
	go c.runLoop(loopCtx, gen, started, winners, soundOn)

	c.log.Info("draw %d started: picking %d of %d names", gen, count, len(req.Pool))
	return nil
}

// synthesize requests the announcement and deposits the outcome in the
// buffer. Failure is the designed degrade-to-fallback path, never an
// error surfaced to the draw.
func (c *Controller) synthesize(ctx context.Context, gen uint64, winners domain.WinnerSet) {
	wave, err := c.synth.Synthesize(ctx, winners)
	if err != nil {
		c.log.Warn("draw %d: announcement synthesis failed: %v", gen, err)
		c.buffer.Fail(gen)
		return
	}
	if !c.buffer.Put(gen, wave) {
		c.log.Debug("draw %d: discarding late synthesis result", gen)
		return
	}
	c.log.Debug("draw %d: announcement ready (%d samples)", gen, len(wave))
}

// runLoop is the per-frame loop. Progress is computed from timestamps
// against the fixed window, so the 8 second deadline holds regardless
// of how often the ticker actually fires.
func (c *Controller) runLoop(ctx context.Context, gen uint64, started time.Time, winners domain.WinnerSet, soundOn bool) {
	ticker := c.clock.NewTicker(c.frameInterval)
	defer ticker.Stop()

	var ticks TickScheduler

	for {
		select {
		case <-ctx.Done():
			c.abort(gen)
			return
		case <-ticker.Chan():
			now := c.clock.Now()
			progress := float64(now.Sub(started)) / float64(c.window)
			if progress >= 1 {
				c.reveal(ctx, gen, winners, soundOn)
				return
			}

			speed := Speed(progress, float64(now.UnixMilli()))
			c.present.PublishSpeed(speed)

			if soundOn && ticks.ShouldFire(now, speed) {
				if err := c.sound.Tick(); err != nil {
					c.log.Debug("draw %d: tick tone failed: %v", gen, err)
				}
			}
		}
	}
}

// reveal performs the reveal sequence: publish the winner set, reset
// speed, fanfare, resolve speech after the fixed delay, celebrate, and
// return to idle. Runs at most once per draw.
func (c *Controller) reveal(ctx context.Context, gen uint64, winners domain.WinnerSet, soundOn bool) {
	c.mu.Lock()
	c.phase = domain.PhaseRevealing
	c.mu.Unlock()

	c.present.PublishSpeed(BaseSpeed)
	c.present.RevealWinners(winners)

	if soundOn {
		if err := c.sound.Fanfare(); err != nil {
			c.log.Warn("draw %d: fanfare failed: %v", gen, err)
		}

		// Leave the fanfare's opening audibly clear before speech.
		select {
		case <-ctx.Done():
		case <-c.clock.After(c.revealDelay):
			c.resolveSpeech(ctx, gen, winners)
		}
	}

	c.present.Celebrate(len(winners))
	c.pool.Thaw()

	c.mu.Lock()
	c.phase = domain.PhaseIdle
	c.cancelLoop = nil
	c.mu.Unlock()

	c.log.Info("draw %d revealed: %v", gen, []string(winners))
}

// resolveSpeech picks between the synthesized announcement and the
// fallback speaker using whatever the buffer holds at this instant.
// Synthesis that has not finished is treated identically to failure.
func (c *Controller) resolveSpeech(ctx context.Context, gen uint64, winners domain.WinnerSet) {
	wave, ok := c.buffer.Take(gen)
	if !ok {
		c.log.Debug("draw %d: no synthesized announcement, using fallback", gen)
		c.announceFallback(ctx, winners)
		return
	}

	// Playback runs in the background so the celebration isn't held up
	// by several seconds of audio. A playback error at the platform
	// boundary degrades to the fallback speaker instead of silence.
	go func() {
		if err := c.sound.PlayWaveform(ctx, wave); err != nil {
			c.log.Warn("draw %d: announcement playback failed: %v", gen, err)
			c.announceFallback(ctx, winners)
		}
	}()
}

func (c *Controller) announceFallback(ctx context.Context, winners domain.WinnerSet) {
	if err := c.speaker.Announce(ctx, winners); err != nil {
		c.log.Warn("fallback announcement failed: %v", err)
	}
}

// abort handles loop cancellation mid-draw: reset published speed and
// go back to idle. The in-flight synthesis request, if any, is left to
// complete and be discarded by the generation check.
func (c *Controller) abort(gen uint64) {
	c.present.PublishSpeed(BaseSpeed)
	c.pool.Thaw()

	c.mu.Lock()
	c.phase = domain.PhaseIdle
	c.cancelLoop = nil
	c.mu.Unlock()

	c.log.Info("draw %d aborted", gen)
}

// Dismiss discards the visible winner set after the reveal display is
// closed and cancels any in-flight fallback speech.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	c.winners = nil
	c.mu.Unlock()
	c.speaker.Cancel()
}

// Stop cancels the frame loop if a draw is running. Used on shutdown.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancelLoop
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
