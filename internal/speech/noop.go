package speech

import (
	"context"

	"github.com/hammamikhairi/nebulapick/internal/domain"
	"github.com/hammamikhairi/nebulapick/internal/logger"
)

// Compile-time interface check.
var _ domain.Speaker = (*NoOpSpeaker)(nil)

// NoOpSpeaker is a speaker that does nothing. Used when sound is
// disabled or when no platform TTS command exists.
type NoOpSpeaker struct {
	log *logger.Logger
}

// NewNoOpSpeaker creates a no-op speaker.
func NewNoOpSpeaker(log *logger.Logger) *NoOpSpeaker {
	return &NoOpSpeaker{log: log}
}

// Announce does nothing.
func (n *NoOpSpeaker) Announce(ctx context.Context, winners domain.WinnerSet) error {
	n.log.Debug("speech no-op: would announce %d winners", len(winners))
	return nil
}

// Cancel does nothing.
func (n *NoOpSpeaker) Cancel() {}
