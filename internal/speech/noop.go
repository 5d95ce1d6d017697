// Package speech turns utterance plans into audio: SSML rendering, Azure
// synthesis, a disk-backed audio cache, and playback through oto.
package speech

import (
	"context"

	"github.com/hammamikhairi/robobarista/internal/domain"
	"github.com/hammamikhairi/robobarista/internal/logger"
)

// Compile-time interface check.
var _ domain.Speaker = (*NoOp)(nil)

// NoOp is a speaker that only logs. Used when voice is disabled.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a no-op speaker.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Speak logs the plan instead of playing it.
func (n *NoOp) Speak(ctx context.Context, plan domain.Plan) error {
	n.log.Debug("speech no-op: would say %s", plan)
	return nil
}
