package speech

import (
	"context"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.Narrator    = (*LogNarrator)(nil)
	_ domain.Transcriber = (*NoopTranscriber)(nil)
)

// LogNarrator writes narration to the log instead of a TTS engine. The
// browser speaks responses client-side, so the server only records what
// would be said.
type LogNarrator struct {
	log *logger.Logger
}

// NewLogNarrator creates a narrator backed by the logger.
func NewLogNarrator(log *logger.Logger) *LogNarrator {
	return &LogNarrator{log: log}
}

// Say logs the narration line. Never blocks, never fails.
func (n *LogNarrator) Say(ctx context.Context, text string) {
	n.log.Info("say: %s", text)
}

// NoopTranscriber is used when no speech-to-text backend is configured.
// Clients are expected to transcribe in the browser and send text.
type NoopTranscriber struct{}

// Transcribe always reports the backend as unavailable.
func (NoopTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", domain.ErrUnavailable
}
