// Package pipeline runs voice input end to end: transcription when
// needed, intent classification, session dispatch, and audit logging.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/intent"
	"github.com/kfarah/kitchenbuddy/internal/logger"
	"github.com/kfarah/kitchenbuddy/internal/session"
	"github.com/kfarah/kitchenbuddy/internal/speech"
)

// Option configures the pipeline.
type Option func(*Pipeline)

// WithTranscriber enables server-side audio transcription.
func WithTranscriber(t domain.Transcriber) Option {
	return func(p *Pipeline) { p.transcriber = t }
}

// WithCommandLog enables voice command auditing.
func WithCommandLog(l domain.CommandLog) Option {
	return func(p *Pipeline) { p.commands = l }
}

// Pipeline is the voice front door. Every utterance flows through
// HandleText; HandleAudio transcribes first.
type Pipeline struct {
	classifier  *intent.Classifier
	controller  *session.Controller
	transcriber domain.Transcriber
	commands    domain.CommandLog
	log         *logger.Logger
}

// New creates a pipeline with the given dependencies and options.
func New(classifier *intent.Classifier, controller *session.Controller, log *logger.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier: classifier,
		controller: controller,
		log:        log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HandleText classifies one utterance and dispatches it. The audit
// record is best effort: a logging failure never fails the command.
func (p *Pipeline) HandleText(ctx context.Context, userID, text string) domain.Response {
	detected := p.classifier.Classify(text)
	p.log.Debug("user=%s text=%q intent=%s", userID, text, detected)

	resp := p.controller.Handle(ctx, session.Command{
		UserID: userID,
		Text:   text,
		Intent: detected,
	})

	p.record(ctx, userID, text, detected, resp)
	return resp
}

// HandleAudio transcribes audio and runs the result through HandleText.
// Without a transcriber it degrades to a user-facing unavailable
// response rather than an error.
func (p *Pipeline) HandleAudio(ctx context.Context, userID string, audio []byte) domain.Response {
	if p.transcriber == nil {
		return domain.Response{
			Intent:  domain.IntentUnknown.String(),
			Message: speech.LineTranscriptionUnavailable(),
		}
	}

	text, err := p.transcriber.Transcribe(ctx, audio)
	if errors.Is(err, domain.ErrNoTranscript) {
		return domain.Response{
			Intent:  domain.IntentUnknown.String(),
			Message: speech.LineNoTranscript(),
		}
	}
	if err != nil {
		p.log.Warn("transcription failed for user %s: %v", userID, err)
		return domain.Response{
			Intent:  domain.IntentUnknown.String(),
			Message: speech.LineTranscriptionUnavailable(),
		}
	}
	if strings.TrimSpace(text) == "" {
		return domain.Response{
			Intent:  domain.IntentUnknown.String(),
			Message: speech.LineNoTranscript(),
		}
	}

	return p.HandleText(ctx, userID, text)
}

func (p *Pipeline) record(ctx context.Context, userID, text string, detected domain.Intent, resp domain.Response) {
	if p.commands == nil {
		return
	}
	rec := &domain.VoiceCommandRecord{
		UserID:    userID,
		Text:      text,
		Intent:    detected,
		Response:  resp.Message,
		Success:   resp.Success,
		Timestamp: time.Now(),
	}
	if err := p.commands.Record(ctx, rec); err != nil {
		p.log.Warn("recording voice command: %v", err)
	}
}
