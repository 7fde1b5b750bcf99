package domain

import "context"

// RecipeSource provides read-only recipe lookups. Implementations can be
// in-memory (seeded), database-backed, or API-backed. The pipeline never
// writes recipes.
type RecipeSource interface {
	Get(ctx context.Context, id string) (*Recipe, error)
	ListAll(ctx context.Context) ([]*Recipe, error)
	Search(ctx context.Context, query, category, dietary string) ([]RecipeSummary, error)
}

// SessionStore persists cooking sessions. Implementations can be
// in-memory or Redis-backed.
type SessionStore interface {
	Save(ctx context.Context, session *CookingSession) error
	ActiveForUser(ctx context.Context, userID string) (*CookingSession, error)
}

// CommandLog is the write-only voice command audit trail. Entries are
// never read back by the pipeline.
type CommandLog interface {
	Record(ctx context.Context, rec *VoiceCommandRecord) error
}

// Transcriber converts captured audio into text. ErrNoTranscript means
// the audio carried no recognizable speech; ErrUnavailable means no
// backend is configured. The no-op implementation is used when speech
// input is disabled.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Narrator speaks messages to the user. Fire-and-forget: failures are
// logged by implementations and never block or fail the caller.
type Narrator interface {
	Say(ctx context.Context, text string)
}

// Responder answers open-ended cooking questions. Implementations may
// call a remote model or answer from a local knowledge base.
type Responder interface {
	Respond(ctx context.Context, query string, rctx ResponderContext) (string, error)
}

// ResponderContext carries the cooking context attached to an AI query.
type ResponderContext struct {
	UserID      string
	RecipeID    string
	CurrentStep int
}
