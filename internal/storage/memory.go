// Package storage provides cooking-session and voice-command-log
// persistence implementations.
package storage

import (
	"context"
	"sync"

	"github.com/kfarah/kitchenbuddy/internal/domain"
	"github.com/kfarah/kitchenbuddy/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.SessionStore = (*MemoryStore)(nil)
	_ domain.CommandLog   = (*MemoryCommandLog)(nil)
)

// MemoryStore is an in-memory session store. Safe for concurrent access.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.CookingSession
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.CookingSession),
		log:      log,
	}
}

// Save persists a session. Overwrites if it already exists.
func (s *MemoryStore) Save(ctx context.Context, session *domain.CookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving session %s (user=%s recipe=%s step=%d active=%v)",
		session.ID, session.UserID, session.RecipeID, session.CurrentStep, session.IsActive)
	s.sessions[session.ID] = session
	return nil
}

// ActiveForUser returns the user's active session, or ErrNotFound.
func (s *MemoryStore) ActiveForUser(ctx context.Context, userID string) (*domain.CookingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.IsActive {
			return sess, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MemoryCommandLog collects voice command records in memory. Write-only
// for the pipeline; tests read it back through Records.
type MemoryCommandLog struct {
	mu      sync.Mutex
	records []domain.VoiceCommandRecord
}

// NewMemoryCommandLog creates an empty command log.
func NewMemoryCommandLog() *MemoryCommandLog {
	return &MemoryCommandLog{}
}

// Record appends one audit entry.
func (l *MemoryCommandLog) Record(ctx context.Context, rec *domain.VoiceCommandRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, *rec)
	return nil
}

// Records returns a copy of everything recorded so far.
func (l *MemoryCommandLog) Records() []domain.VoiceCommandRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.VoiceCommandRecord, len(l.records))
	copy(out, l.records)
	return out
}
