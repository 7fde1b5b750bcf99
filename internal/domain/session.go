package domain

import "time"

// CookingSession tracks which recipe and step a user has in progress.
// At most one active session exists per user; starting a new recipe
// supersedes any prior active session.
type CookingSession struct {
	ID          string
	UserID      string
	RecipeID    string
	CurrentStep int // 1-based
	IsActive    bool
	StartedAt   time.Time
	CompletedAt time.Time // zero until the session ends
}

// End deactivates the session and stamps its completion time.
func (s *CookingSession) End(now time.Time) {
	s.IsActive = false
	s.CompletedAt = now
}

// VoiceCommandRecord is one entry in the write-only voice command audit
// trail: what the user said, what we made of it, and how we answered.
type VoiceCommandRecord struct {
	UserID    string
	Text      string
	Intent    Intent
	Response  string
	Success   bool
	Timestamp time.Time
}
