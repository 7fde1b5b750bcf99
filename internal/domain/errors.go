package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrNoTranscript = errors.New("could not transcribe audio")
	ErrUnavailable  = errors.New("collaborator unavailable")
)
