package game

import "errors"

var (
	ErrNoActiveSession = errors.New("no active session for user")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionEnded    = errors.New("session already ended")
	ErrTallyExhausted  = errors.New("all questions of the session already answered")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
