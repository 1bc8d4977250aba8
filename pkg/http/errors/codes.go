package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"
	ErrCodeInvalidToken     = "invalid_token"

	// Resource errors
	ErrCodeUnknownCategory = "unknown_category"
	ErrCodeNoActiveSession = "no_active_session"
	ErrCodeSessionNotFound = "session_not_found"
	ErrCodeSessionEnded    = "session_ended"
	ErrCodeTallyExhausted  = "tally_exhausted"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
