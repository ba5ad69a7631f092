package apperror

// Stable machine-readable codes carried in every error envelope. Clients
// branch on these, not on messages, so they never change once shipped.
const (
	// Rejected requests (4xx).
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	// CodeInvalidState covers punches that are well-formed but not legal
	// from the user's current clock status.
	CodeInvalidState = "INVALID_STATE"

	// Failures on our side (5xx).
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
