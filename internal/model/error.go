package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeMissingFrame    = "MISSING_FRAME"
	ErrCodeInvalidFrame    = "INVALID_FRAME"
	ErrCodeSessionNotFound = "SESSION_NOT_FOUND"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrMissingFrame    = NewDomainError(ErrCodeMissingFrame, "Request is missing the frame image field")
	ErrInvalidFrame    = NewDomainError(ErrCodeInvalidFrame, "Frame could not be decoded as an image")
	ErrSessionNotFound = NewDomainError(ErrCodeSessionNotFound, "Scan session not found")
)
