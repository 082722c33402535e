// Package error defines domain-specific errors for the expense claims application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserInactive is returned when the user account is deactivated.
	ErrUserInactive = errors.New("user is inactive")

	// ErrInvalidToken is returned when a session token fails validation.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUTH-XXYYYY where XX is the error class and YYYY the specific error.
type AuthErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingToken AuthErrorCode = "AUTH-010001"
	ErrCodeInvalidToken AuthErrorCode = "AUTH-010002"
	ErrCodeUserInactive AuthErrorCode = "AUTH-010003"
	ErrCodeRateLimited  AuthErrorCode = "AUTH-010004"

	// Not-found errors (04XXXX)
	ErrCodeUserNotFound AuthErrorCode = "AUTH-040001"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
