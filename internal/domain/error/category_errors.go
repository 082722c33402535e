// Package error defines domain-specific errors for the expense claims application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameRequired is returned when a category is created without a name.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameExists is returned when attempting to create a category with an existing name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrInvalidCategoryLimit is returned when a category limit is not positive.
	ErrInvalidCategoryLimit = errors.New("category limits must be greater than 0")

	// ErrMonthlyLimitBelowMax is returned when the monthly limit is lower than the per-expense maximum.
	ErrMonthlyLimitBelowMax = errors.New("monthly limit cannot be lower than the per-expense maximum")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is the error class and YYYY the specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameRequired  CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryLimit  CategoryErrorCode = "CAT-010003"
	ErrCodeMonthlyLimitBelowMax  CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010005"

	// Not-found errors (04XXXX)
	ErrCodeCategoryNotFound CategoryErrorCode = "CAT-040001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
