// Package error defines domain-specific errors for the expense claims application.
package error

import (
	"errors"
	"strings"
)

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the system.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidAmount is returned when the expense amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than 0")

	// ErrCurrencyNotAllowed is returned when the currency is not in the allowed set.
	ErrCurrencyNotAllowed = errors.New("currency not allowed")

	// ErrInvalidCategory is returned when the category does not exist or is inactive.
	ErrInvalidCategory = errors.New("invalid or inactive category")

	// ErrMaxAmountExceeded is returned when the amount exceeds the category's per-expense maximum.
	ErrMaxAmountExceeded = errors.New("amount exceeds category maximum")

	// ErrMonthlyLimitExceeded is returned when the amount would exceed the category's monthly limit.
	ErrMonthlyLimitExceeded = errors.New("monthly limit exceeded")

	// ErrRejectionReasonRequired is returned when a rejection is attempted without a reason.
	ErrRejectionReasonRequired = errors.New("rejection reason is required")

	// ErrTitleRequired is returned when the expense title is missing.
	ErrTitleRequired = errors.New("title is required")

	// ErrNotInSubmittableState is returned when submitting an expense that is neither draft nor rejected.
	ErrNotInSubmittableState = errors.New("only draft or rejected expenses can be submitted")

	// ErrNotInEditableState is returned when editing an expense that is neither draft nor rejected.
	ErrNotInEditableState = errors.New("only draft or rejected expenses can be edited")

	// ErrNotSubmitted is returned when approving or rejecting an expense that is not submitted.
	ErrNotSubmitted = errors.New("only submitted expenses can be approved or rejected")

	// ErrNotApproved is returned when marking as paid an expense that is not approved.
	ErrNotApproved = errors.New("only approved expenses can be marked as paid")

	// ErrNotDraft is returned when deleting an expense that is not a draft.
	ErrNotDraft = errors.New("only draft expenses can be deleted")

	// ErrNotExpenseOwner is returned when a user operates on an expense they do not own.
	ErrNotExpenseOwner = errors.New("not the owner of the expense")

	// ErrManagerRoleRequired is returned when a non-manager attempts a manager operation.
	ErrManagerRoleRequired = errors.New("manager role required")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is the error class and YYYY the specific error.
// Classes: 01 validation, 02 state, 03 permission, 04 not found.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount           ExpenseErrorCode = "EXP-010001"
	ErrCodeCurrencyNotAllowed      ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidCategory         ExpenseErrorCode = "EXP-010003"
	ErrCodeMaxAmountExceeded       ExpenseErrorCode = "EXP-010004"
	ErrCodeMonthlyLimitExceeded    ExpenseErrorCode = "EXP-010005"
	ErrCodeRejectionReasonRequired ExpenseErrorCode = "EXP-010006"
	ErrCodeTitleRequired           ExpenseErrorCode = "EXP-010007"
	ErrCodeMissingExpenseFields    ExpenseErrorCode = "EXP-010008"

	// State errors (02XXXX)
	ErrCodeNotInSubmittableState ExpenseErrorCode = "EXP-020001"
	ErrCodeNotInEditableState    ExpenseErrorCode = "EXP-020002"
	ErrCodeNotSubmitted          ExpenseErrorCode = "EXP-020003"
	ErrCodeNotApproved           ExpenseErrorCode = "EXP-020004"
	ErrCodeNotDraft              ExpenseErrorCode = "EXP-020005"

	// Permission errors (03XXXX)
	ErrCodeNotExpenseOwner     ExpenseErrorCode = "EXP-030001"
	ErrCodeManagerRoleRequired ExpenseErrorCode = "EXP-030002"

	// Not-found errors (04XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-040001"
)

// Error class prefixes derived from the code format.
const (
	classValidation = "01"
	classState      = "02"
	classPermission = "03"
	classNotFound   = "04"
)

// IsValidationCode reports whether the code belongs to the validation class.
func (c ExpenseErrorCode) IsValidationCode() bool { return c.class() == classValidation }

// IsStateCode reports whether the code belongs to the state class.
func (c ExpenseErrorCode) IsStateCode() bool { return c.class() == classState }

// IsPermissionCode reports whether the code belongs to the permission class.
func (c ExpenseErrorCode) IsPermissionCode() bool { return c.class() == classPermission }

// IsNotFoundCode reports whether the code belongs to the not-found class.
func (c ExpenseErrorCode) IsNotFoundCode() bool { return c.class() == classNotFound }

func (c ExpenseErrorCode) class() string {
	s := string(c)
	if i := strings.IndexByte(s, '-'); i >= 0 && len(s) >= i+3 {
		return s[i+1 : i+3]
	}
	return ""
}

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
