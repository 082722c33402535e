// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the lifecycle status of an expense.
type ExpenseStatus string

const (
	ExpenseStatusDraft     ExpenseStatus = "draft"
	ExpenseStatusSubmitted ExpenseStatus = "submitted"
	ExpenseStatusApproved  ExpenseStatus = "approved"
	ExpenseStatusRejected  ExpenseStatus = "rejected"
	ExpenseStatusPaid      ExpenseStatus = "paid"
)

// AllExpenseStatuses lists every lifecycle status in declaration order.
var AllExpenseStatuses = []ExpenseStatus{
	ExpenseStatusDraft,
	ExpenseStatusSubmitted,
	ExpenseStatusApproved,
	ExpenseStatusRejected,
	ExpenseStatusPaid,
}

// IsValidExpenseStatus reports whether s is a known lifecycle status.
func IsValidExpenseStatus(s ExpenseStatus) bool {
	switch s {
	case ExpenseStatusDraft, ExpenseStatusSubmitted, ExpenseStatusApproved,
		ExpenseStatusRejected, ExpenseStatusPaid:
		return true
	}
	return false
}

// Expense represents an expense claim in the system.
// Status and the lifecycle timestamps are mutated only through the expense
// use cases; presentation code never assigns them directly.
type Expense struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Amount          decimal.Decimal
	Currency        string
	CategoryID      uuid.UUID
	UserID          uuid.UUID
	Status          ExpenseStatus
	ExpenseDate     time.Time
	CreatedAt       time.Time
	SubmittedAt     *time.Time
	ApprovedAt      *time.Time
	RejectedAt      *time.Time
	PaidAt          *time.Time
	ApprovedByID    *uuid.UUID
	RejectedByID    *uuid.UUID
	PaidByID        *uuid.UUID
	ApprovalNotes   string
	RejectionReason string
	AttachmentIDs   []uuid.UUID
}

// NewExpense creates a new Expense entity in draft status.
func NewExpense(
	userID uuid.UUID,
	title string,
	description string,
	amount decimal.Decimal,
	currency string,
	categoryID uuid.UUID,
	expenseDate time.Time,
) *Expense {
	return &Expense{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Amount:      amount,
		Currency:    currency,
		CategoryID:  categoryID,
		UserID:      userID,
		Status:      ExpenseStatusDraft,
		ExpenseDate: expenseDate,
		CreatedAt:   time.Now().UTC(),
	}
}

// Clone returns a deep copy of the expense. Repositories hand out clones so
// callers can never observe a record mid-mutation.
func (e *Expense) Clone() *Expense {
	cp := *e
	cp.SubmittedAt = cloneTime(e.SubmittedAt)
	cp.ApprovedAt = cloneTime(e.ApprovedAt)
	cp.RejectedAt = cloneTime(e.RejectedAt)
	cp.PaidAt = cloneTime(e.PaidAt)
	cp.ApprovedByID = cloneUUID(e.ApprovedByID)
	cp.RejectedByID = cloneUUID(e.RejectedByID)
	cp.PaidByID = cloneUUID(e.PaidByID)
	if e.AttachmentIDs != nil {
		cp.AttachmentIDs = make([]uuid.UUID, len(e.AttachmentIDs))
		copy(cp.AttachmentIDs, e.AttachmentIDs)
	}
	return &cp
}

// ClearRejection removes the rejection markers left by a previous Reject.
func (e *Expense) ClearRejection() {
	e.RejectedAt = nil
	e.RejectedByID = nil
	e.RejectionReason = ""
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}

// ExpenseWithRelations represents an expense together with its resolved
// category and owner for display purposes.
type ExpenseWithRelations struct {
	Expense  *Expense
	Category *Category
	User     *User
}
