// Package expense contains expense lifecycle use cases.
package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// ExpenseOutput represents a full expense as returned by mutating use cases.
type ExpenseOutput struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Amount          decimal.Decimal
	Currency        string
	CategoryID      uuid.UUID
	UserID          uuid.UUID
	Status          entity.ExpenseStatus
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
}

// ExpenseListItem represents one row of the role-filtered listing, with the
// action flags the presentation layer renders as buttons.
type ExpenseListItem struct {
	ID              uuid.UUID
	Title           string
	Amount          decimal.Decimal
	Currency        string
	CategoryName    string
	CategoryIcon    string
	Status          entity.ExpenseStatus
	ExpenseDate     time.Time
	UserDisplayName string
	Permissions     Permissions
}

// Fallbacks when a referenced category or user no longer resolves.
const (
	unknownName = "Unknown"
)

func toExpenseOutput(e *entity.Expense) *ExpenseOutput {
	return &ExpenseOutput{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Amount:          e.Amount,
		Currency:        e.Currency,
		CategoryID:      e.CategoryID,
		UserID:          e.UserID,
		Status:          e.Status,
		ExpenseDate:     e.ExpenseDate,
		CreatedAt:       e.CreatedAt,
		SubmittedAt:     e.SubmittedAt,
		ApprovedAt:      e.ApprovedAt,
		RejectedAt:      e.RejectedAt,
		PaidAt:          e.PaidAt,
		ApprovedByID:    e.ApprovedByID,
		RejectedByID:    e.RejectedByID,
		PaidByID:        e.PaidByID,
		ApprovalNotes:   e.ApprovalNotes,
		RejectionReason: e.RejectionReason,
	}
}

func toExpenseListItem(e *entity.Expense, category *entity.Category, user *entity.User, actorID uuid.UUID, isManager bool) *ExpenseListItem {
	item := &ExpenseListItem{
		ID:              e.ID,
		Title:           e.Title,
		Amount:          e.Amount,
		Currency:        e.Currency,
		CategoryName:    unknownName,
		CategoryIcon:    entity.DefaultCategoryIcon,
		Status:          e.Status,
		ExpenseDate:     e.ExpenseDate,
		UserDisplayName: unknownName,
		Permissions:     PermissionsFor(e.Status, e.UserID == actorID, isManager),
	}
	if category != nil {
		item.CategoryName = category.Name
		item.CategoryIcon = category.Icon
	}
	if user != nil {
		item.UserDisplayName = user.DisplayName
	}
	return item
}
