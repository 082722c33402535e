// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for editing an expense.
type UpdateExpenseInput struct {
	ExpenseID   uuid.UUID
	ActorID     uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal
	Currency    string
	CategoryID  uuid.UUID
	ExpenseDate time.Time
}

// UpdateExpenseOutput represents the output of editing an expense.
type UpdateExpenseOutput struct {
	Expense *ExpenseOutput
}

// UpdateExpenseUseCase handles editing of draft and rejected expenses.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	auditRepo   adapter.AuditLogRepository
	validate    *ValidateExpenseUseCase
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	auditRepo adapter.AuditLogRepository,
	validate *ValidateExpenseUseCase,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
		validate:    validate,
	}
}

// Execute applies the edit. A rejected expense moves back to draft and its
// rejection markers are cleared.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	exp, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, notFoundError(err)
	}

	if exp.UserID != input.ActorID {
		// Do not confirm a foreign expense's existence to its non-owner.
		return nil, expenseNotFound()
	}

	if !canEdit(exp.Status, true) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotInEditableState,
			"only draft or rejected expenses can be edited",
			domainerror.ErrNotInEditableState,
		)
	}

	if err := validateExpenseFields(input.Title, input.Description); err != nil {
		return nil, err
	}

	excludeID := exp.ID
	if err := uc.validate.Execute(ctx, ValidateExpenseInput{
		UserID:           exp.UserID,
		Amount:           input.Amount,
		Currency:         input.Currency,
		CategoryID:       input.CategoryID,
		ExpenseDate:      input.ExpenseDate,
		ExcludeExpenseID: &excludeID,
	}); err != nil {
		return nil, err
	}

	oldValue := expenseSummary(exp)

	exp.Title = input.Title
	exp.Description = input.Description
	exp.Amount = input.Amount
	exp.Currency = input.Currency
	exp.CategoryID = input.CategoryID
	exp.ExpenseDate = input.ExpenseDate

	// Editing a rejected expense returns it to draft.
	if exp.Status == entity.ExpenseStatusRejected {
		exp.Status = entity.ExpenseStatusDraft
		exp.ClearRejection()
	}

	if err := uc.expenseRepo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	entry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionUpdated, input.ActorID)
	entry.OldValue = oldValue
	entry.NewValue = expenseSummary(exp)
	entry.Details = "Expense updated"
	recordAudit(ctx, uc.auditRepo, entry)

	return &UpdateExpenseOutput{Expense: toExpenseOutput(exp)}, nil
}

// notFoundError normalizes repository lookup failures to the domain error.
func notFoundError(err error) error {
	if err != nil {
		return expenseNotFound()
	}
	return nil
}

func expenseNotFound() error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotFound,
		"expense not found",
		domainerror.ErrExpenseNotFound,
	)
}
