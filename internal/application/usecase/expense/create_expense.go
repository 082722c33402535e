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

const (
	// MaxTitleLength is the maximum allowed length for expense titles.
	MaxTitleLength = 200
	// MaxDescriptionLength is the maximum allowed length for expense descriptions.
	MaxDescriptionLength = 2000
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal
	Currency    string
	CategoryID  uuid.UUID
	ExpenseDate time.Time
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	auditRepo   adapter.AuditLogRepository
	validate    *ValidateExpenseUseCase
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	auditRepo adapter.AuditLogRepository,
	validate *ValidateExpenseUseCase,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
		validate:    validate,
	}
}

// Execute validates the candidate and stores a new draft expense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateExpenseFields(input.Title, input.Description); err != nil {
		return nil, err
	}

	if err := uc.validate.Execute(ctx, ValidateExpenseInput{
		UserID:      input.UserID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		CategoryID:  input.CategoryID,
		ExpenseDate: input.ExpenseDate,
	}); err != nil {
		return nil, err
	}

	exp := entity.NewExpense(
		input.UserID,
		input.Title,
		input.Description,
		input.Amount,
		input.Currency,
		input.CategoryID,
		input.ExpenseDate,
	)

	if err := uc.expenseRepo.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	entry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionCreated, input.UserID)
	entry.NewValue = expenseSummary(exp)
	entry.Details = "Expense created as draft"
	recordAudit(ctx, uc.auditRepo, entry)

	return &CreateExpenseOutput{Expense: toExpenseOutput(exp)}, nil
}

// validateExpenseFields checks the free-text fields shared by create and update.
func validateExpenseFields(title, description string) error {
	if title == "" {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeTitleRequired,
			"title is required",
			domainerror.ErrTitleRequired,
		)
	}
	if len(title) > MaxTitleLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseFields,
			fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			domainerror.ErrTitleRequired,
		)
	}
	if len(description) > MaxDescriptionLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseFields,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			nil,
		)
	}
	return nil
}
