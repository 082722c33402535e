// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// GetExpenseInput represents the input for the expense detail view.
type GetExpenseInput struct {
	ExpenseID uuid.UUID
	ActorID   uuid.UUID
	IsManager bool
}

// GetExpenseOutput represents the detail projection of one expense.
type GetExpenseOutput struct {
	Expense      *ExpenseOutput
	ListItem     *ExpenseListItem
	History      []*entity.AuditLog
	CategoryName string
}

// GetExpenseUseCase resolves the detail projection for one expense,
// including its audit history.
type GetExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
	auditRepo    adapter.AuditLogRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	auditRepo adapter.AuditLogRepository,
) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
	}
}

// Execute returns the detail view. Non-managers asking for another user's
// expense receive the not-found error, never a confirmation of existence.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	exp, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, expenseNotFound()
	}

	if !input.IsManager && exp.UserID != input.ActorID {
		return nil, expenseNotFound()
	}

	category, catErr := uc.categoryRepo.FindByID(ctx, exp.CategoryID)
	if catErr != nil {
		category = nil
	}
	user, userErr := uc.userRepo.FindByID(ctx, exp.UserID)
	if userErr != nil {
		user = nil
	}

	history, err := uc.auditRepo.FindByEntity(ctx, auditEntityType, exp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense history: %w", err)
	}

	out := &GetExpenseOutput{
		Expense:  toExpenseOutput(exp),
		ListItem: toExpenseListItem(exp, category, user, input.ActorID, input.IsManager),
		History:  history,
	}
	if category != nil {
		out.CategoryName = category.Name
	}
	return out, nil
}
