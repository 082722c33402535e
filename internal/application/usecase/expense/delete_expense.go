// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// DeleteExpenseInput represents the input for deleting an expense.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
	ActorID   uuid.UUID
	IsManager bool
}

// DeleteExpenseUseCase removes draft expenses. Owners delete their own
// drafts; managers may delete any draft.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	auditRepo   adapter.AuditLogRepository
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	auditRepo adapter.AuditLogRepository,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	exp, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return expenseNotFound()
	}

	if !input.IsManager && exp.UserID != input.ActorID {
		// Non-owners learn nothing about a foreign expense.
		return expenseNotFound()
	}

	if !canDelete(exp.Status, exp.UserID == input.ActorID, input.IsManager) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeNotDraft,
			"only draft expenses can be deleted",
			domainerror.ErrNotDraft,
		)
	}

	removed, err := uc.expenseRepo.Delete(ctx, input.ExpenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if !removed {
		return expenseNotFound()
	}

	entry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionDeleted, input.ActorID)
	entry.OldValue = expenseSummary(exp)
	entry.Details = "Expense deleted"
	recordAudit(ctx, uc.auditRepo, entry)

	return nil
}
