// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// MarkPaidInput represents the input for marking an expense as paid.
type MarkPaidInput struct {
	ExpenseID uuid.UUID
	ActorID   uuid.UUID
	IsManager bool
}

// MarkPaidOutput represents the output of marking an expense as paid.
type MarkPaidOutput struct {
	Expense *ExpenseOutput
}

// MarkPaidUseCase moves an approved expense into the terminal paid state.
type MarkPaidUseCase struct {
	expenseRepo adapter.ExpenseRepository
	auditRepo   adapter.AuditLogRepository
}

// NewMarkPaidUseCase creates a new MarkPaidUseCase instance.
func NewMarkPaidUseCase(
	expenseRepo adapter.ExpenseRepository,
	auditRepo adapter.AuditLogRepository,
) *MarkPaidUseCase {
	return &MarkPaidUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
	}
}

// Execute performs the payment transition.
func (uc *MarkPaidUseCase) Execute(ctx context.Context, input MarkPaidInput) (*MarkPaidOutput, error) {
	if !input.IsManager {
		return nil, managerRoleRequired()
	}

	exp, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, expenseNotFound()
	}

	if !canPay(exp.Status, true) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotApproved,
			"only approved expenses can be marked as paid",
			domainerror.ErrNotApproved,
		)
	}

	now := time.Now().UTC()
	actorID := input.ActorID
	exp.Status = entity.ExpenseStatusPaid
	exp.PaidAt = &now
	exp.PaidByID = &actorID

	if err := uc.expenseRepo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to mark expense as paid: %w", err)
	}

	entry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionPaid, input.ActorID)
	entry.NewValue = "Status: Paid"
	entry.Details = "Expense marked as paid"
	recordAudit(ctx, uc.auditRepo, entry)

	return &MarkPaidOutput{Expense: toExpenseOutput(exp)}, nil
}
