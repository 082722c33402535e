// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// RejectExpenseInput represents the input for rejecting an expense.
type RejectExpenseInput struct {
	ExpenseID uuid.UUID
	ActorID   uuid.UUID
	IsManager bool
	Reason    string
}

// RejectExpenseOutput represents the output of rejecting an expense.
type RejectExpenseOutput struct {
	Expense *ExpenseOutput
}

// RejectExpenseUseCase handles manager rejection of submitted expenses.
type RejectExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	auditRepo   adapter.AuditLogRepository
}

// NewRejectExpenseUseCase creates a new RejectExpenseUseCase instance.
func NewRejectExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	auditRepo adapter.AuditLogRepository,
) *RejectExpenseUseCase {
	return &RejectExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
	}
}

// Execute performs the rejection. The reason is mandatory and travels with
// the expense until it is edited or resubmitted.
func (uc *RejectExpenseUseCase) Execute(ctx context.Context, input RejectExpenseInput) (*RejectExpenseOutput, error) {
	if !input.IsManager {
		return nil, managerRoleRequired()
	}

	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeRejectionReasonRequired,
			"rejection reason is required",
			domainerror.ErrRejectionReasonRequired,
		)
	}

	exp, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, expenseNotFound()
	}

	if !canReject(exp.Status, true) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotSubmitted,
			"only submitted expenses can be rejected",
			domainerror.ErrNotSubmitted,
		)
	}

	now := time.Now().UTC()
	actorID := input.ActorID
	exp.Status = entity.ExpenseStatusRejected
	exp.RejectedAt = &now
	exp.RejectedByID = &actorID
	exp.RejectionReason = reason

	if err := uc.expenseRepo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to reject expense: %w", err)
	}

	entry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionRejected, input.ActorID)
	entry.NewValue = "Status: Rejected"
	entry.Details = fmt.Sprintf("Expense rejected. Reason: %s", reason)
	recordAudit(ctx, uc.auditRepo, entry)

	return &RejectExpenseOutput{Expense: toExpenseOutput(exp)}, nil
}
