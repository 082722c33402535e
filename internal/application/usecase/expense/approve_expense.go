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

// ApproveExpenseInput represents the input for approving an expense.
type ApproveExpenseInput struct {
	ExpenseID uuid.UUID
	ActorID   uuid.UUID
	IsManager bool
	Notes     string
}

// ApproveExpenseOutput represents the output of approving an expense.
type ApproveExpenseOutput struct {
	Expense *ExpenseOutput
}

// ApproveExpenseUseCase handles manager approval of submitted expenses.
type ApproveExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	auditRepo   adapter.AuditLogRepository
}

// NewApproveExpenseUseCase creates a new ApproveExpenseUseCase instance.
func NewApproveExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	auditRepo adapter.AuditLogRepository,
) *ApproveExpenseUseCase {
	return &ApproveExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
	}
}

// Execute performs the approval.
func (uc *ApproveExpenseUseCase) Execute(ctx context.Context, input ApproveExpenseInput) (*ApproveExpenseOutput, error) {
	if !input.IsManager {
		return nil, managerRoleRequired()
	}

	exp, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, expenseNotFound()
	}

	if !canApprove(exp.Status, true) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotSubmitted,
			"only submitted expenses can be approved",
			domainerror.ErrNotSubmitted,
		)
	}

	now := time.Now().UTC()
	actorID := input.ActorID
	exp.Status = entity.ExpenseStatusApproved
	exp.ApprovedAt = &now
	exp.ApprovedByID = &actorID
	exp.ApprovalNotes = input.Notes

	if err := uc.expenseRepo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to approve expense: %w", err)
	}

	entry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionApproved, input.ActorID)
	entry.NewValue = "Status: Approved"
	if input.Notes != "" {
		entry.Details = fmt.Sprintf("Expense approved. Notes: %s", input.Notes)
	} else {
		entry.Details = "Expense approved"
	}
	recordAudit(ctx, uc.auditRepo, entry)

	return &ApproveExpenseOutput{Expense: toExpenseOutput(exp)}, nil
}

func managerRoleRequired() error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeManagerRoleRequired,
		"manager role required",
		domainerror.ErrManagerRoleRequired,
	)
}
