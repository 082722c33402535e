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

// SubmitExpenseInput represents the input for submitting an expense.
type SubmitExpenseInput struct {
	ExpenseID uuid.UUID
	ActorID   uuid.UUID
}

// SubmitExpenseOutput represents the output of submitting an expense.
type SubmitExpenseOutput struct {
	Expense *ExpenseOutput
}

// SubmitExpenseUseCase moves a draft or rejected expense into the approval
// queue. When the auto-approval threshold is enabled and the amount is at or
// under it, the submission is approved in the same call.
type SubmitExpenseUseCase struct {
	expenseRepo     adapter.ExpenseRepository
	auditRepo       adapter.AuditLogRepository
	settingsService adapter.SettingsService
}

// NewSubmitExpenseUseCase creates a new SubmitExpenseUseCase instance.
func NewSubmitExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	auditRepo adapter.AuditLogRepository,
	settingsService adapter.SettingsService,
) *SubmitExpenseUseCase {
	return &SubmitExpenseUseCase{
		expenseRepo:     expenseRepo,
		auditRepo:       auditRepo,
		settingsService: settingsService,
	}
}

// Execute performs the submission. Resubmitting a rejected expense clears the
// rejection markers and refreshes the submission timestamp.
func (uc *SubmitExpenseUseCase) Execute(ctx context.Context, input SubmitExpenseInput) (*SubmitExpenseOutput, error) {
	exp, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		return nil, expenseNotFound()
	}

	if exp.UserID != input.ActorID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotExpenseOwner,
			"you can only submit your own expenses",
			domainerror.ErrNotExpenseOwner,
		)
	}

	if !canSubmit(exp.Status, true) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotInSubmittableState,
			"only draft or rejected expenses can be submitted",
			domainerror.ErrNotInSubmittableState,
		)
	}

	now := time.Now().UTC()
	exp.Status = entity.ExpenseStatusSubmitted
	exp.SubmittedAt = &now
	exp.ClearRejection()

	if err := uc.expenseRepo.Update(ctx, exp); err != nil {
		return nil, fmt.Errorf("failed to submit expense: %w", err)
	}

	entry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionSubmitted, input.ActorID)
	entry.NewValue = "Status: Submitted"
	entry.Details = "Expense submitted for approval"
	recordAudit(ctx, uc.auditRepo, entry)

	if uc.autoApprove(ctx, exp) {
		autoApprovedAt := time.Now().UTC()
		exp.Status = entity.ExpenseStatusApproved
		exp.ApprovedAt = &autoApprovedAt
		exp.ApprovalNotes = "Auto-approved (at or under threshold)"

		if err := uc.expenseRepo.Update(ctx, exp); err != nil {
			return nil, fmt.Errorf("failed to auto-approve expense: %w", err)
		}

		autoEntry := entity.NewAuditLog(auditEntityType, exp.ID, entity.AuditActionApproved, input.ActorID)
		autoEntry.NewValue = "Status: Approved"
		autoEntry.Details = "Expense auto-approved under threshold"
		recordAudit(ctx, uc.auditRepo, autoEntry)
	}

	return &SubmitExpenseOutput{Expense: toExpenseOutput(exp)}, nil
}

// autoApprove reports whether the settings call for immediate approval.
func (uc *SubmitExpenseUseCase) autoApprove(ctx context.Context, exp *entity.Expense) bool {
	settings, err := uc.settingsService.Get(ctx)
	if err != nil {
		// Best effort: the submission already committed.
		return false
	}
	if settings.AutoApprovalThreshold.LessThanOrEqual(decimal.Zero) {
		return false
	}
	return exp.Amount.LessThanOrEqual(settings.AutoApprovalThreshold)
}
