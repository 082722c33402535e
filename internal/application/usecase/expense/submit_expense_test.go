// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

func TestSubmitExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("submits a draft expense", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		out, err := f.submit.Execute(ctx, SubmitExpenseInput{ExpenseID: draft.ID, ActorID: f.employee})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.Status != entity.ExpenseStatusSubmitted {
			t.Errorf("expected status submitted, got %s", out.Expense.Status)
		}
		if out.Expense.SubmittedAt == nil {
			t.Error("expected SubmittedAt to be set")
		}

		history := f.history(t, draft.ID)
		if len(history) != 2 {
			t.Fatalf("expected 2 audit entries (created, submitted), got %d", len(history))
		}
		if history[0].Action != entity.AuditActionSubmitted {
			t.Errorf("expected newest audit action Submitted, got %s", history[0].Action)
		}
	})

	t.Run("rejects submission by a non-owner", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		_, err := f.submit.Execute(ctx, SubmitExpenseInput{ExpenseID: draft.ID, ActorID: f.manager})
		expErr := expectExpenseError(t, err, domainerror.ErrCodeNotExpenseOwner)
		if expErr.Message != "you can only submit your own expenses" {
			t.Errorf("unexpected message: %s", expErr.Message)
		}
	})

	t.Run("rejects submission of an already submitted expense", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)
		f.submitExpense(t, draft.ID, f.employee)

		_, err := f.submit.Execute(ctx, SubmitExpenseInput{ExpenseID: draft.ID, ActorID: f.employee})
		expectExpenseError(t, err, domainerror.ErrCodeNotInSubmittableState)
	})

	t.Run("resubmission of a rejected expense clears the rejection markers", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)
		f.submitExpense(t, draft.ID, f.employee)

		if _, err := f.reject.Execute(ctx, RejectExpenseInput{
			ExpenseID: draft.ID,
			ActorID:   f.manager,
			IsManager: true,
			Reason:    "missing receipt",
		}); err != nil {
			t.Fatalf("failed to reject expense: %v", err)
		}

		out, err := f.submit.Execute(ctx, SubmitExpenseInput{ExpenseID: draft.ID, ActorID: f.employee})
		if err != nil {
			t.Fatalf("expected no error on resubmission, got %v", err)
		}
		if out.Expense.Status != entity.ExpenseStatusSubmitted {
			t.Errorf("expected status submitted, got %s", out.Expense.Status)
		}
		if out.Expense.RejectedAt != nil || out.Expense.RejectedByID != nil || out.Expense.RejectionReason != "" {
			t.Error("expected rejection markers to be cleared on resubmission")
		}
	})
}

func TestSubmitExpenseUseCase_AutoApproval(t *testing.T) {
	ctx := context.Background()

	setThreshold := func(t *testing.T, f *fixture, threshold int64) {
		t.Helper()
		settings, err := f.settings.Get(ctx)
		if err != nil {
			t.Fatalf("failed to load settings: %v", err)
		}
		settings.AutoApprovalThreshold = decimal.NewFromInt(threshold)
		if err := f.settings.Update(ctx, settings); err != nil {
			t.Fatalf("failed to update settings: %v", err)
		}
	}

	t.Run("auto-approves at or under the threshold", func(t *testing.T) {
		f := newFixture(t)
		setThreshold(t, f, 50)
		draft := f.createDraft(t, f.employee, 50, f.travel.ID)

		out, err := f.submit.Execute(ctx, SubmitExpenseInput{ExpenseID: draft.ID, ActorID: f.employee})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.Status != entity.ExpenseStatusApproved {
			t.Errorf("expected status approved, got %s", out.Expense.Status)
		}
		if out.Expense.ApprovedAt == nil {
			t.Error("expected ApprovedAt to be set")
		}
		if out.Expense.ApprovedByID != nil {
			t.Error("expected no approver for an auto-approval")
		}

		history := f.history(t, draft.ID)
		if len(history) != 3 {
			t.Fatalf("expected 3 audit entries (created, submitted, approved), got %d", len(history))
		}
		if history[0].Action != entity.AuditActionApproved {
			t.Errorf("expected newest audit action Approved, got %s", history[0].Action)
		}
		if history[1].Action != entity.AuditActionSubmitted {
			t.Errorf("expected audit action Submitted before the approval, got %s", history[1].Action)
		}
	})

	t.Run("stays submitted above the threshold", func(t *testing.T) {
		f := newFixture(t)
		setThreshold(t, f, 50)
		draft := f.createDraft(t, f.employee, 50.01, f.travel.ID)

		out, err := f.submit.Execute(ctx, SubmitExpenseInput{ExpenseID: draft.ID, ActorID: f.employee})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.Status != entity.ExpenseStatusSubmitted {
			t.Errorf("expected status submitted, got %s", out.Expense.Status)
		}
	})

	t.Run("threshold of zero disables auto-approval", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 0.01, f.travel.ID)

		out, err := f.submit.Execute(ctx, SubmitExpenseInput{ExpenseID: draft.ID, ActorID: f.employee})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.Status != entity.ExpenseStatusSubmitted {
			t.Errorf("expected status submitted, got %s", out.Expense.Status)
		}
	})
}
