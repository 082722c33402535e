// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

func TestCreateExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a draft with an audit entry", func(t *testing.T) {
		f := newFixture(t)
		out, err := f.create.Execute(ctx, CreateExpenseInput{
			UserID:      f.employee,
			Title:       "Taxi to airport",
			Amount:      decimal.NewFromFloat(42.50),
			Currency:    "USD",
			CategoryID:  f.travel.ID,
			ExpenseDate: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.Status != entity.ExpenseStatusDraft {
			t.Errorf("expected status draft, got %s", out.Expense.Status)
		}
		if out.Expense.SubmittedAt != nil {
			t.Error("expected no submission timestamp on a new draft")
		}

		history := f.history(t, out.Expense.ID)
		if len(history) != 1 {
			t.Fatalf("expected 1 audit entry, got %d", len(history))
		}
		if history[0].Action != entity.AuditActionCreated {
			t.Errorf("expected audit action Created, got %s", history[0].Action)
		}
	})

	t.Run("requires a title", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.create.Execute(ctx, CreateExpenseInput{
			UserID:      f.employee,
			Title:       "",
			Amount:      decimal.NewFromInt(10),
			Currency:    "USD",
			CategoryID:  f.travel.ID,
			ExpenseDate: time.Now().UTC(),
		})
		expectExpenseError(t, err, domainerror.ErrCodeTitleRequired)
	})

	t.Run("caps the title length", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.create.Execute(ctx, CreateExpenseInput{
			UserID:      f.employee,
			Title:       strings.Repeat("x", MaxTitleLength+1),
			Amount:      decimal.NewFromInt(10),
			Currency:    "USD",
			CategoryID:  f.travel.ID,
			ExpenseDate: time.Now().UTC(),
		})
		expectExpenseError(t, err, domainerror.ErrCodeMissingExpenseFields)
	})

	t.Run("rejects an invalid candidate without storing it", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.create.Execute(ctx, CreateExpenseInput{
			UserID:      f.employee,
			Title:       "Over limit",
			Amount:      decimal.NewFromInt(9999),
			Currency:    "USD",
			CategoryID:  f.travel.ID,
			ExpenseDate: time.Now().UTC(),
		})
		expectExpenseError(t, err, domainerror.ErrCodeMaxAmountExceeded)

		byUser, findErr := f.expenses.FindByUser(ctx, f.employee)
		if findErr != nil {
			t.Fatalf("failed to list expenses: %v", findErr)
		}
		if len(byUser) != 0 {
			t.Errorf("expected no stored expenses after a failed create, got %d", len(byUser))
		}
	})
}

func TestUpdateExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	editInput := func(f *fixture) UpdateExpenseInput {
		return UpdateExpenseInput{
			ActorID:     f.employee,
			Title:       "Edited title",
			Description: "Edited description",
			Amount:      decimal.NewFromInt(75),
			Currency:    "USD",
			CategoryID:  f.travel.ID,
			ExpenseDate: time.Now().UTC(),
		}
	}

	t.Run("edits a draft expense", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		input := editInput(f)
		input.ExpenseID = draft.ID
		out, err := f.update.Execute(ctx, input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.Title != "Edited title" {
			t.Errorf("expected title to change, got %q", out.Expense.Title)
		}
		if !out.Expense.Amount.Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected amount 75, got %s", out.Expense.Amount)
		}

		history := f.history(t, draft.ID)
		if len(history) != 2 {
			t.Fatalf("expected 2 audit entries, got %d", len(history))
		}
		if history[0].Action != entity.AuditActionUpdated {
			t.Errorf("expected newest audit action Updated, got %s", history[0].Action)
		}
		if history[0].OldValue == "" || history[0].NewValue == "" {
			t.Error("expected the update entry to carry before and after summaries")
		}
	})

	t.Run("masks foreign expenses as not found", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		input := editInput(f)
		input.ExpenseID = draft.ID
		input.ActorID = f.manager
		_, err := f.update.Execute(ctx, input)
		expectExpenseError(t, err, domainerror.ErrCodeExpenseNotFound)
	})

	t.Run("denies editing a submitted expense", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)
		f.submitExpense(t, draft.ID, f.employee)

		input := editInput(f)
		input.ExpenseID = draft.ID
		_, err := f.update.Execute(ctx, input)
		expectExpenseError(t, err, domainerror.ErrCodeNotInEditableState)
	})

	t.Run("editing a rejected expense returns it to draft", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)
		f.submitExpense(t, draft.ID, f.employee)
		if _, err := f.reject.Execute(ctx, RejectExpenseInput{
			ExpenseID: draft.ID, ActorID: f.manager, IsManager: true, Reason: "wrong amount",
		}); err != nil {
			t.Fatalf("failed to reject expense: %v", err)
		}

		input := editInput(f)
		input.ExpenseID = draft.ID
		out, err := f.update.Execute(ctx, input)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.Status != entity.ExpenseStatusDraft {
			t.Errorf("expected status draft after editing a rejected expense, got %s", out.Expense.Status)
		}
		if out.Expense.RejectedAt != nil || out.Expense.RejectionReason != "" {
			t.Error("expected rejection markers to be cleared by the edit")
		}
	})

	t.Run("does not count the stored amount against the edit", func(t *testing.T) {
		f := newFixture(t)
		// Meals monthly limit is 2000. Editing a 1900 draft down to 500
		// only passes when the stored 1900 is excluded from the total.
		draft := f.createDraft(t, f.employee, 1900, f.meals.ID)

		input := editInput(f)
		input.ExpenseID = draft.ID
		input.Amount = decimal.NewFromInt(500)
		input.CategoryID = f.meals.ID
		out, err := f.update.Execute(ctx, input)
		if err != nil {
			t.Fatalf("expected the edit to pass the monthly limit check, got %v", err)
		}
		if !out.Expense.Amount.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected amount 500, got %s", out.Expense.Amount)
		}
	})
}

func TestDeleteExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes a draft", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		if err := f.delete.Execute(ctx, DeleteExpenseInput{
			ExpenseID: draft.ID, ActorID: f.employee,
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := f.expenses.FindByID(ctx, draft.ID); err == nil {
			t.Error("expected the expense to be gone")
		}
	})

	t.Run("manager deletes a foreign draft", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		if err := f.delete.Execute(ctx, DeleteExpenseInput{
			ExpenseID: draft.ID, ActorID: f.manager, IsManager: true,
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("non-owner non-manager gets not found", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		err := f.delete.Execute(ctx, DeleteExpenseInput{
			ExpenseID: draft.ID, ActorID: f.manager,
		})
		expectExpenseError(t, err, domainerror.ErrCodeExpenseNotFound)
	})

	t.Run("denies deleting a submitted expense", func(t *testing.T) {
		f := newFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)
		f.submitExpense(t, draft.ID, f.employee)

		err := f.delete.Execute(ctx, DeleteExpenseInput{
			ExpenseID: draft.ID, ActorID: f.employee,
		})
		expectExpenseError(t, err, domainerror.ErrCodeNotDraft)
	})
}
