// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"testing"

	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/persistence/memory"
)

func newGetFixture(t *testing.T) (*fixture, *GetExpenseUseCase) {
	t.Helper()
	f := newFixture(t)
	users := memory.NewUserRepository(
		&entity.User{ID: f.employee, Username: "employee", DisplayName: "Employee", Role: entity.UserRoleEmployee, IsActive: true},
		&entity.User{ID: f.manager, Username: "manager", DisplayName: "Manager", Role: entity.UserRoleManager, IsActive: true},
	)
	return f, NewGetExpenseUseCase(f.expenses, f.categories, users, f.auditLogs)
}

func TestGetExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the detail projection with history", func(t *testing.T) {
		f, get := newGetFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)
		f.submitExpense(t, draft.ID, f.employee)

		out, err := get.Execute(ctx, GetExpenseInput{ExpenseID: draft.ID, ActorID: f.employee})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.ID != draft.ID {
			t.Errorf("expected expense %s, got %s", draft.ID, out.Expense.ID)
		}
		if out.CategoryName != "Travel" {
			t.Errorf("expected category name Travel, got %q", out.CategoryName)
		}
		if len(out.History) != 2 {
			t.Errorf("expected 2 history entries, got %d", len(out.History))
		}
		if out.ListItem.UserDisplayName != "Employee" {
			t.Errorf("expected owner display name, got %q", out.ListItem.UserDisplayName)
		}
	})

	t.Run("masks foreign expenses for non-managers", func(t *testing.T) {
		f, get := newGetFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		otherEmployee := f.manager
		_, err := get.Execute(ctx, GetExpenseInput{ExpenseID: draft.ID, ActorID: otherEmployee, IsManager: false})
		expectExpenseError(t, err, domainerror.ErrCodeExpenseNotFound)
	})

	t.Run("managers see foreign expenses", func(t *testing.T) {
		f, get := newGetFixture(t)
		draft := f.createDraft(t, f.employee, 100, f.travel.ID)

		out, err := get.Execute(ctx, GetExpenseInput{ExpenseID: draft.ID, ActorID: f.manager, IsManager: true})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Expense.ID != draft.ID {
			t.Errorf("expected expense %s, got %s", draft.ID, out.Expense.ID)
		}
	})
}
