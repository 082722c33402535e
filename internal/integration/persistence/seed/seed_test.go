// Package seed provides the demo dataset used to bootstrap empty stores.
package seed

import (
	"context"
	"testing"

	"github.com/expense-claims/backend/internal/domain/entity"
	"github.com/expense-claims/backend/internal/integration/persistence/memory"
)

func TestSeedDataset(t *testing.T) {
	ctx := context.Background()

	users := Users()
	expenseRepo := memory.NewExpenseRepository()
	categoryRepo := memory.NewCategoryRepository()

	if err := Categories(ctx, categoryRepo); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}
	if err := Expenses(ctx, expenseRepo, categoryRepo, users); err != nil {
		t.Fatalf("failed to seed expenses: %v", err)
	}

	t.Run("seeds the demo user directory", func(t *testing.T) {
		if len(users) != 5 {
			t.Fatalf("expected 5 users, got %d", len(users))
		}
		managers := 0
		for _, u := range users {
			if u.IsManager() {
				managers++
			}
			if !u.IsActive {
				t.Errorf("expected user %s to be active", u.Username)
			}
		}
		if managers != 2 {
			t.Errorf("expected 2 managers, got %d", managers)
		}
	})

	t.Run("seeds the default category set", func(t *testing.T) {
		categories, err := categoryRepo.FindAll(ctx)
		if err != nil {
			t.Fatalf("failed to list categories: %v", err)
		}
		if len(categories) != 7 {
			t.Fatalf("expected 7 categories, got %d", len(categories))
		}
		for _, c := range categories {
			if !c.IsActive {
				t.Errorf("expected category %s to be active", c.Name)
			}
			if !c.MaxAmountPerExpense.IsPositive() || !c.MonthlyLimit.IsPositive() {
				t.Errorf("expected positive limits on %s", c.Name)
			}
			if c.MaxAmountPerExpense.GreaterThan(c.MonthlyLimit) {
				t.Errorf("expected per-expense maximum within the monthly limit on %s", c.Name)
			}
		}
	})

	t.Run("seeds historical expenses in mixed statuses", func(t *testing.T) {
		statuses := make(map[entity.ExpenseStatus]int)
		total := 0
		for _, u := range users {
			byUser, err := expenseRepo.FindByUser(ctx, u.ID)
			if err != nil {
				t.Fatalf("failed to list expenses for %s: %v", u.Username, err)
			}
			total += len(byUser)
			for _, e := range byUser {
				statuses[e.Status]++
				if _, err := categoryRepo.FindByID(ctx, e.CategoryID); err != nil {
					t.Errorf("expense %q references an unknown category", e.Title)
				}
				switch e.Status {
				case entity.ExpenseStatusSubmitted, entity.ExpenseStatusApproved, entity.ExpenseStatusRejected, entity.ExpenseStatusPaid:
					if e.SubmittedAt == nil {
						t.Errorf("expected a submission timestamp on %q", e.Title)
					}
				}
				if e.Status == entity.ExpenseStatusRejected && e.RejectionReason == "" {
					t.Errorf("expected a rejection reason on %q", e.Title)
				}
			}
		}
		if total != 15 {
			t.Errorf("expected 15 seeded expenses, got %d", total)
		}
		for _, status := range entity.AllExpenseStatuses {
			if statuses[status] == 0 {
				t.Errorf("expected at least one seeded expense with status %s", status)
			}
		}
	})
}
