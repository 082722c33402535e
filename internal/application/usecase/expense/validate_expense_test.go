// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

func TestValidateExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	valid := func() ValidateExpenseInput {
		return ValidateExpenseInput{
			UserID:      f.employee,
			Amount:      decimal.NewFromInt(100),
			Currency:    "USD",
			CategoryID:  f.travel.ID,
			ExpenseDate: time.Now().UTC(),
		}
	}

	t.Run("accepts a valid candidate", func(t *testing.T) {
		if err := f.validate.Execute(ctx, valid()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		input := valid()
		input.Amount = decimal.Zero
		expectExpenseError(t, f.validate.Execute(ctx, input), domainerror.ErrCodeInvalidAmount)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		input := valid()
		input.Amount = decimal.NewFromInt(-50)
		expectExpenseError(t, f.validate.Execute(ctx, input), domainerror.ErrCodeInvalidAmount)
	})

	t.Run("rejects currency outside the allowed set", func(t *testing.T) {
		input := valid()
		input.Currency = "JPY"
		expectExpenseError(t, f.validate.Execute(ctx, input), domainerror.ErrCodeCurrencyNotAllowed)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		input := valid()
		input.CategoryID = uuid.New()
		expectExpenseError(t, f.validate.Execute(ctx, input), domainerror.ErrCodeInvalidCategory)
	})

	t.Run("rejects inactive category", func(t *testing.T) {
		inactive := f.travel.Clone()
		inactive.IsActive = false
		if err := f.categories.Update(ctx, inactive); err != nil {
			t.Fatalf("failed to deactivate category: %v", err)
		}
		defer func() {
			if err := f.categories.Update(ctx, f.travel); err != nil {
				t.Fatalf("failed to reactivate category: %v", err)
			}
		}()

		expectExpenseError(t, f.validate.Execute(ctx, valid()), domainerror.ErrCodeInvalidCategory)
	})

	t.Run("rejects amount over the category maximum", func(t *testing.T) {
		input := valid()
		input.Amount = decimal.NewFromFloat(5000.01)
		expectExpenseError(t, f.validate.Execute(ctx, input), domainerror.ErrCodeMaxAmountExceeded)
	})

	t.Run("accepts amount at exactly the category maximum", func(t *testing.T) {
		input := valid()
		input.Amount = decimal.NewFromInt(5000)
		if err := f.validate.Execute(ctx, input); err != nil {
			t.Errorf("expected no error at the boundary, got %v", err)
		}
	})
}

func TestValidateExpenseUseCase_MonthlyLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects when the monthly limit would be exceeded", func(t *testing.T) {
		f := newFixture(t)
		// Meals monthly limit is 2000; two drafts of 900 leave room for 200.
		f.createDraft(t, f.employee, 900, f.meals.ID)
		f.createDraft(t, f.employee, 900, f.meals.ID)

		err := f.validate.Execute(ctx, ValidateExpenseInput{
			UserID:      f.employee,
			Amount:      decimal.NewFromFloat(200.01),
			Currency:    "USD",
			CategoryID:  f.meals.ID,
			ExpenseDate: time.Now().UTC(),
		})
		expectExpenseError(t, err, domainerror.ErrCodeMonthlyLimitExceeded)
	})

	t.Run("accepts at exactly the monthly limit", func(t *testing.T) {
		f := newFixture(t)
		f.createDraft(t, f.employee, 900, f.meals.ID)
		f.createDraft(t, f.employee, 900, f.meals.ID)

		err := f.validate.Execute(ctx, ValidateExpenseInput{
			UserID:      f.employee,
			Amount:      decimal.NewFromInt(200),
			Currency:    "USD",
			CategoryID:  f.meals.ID,
			ExpenseDate: time.Now().UTC(),
		})
		if err != nil {
			t.Errorf("expected no error at the limit boundary, got %v", err)
		}
	})

	t.Run("only counts the same category and owner", func(t *testing.T) {
		f := newFixture(t)
		// Spend in another category and by another user must not count.
		f.createDraft(t, f.employee, 4000, f.travel.ID)
		f.createDraft(t, f.manager, 1900, f.meals.ID)

		err := f.validate.Execute(ctx, ValidateExpenseInput{
			UserID:      f.employee,
			Amount:      decimal.NewFromInt(500),
			Currency:    "USD",
			CategoryID:  f.meals.ID,
			ExpenseDate: time.Now().UTC(),
		})
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("excludes the edited expense from the monthly total", func(t *testing.T) {
		f := newFixture(t)
		// A single 1900 draft in a 2000-limit category. Re-validating the
		// same expense at 1950 must not count its stored 1900 against itself.
		draft := f.createDraft(t, f.employee, 1900, f.meals.ID)

		excludeID := draft.ID
		err := f.validate.Execute(ctx, ValidateExpenseInput{
			UserID:           f.employee,
			Amount:           decimal.NewFromInt(1950),
			Currency:         "USD",
			CategoryID:       f.meals.ID,
			ExpenseDate:      time.Now().UTC(),
			ExcludeExpenseID: &excludeID,
		})
		if err != nil {
			t.Errorf("expected no error when excluding the edited expense, got %v", err)
		}

		// Without the exclusion the same amount must fail.
		err = f.validate.Execute(ctx, ValidateExpenseInput{
			UserID:      f.employee,
			Amount:      decimal.NewFromInt(1950),
			Currency:    "USD",
			CategoryID:  f.meals.ID,
			ExpenseDate: time.Now().UTC(),
		})
		expectExpenseError(t, err, domainerror.ErrCodeMonthlyLimitExceeded)
	})

	t.Run("only counts spend in the expense's calendar month", func(t *testing.T) {
		f := newFixture(t)
		f.createDraft(t, f.employee, 1900, f.meals.ID)

		// Same category and owner, but dated two months out.
		err := f.validate.Execute(ctx, ValidateExpenseInput{
			UserID:      f.employee,
			Amount:      decimal.NewFromInt(1900),
			Currency:    "USD",
			CategoryID:  f.meals.ID,
			ExpenseDate: time.Now().UTC().AddDate(0, 2, 0),
		})
		if err != nil {
			t.Errorf("expected no error for a different month, got %v", err)
		}
	})
}
