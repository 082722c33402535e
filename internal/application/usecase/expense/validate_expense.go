// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/adapter"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// ValidateExpenseInput represents a candidate expense to validate.
type ValidateExpenseInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Currency    string
	CategoryID  uuid.UUID
	ExpenseDate time.Time
	// ExcludeExpenseID removes the named expense from the monthly-limit sum
	// so that editing an expense does not count its own stored amount
	// against itself.
	ExcludeExpenseID *uuid.UUID
}

// ValidateExpenseUseCase decides whether a candidate expense is admissible
// under the category policy and the owner's spend in the expense's month.
// It has no side effects and is safe to call speculatively.
type ValidateExpenseUseCase struct {
	expenseRepo     adapter.ExpenseRepository
	categoryRepo    adapter.CategoryRepository
	settingsService adapter.SettingsService
}

// NewValidateExpenseUseCase creates a new ValidateExpenseUseCase instance.
func NewValidateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	settingsService adapter.SettingsService,
) *ValidateExpenseUseCase {
	return &ValidateExpenseUseCase{
		expenseRepo:     expenseRepo,
		categoryRepo:    categoryRepo,
		settingsService: settingsService,
	}
}

// Execute runs the validation checks in order and returns the first failure.
// A nil error means the candidate is admissible.
func (uc *ValidateExpenseUseCase) Execute(ctx context.Context, input ValidateExpenseInput) error {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than 0",
			domainerror.ErrInvalidAmount,
		)
	}

	settings, err := uc.settingsService.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !containsCurrency(settings.AllowedCurrencies, input.Currency) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeCurrencyNotAllowed,
			fmt.Sprintf("currency must be one of: %s", strings.Join(settings.AllowedCurrencies, ", ")),
			domainerror.ErrCurrencyNotAllowed,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || category == nil || !category.IsActive {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidCategory,
			"invalid or inactive category",
			domainerror.ErrInvalidCategory,
		)
	}

	if input.Amount.GreaterThan(category.MaxAmountPerExpense) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMaxAmountExceeded,
			fmt.Sprintf("amount exceeds maximum of %s for %s", category.MaxAmountPerExpense.StringFixed(2), category.Name),
			domainerror.ErrMaxAmountExceeded,
		)
	}

	monthStart, monthEnd := monthBounds(input.ExpenseDate)
	userID := input.UserID
	monthExpenses, err := uc.expenseRepo.FindByDateRange(ctx, monthStart, monthEnd, &userID)
	if err != nil {
		return fmt.Errorf("failed to load expenses for monthly limit check: %w", err)
	}

	categoryTotal := decimal.Zero
	for _, e := range monthExpenses {
		if e.CategoryID != input.CategoryID {
			continue
		}
		if input.ExcludeExpenseID != nil && e.ID == *input.ExcludeExpenseID {
			continue
		}
		categoryTotal = categoryTotal.Add(e.Amount)
	}

	if categoryTotal.Add(input.Amount).GreaterThan(category.MonthlyLimit) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMonthlyLimitExceeded,
			fmt.Sprintf(
				"this expense would exceed your monthly limit of %s for %s. Current total: %s",
				category.MonthlyLimit.StringFixed(2), category.Name, categoryTotal.StringFixed(2),
			),
			domainerror.ErrMonthlyLimitExceeded,
		)
	}

	return nil
}

// monthBounds returns the inclusive [first day, last day] range of the
// calendar month containing date, in the date's location.
func monthBounds(date time.Time) (start, end time.Time) {
	loc := date.Location()
	start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

func containsCurrency(allowed []string, currency string) bool {
	for _, c := range allowed {
		if c == currency {
			return true
		}
	}
	return false
}
