// Package category contains category administration use cases.
package category

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 100

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name                string
	Description         string
	Icon                string
	MaxAmountPerExpense decimal.Decimal
	MonthlyLimit        decimal.Decimal
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := validateLimits(input.Name, input.MaxAmountPerExpense, input.MonthlyLimit); err != nil {
		return nil, err
	}

	if existing, err := uc.categoryRepo.FindByName(ctx, input.Name); err == nil && existing != nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"category name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	cat := entity.NewCategory(input.Name, input.Description, icon, input.MaxAmountPerExpense, input.MonthlyLimit)
	if err := uc.categoryRepo.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: cat}, nil
}

// validateLimits checks the policy fields shared by create and update.
func validateLimits(name string, maxPerExpense, monthlyLimit decimal.Decimal) error {
	if name == "" || len(name) > MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			fmt.Sprintf("category name is required and must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameRequired,
		)
	}
	if maxPerExpense.LessThanOrEqual(decimal.Zero) || monthlyLimit.LessThanOrEqual(decimal.Zero) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryLimit,
			"category limits must be greater than 0",
			domainerror.ErrInvalidCategoryLimit,
		)
	}
	if monthlyLimit.LessThan(maxPerExpense) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMonthlyLimitBelowMax,
			"monthly limit cannot be lower than the per-expense maximum",
			domainerror.ErrMonthlyLimitBelowMax,
		)
	}
	return nil
}
