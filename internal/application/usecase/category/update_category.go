// Package category contains category administration use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update. Setting
// IsActive to false retires the category: existing expenses keep referencing
// it for display, but validation rejects new spend against it.
type UpdateCategoryInput struct {
	CategoryID          uuid.UUID
	Name                string
	Description         string
	Icon                string
	MaxAmountPerExpense decimal.Decimal
	MonthlyLimit        decimal.Decimal
	IsActive            bool
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update and retirement.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	cat, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil || cat == nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if err := validateLimits(input.Name, input.MaxAmountPerExpense, input.MonthlyLimit); err != nil {
		return nil, err
	}

	if input.Name != cat.Name {
		if existing, err := uc.categoryRepo.FindByName(ctx, input.Name); err == nil && existing != nil {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameExists,
				"category name already exists",
				domainerror.ErrCategoryNameExists,
			)
		}
	}

	cat.Name = input.Name
	cat.Description = input.Description
	if input.Icon != "" {
		cat.Icon = input.Icon
	}
	cat.MaxAmountPerExpense = input.MaxAmountPerExpense
	cat.MonthlyLimit = input.MonthlyLimit
	cat.IsActive = input.IsActive

	if err := uc.categoryRepo.Update(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: cat}, nil
}
