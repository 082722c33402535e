// Package category contains category administration use cases.
package category

import (
	"context"
	"fmt"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	// ActiveOnly limits the result to active categories (the expense form
	// view); the admin view lists everything.
	ActiveOnly bool
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles category listing.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute retrieves the categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var (
		categories []*entity.Category
		err        error
	)
	if input.ActiveOnly {
		categories, err = uc.categoryRepo.FindActive(ctx)
	} else {
		categories, err = uc.categoryRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return &ListCategoriesOutput{Categories: categories}, nil
}
