// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create stores a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByName retrieves a category by its name (for uniqueness checks).
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// FindAll retrieves all categories, active and inactive.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindActive retrieves only active categories.
	FindActive(ctx context.Context) ([]*entity.Category, error)

	// Update replaces the stored category with the given one.
	Update(ctx context.Context, category *entity.Category) error
}
