// Package memory implements the repository interfaces on an in-memory
// collection guarded by a mutex.
package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/domain/entity"
)

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	travel := entity.NewCategory("Travel", "", "airplane", decimal.NewFromInt(5000), decimal.NewFromInt(15000))
	other := entity.NewCategory("Other", "", "tag", decimal.NewFromInt(500), decimal.NewFromInt(1000))
	for _, c := range []*entity.Category{travel, other} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	t.Run("FindByName is case-insensitive", func(t *testing.T) {
		got, err := repo.FindByName(ctx, "tRaVeL")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.ID != travel.ID {
			t.Errorf("expected the Travel category, got %s", got.Name)
		}
	})

	t.Run("FindAll sorts by name", func(t *testing.T) {
		got, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 2 || got[0].Name != "Other" || got[1].Name != "Travel" {
			t.Errorf("expected name-sorted categories, got %+v", got)
		}
	})

	t.Run("FindActive excludes deactivated categories", func(t *testing.T) {
		deactivated := other.Clone()
		deactivated.IsActive = false
		if err := repo.Update(ctx, deactivated); err != nil {
			t.Fatalf("failed to update category: %v", err)
		}

		got, err := repo.FindActive(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 || got[0].Name != "Travel" {
			t.Errorf("expected only the active category, got %d items", len(got))
		}

		// Deactivated categories stay resolvable by id.
		if _, err := repo.FindByID(ctx, other.ID); err != nil {
			t.Errorf("expected the inactive category to stay resolvable, got %v", err)
		}
	})

	t.Run("Update of an unknown category fails", func(t *testing.T) {
		ghost := entity.NewCategory("Ghost", "", "tag", decimal.NewFromInt(1), decimal.NewFromInt(1))
		if err := repo.Update(ctx, ghost); err == nil {
			t.Error("expected an error updating an unknown category")
		}
	})
}
