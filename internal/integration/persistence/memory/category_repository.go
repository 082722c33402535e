package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// categoryRepository implements adapter.CategoryRepository over a locked map.
type categoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*entity.Category
}

// NewCategoryRepository creates an empty in-memory category repository.
func NewCategoryRepository() adapter.CategoryRepository {
	return &categoryRepository{
		categories: make(map[uuid.UUID]*entity.Category),
	}
}

// Create stores a new category.
func (r *categoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[category.ID] = category.Clone()
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return cat.Clone(), nil
}

// FindByName retrieves a category by name, case-insensitively.
func (r *categoryRepository) FindByName(_ context.Context, name string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cat := range r.categories {
		if strings.EqualFold(cat.Name, name) {
			return cat.Clone(), nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

// FindAll retrieves all categories sorted by name.
func (r *categoryRepository) FindAll(_ context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Category, 0, len(r.categories))
	for _, cat := range r.categories {
		out = append(out, cat.Clone())
	}
	sortCategories(out)
	return out, nil
}

// FindActive retrieves active categories sorted by name.
func (r *categoryRepository) FindActive(_ context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Category
	for _, cat := range r.categories {
		if cat.IsActive {
			out = append(out, cat.Clone())
		}
	}
	sortCategories(out)
	return out, nil
}

// Update replaces the stored category.
func (r *categoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	r.categories[category.ID] = category.Clone()
	return nil
}

func sortCategories(categories []*entity.Category) {
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
}
