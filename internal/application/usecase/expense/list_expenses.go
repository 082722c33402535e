// Package expense contains expense lifecycle use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// ListExpensesInput represents the input for the role-filtered listing.
type ListExpensesInput struct {
	Filter     adapter.ExpenseFilter
	Pagination adapter.ExpensePagination
	ActorID    uuid.UUID
	IsManager  bool
}

// ListExpensesOutput represents one page of the role-filtered listing.
type ListExpensesOutput struct {
	Items      []*ExpenseListItem
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
}

// ListExpensesUseCase produces the paged expense listing with per-item
// action flags computed from the shared guard predicates.
type ListExpensesUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// Execute lists expenses. Non-managers are always scoped to their own
// expenses regardless of the requested filter.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	filter := input.Filter
	if !input.IsManager {
		actorID := input.ActorID
		filter.UserID = &actorID
	}

	page, err := uc.expenseRepo.FindByFilter(ctx, filter, input.Pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	categories, err := uc.categoryMap(ctx)
	if err != nil {
		return nil, err
	}
	users, err := uc.userMap(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*ExpenseListItem, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, toExpenseListItem(e, categories[e.CategoryID], users[e.UserID], input.ActorID, input.IsManager))
	}

	return &ListExpensesOutput{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(),
	}, nil
}

func (uc *ListExpensesUseCase) categoryMap(ctx context.Context) (map[uuid.UUID]*entity.Category, error) {
	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	m := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m, nil
}

func (uc *ListExpensesUseCase) userMap(ctx context.Context) (map[uuid.UUID]*entity.User, error) {
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	m := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m, nil
}
