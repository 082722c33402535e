// Package memory implements the repository interfaces on an in-memory
// collection guarded by a mutex. It is the default adapter; the gorm-backed
// adapter in the parent package is the swappable alternative.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// expenseRepository implements adapter.ExpenseRepository over a locked map.
// The lock is held only for the duration of the copy-in/copy-out; filtering
// and aggregation always run on the snapshot returned to the caller.
type expenseRepository struct {
	mu       sync.RWMutex
	expenses map[uuid.UUID]*entity.Expense
}

// NewExpenseRepository creates an empty in-memory expense repository.
func NewExpenseRepository() adapter.ExpenseRepository {
	return &expenseRepository{
		expenses: make(map[uuid.UUID]*entity.Expense),
	}
}

// Create stores a new expense.
func (r *expenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[expense.ID] = expense.Clone()
	return nil
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.expenses[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	return exp.Clone(), nil
}

// FindByUser retrieves all expenses owned by the given user.
func (r *expenseRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Expense
	for _, exp := range r.expenses {
		if exp.UserID == userID {
			out = append(out, exp.Clone())
		}
	}
	sortByDateDesc(out)
	return out, nil
}

// FindByDateRange retrieves expenses dated inside [start, end], optionally
// scoped to one owner.
func (r *expenseRepository) FindByDateRange(_ context.Context, start, end time.Time, userID *uuid.UUID) ([]*entity.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Expense
	for _, exp := range r.expenses {
		if exp.ExpenseDate.Before(start) || exp.ExpenseDate.After(end) {
			continue
		}
		if userID != nil && exp.UserID != *userID {
			continue
		}
		out = append(out, exp.Clone())
	}
	sortByDateDesc(out)
	return out, nil
}

// FindByFilter retrieves expenses matching the filter, sorted and paged.
func (r *expenseRepository) FindByFilter(_ context.Context, filter adapter.ExpenseFilter, pagination adapter.ExpensePagination) (*adapter.ExpensePage, error) {
	r.mu.RLock()
	snapshot := make([]*entity.Expense, 0, len(r.expenses))
	for _, exp := range r.expenses {
		snapshot = append(snapshot, exp.Clone())
	}
	r.mu.RUnlock()

	matched := snapshot[:0]
	for _, exp := range snapshot {
		if matchesFilter(exp, filter) {
			matched = append(matched, exp)
		}
	}

	sortExpenses(matched, filter.SortBy, filter.SortDescending)

	page := pagination.Page
	if page < 1 {
		page = 1
	}
	pageSize := pagination.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	total := len(matched)
	offset := (page - 1) * pageSize
	if offset > total {
		offset = total
	}
	limit := offset + pageSize
	if limit > total {
		limit = total
	}

	return &adapter.ExpensePage{
		Items:      matched[offset:limit],
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Update replaces the stored expense.
func (r *expenseRepository) Update(_ context.Context, expense *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[expense.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	r.expenses[expense.ID] = expense.Clone()
	return nil
}

// Delete removes an expense and reports whether a record was removed.
func (r *expenseRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[id]; !ok {
		return false, nil
	}
	delete(r.expenses, id)
	return true, nil
}

func matchesFilter(exp *entity.Expense, filter adapter.ExpenseFilter) bool {
	if filter.SearchTerm != "" {
		term := strings.ToLower(filter.SearchTerm)
		if !strings.Contains(strings.ToLower(exp.Title), term) &&
			!strings.Contains(strings.ToLower(exp.Description), term) {
			return false
		}
	}
	if filter.Status != nil && exp.Status != *filter.Status {
		return false
	}
	if filter.CategoryID != nil && exp.CategoryID != *filter.CategoryID {
		return false
	}
	if filter.UserID != nil && exp.UserID != *filter.UserID {
		return false
	}
	if filter.DateFrom != nil && exp.ExpenseDate.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && exp.ExpenseDate.After(*filter.DateTo) {
		return false
	}
	if filter.AmountMin != nil && exp.Amount.LessThan(*filter.AmountMin) {
		return false
	}
	if filter.AmountMax != nil && exp.Amount.GreaterThan(*filter.AmountMax) {
		return false
	}
	return true
}

func sortExpenses(expenses []*entity.Expense, sortBy adapter.ExpenseSortField, descending bool) {
	less := func(a, b *entity.Expense) bool {
		switch sortBy {
		case adapter.SortByAmount:
			return a.Amount.LessThan(b.Amount)
		case adapter.SortByTitle:
			return a.Title < b.Title
		case adapter.SortByStatus:
			return a.Status < b.Status
		case adapter.SortByCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.ExpenseDate.Before(b.ExpenseDate)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		if descending {
			return less(expenses[j], expenses[i])
		}
		return less(expenses[i], expenses[j])
	})
}

func sortByDateDesc(expenses []*entity.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].ExpenseDate.After(expenses[j].ExpenseDate)
	})
}
