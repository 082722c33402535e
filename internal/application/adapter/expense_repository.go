// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// ExpenseSortField names a sortable expense column.
type ExpenseSortField string

const (
	SortByExpenseDate ExpenseSortField = "expense_date"
	SortByAmount      ExpenseSortField = "amount"
	SortByTitle       ExpenseSortField = "title"
	SortByStatus      ExpenseSortField = "status"
	SortByCreatedAt   ExpenseSortField = "created_at"
)

// ExpenseFilter defines filter options for listing expenses.
type ExpenseFilter struct {
	SearchTerm     string // Case-insensitive match on title or description
	Status         *entity.ExpenseStatus
	CategoryID     *uuid.UUID
	UserID         *uuid.UUID
	DateFrom       *time.Time
	DateTo         *time.Time
	AmountMin      *decimal.Decimal
	AmountMax      *decimal.Decimal
	SortBy         ExpenseSortField
	SortDescending bool
}

// ExpensePagination defines pagination options.
type ExpensePagination struct {
	Page     int
	PageSize int
}

// ExpensePage represents one page of an expense listing.
type ExpensePage struct {
	Items      []*entity.Expense
	TotalCount int
	Page       int
	PageSize   int
}

// TotalPages returns the number of pages for the result set.
func (p *ExpensePage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// ExpenseRepository defines the interface for expense persistence operations.
// Implementations hand out defensive copies; mutating a returned expense never
// changes the stored record until Update is called.
type ExpenseRepository interface {
	// Create stores a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByUser retrieves all expenses owned by the given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error)

	// FindByDateRange retrieves expenses with an expense date inside
	// [start, end]. A nil userID returns company-wide results.
	FindByDateRange(ctx context.Context, start, end time.Time, userID *uuid.UUID) ([]*entity.Expense, error)

	// FindByFilter retrieves expenses matching the filter, sorted and paged.
	FindByFilter(ctx context.Context, filter ExpenseFilter, pagination ExpensePagination) (*ExpensePage, error)

	// Update replaces the stored expense with the given one.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense. It reports whether a record was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
