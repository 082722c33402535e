// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create stores a new expense in the database.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).Create(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByUser retrieves all expenses owned by the given user.
func (r *expenseRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expense_date DESC, created_at DESC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(expenseModels), nil
}

// FindByDateRange retrieves expenses with an expense date inside [start, end].
// A nil userID returns company-wide results.
func (r *expenseRepository) FindByDateRange(ctx context.Context, start, end time.Time, userID *uuid.UUID) ([]*entity.Expense, error) {
	query := r.db.WithContext(ctx).Model(&model.ExpenseModel{})
	if !start.IsZero() {
		query = query.Where("expense_date >= ?", start)
	}
	query = query.Where("expense_date <= ?", end)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var expenseModels []model.ExpenseModel
	result := query.Order("expense_date DESC, created_at DESC").Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(expenseModels), nil
}

// FindByFilter retrieves expenses matching the filter, sorted and paged.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter, pagination adapter.ExpensePagination) (*adapter.ExpensePage, error) {
	query := r.db.WithContext(ctx).Model(&model.ExpenseModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.DateFrom != nil {
		query = query.Where("expense_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("expense_date <= ?", *filter.DateTo)
	}
	if filter.AmountMin != nil {
		query = query.Where("amount >= ?", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		query = query.Where("amount <= ?", *filter.AmountMax)
	}
	if filter.SearchTerm != "" {
		pattern := "%" + strings.ToLower(filter.SearchTerm) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	page := pagination.Page
	if page < 1 {
		page = 1
	}
	pageSize := pagination.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	var expenseModels []model.ExpenseModel
	result := query.
		Order(orderClause(filter)).
		Offset(offset).
		Limit(pageSize).
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.ExpensePage{
		Items:      toEntities(expenseModels),
		TotalCount: int(total),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Update replaces the stored expense with the given one.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	expenseModel := model.ExpenseFromEntity(expense)
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ?", expense.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(expenseModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense. It reports whether a record was removed.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// orderClause maps a sort field onto an ORDER BY clause with a stable
// created_at tiebreak.
func orderClause(filter adapter.ExpenseFilter) string {
	column := "expense_date"
	switch filter.SortBy {
	case adapter.SortByAmount:
		column = "amount"
	case adapter.SortByTitle:
		column = "title"
	case adapter.SortByStatus:
		column = "status"
	case adapter.SortByCreatedAt:
		column = "created_at"
	case adapter.SortByExpenseDate:
		column = "expense_date"
	}
	direction := "ASC"
	if filter.SortDescending {
		direction = "DESC"
	}
	if column == "created_at" {
		return "created_at " + direction
	}
	return column + " " + direction + ", created_at DESC"
}

func toEntities(models []model.ExpenseModel) []*entity.Expense {
	expenses := make([]*entity.Expense, len(models))
	for i, m := range models {
		expenses[i] = m.ToEntity()
	}
	return expenses
}
