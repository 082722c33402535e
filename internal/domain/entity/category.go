// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents an expense category with its spending policy.
// Inactive categories stay resolvable for display but fail validation for
// new or edited expenses.
type Category struct {
	ID                  uuid.UUID
	Name                string
	Description         string
	Icon                string
	MaxAmountPerExpense decimal.Decimal
	MonthlyLimit        decimal.Decimal
	IsActive            bool
	CreatedAt           time.Time
}

// NewCategory creates a new active Category entity.
// Note: Defaulting logic for the icon should be applied in the Application
// layer (UseCase) before calling this constructor.
func NewCategory(name, description, icon string, maxAmountPerExpense, monthlyLimit decimal.Decimal) *Category {
	return &Category{
		ID:                  uuid.New(),
		Name:                name,
		Description:         description,
		Icon:                icon,
		MaxAmountPerExpense: maxAmountPerExpense,
		MonthlyLimit:        monthlyLimit,
		IsActive:            true,
		CreatedAt:           time.Now().UTC(),
	}
}

// Clone returns a copy of the category.
func (c *Category) Clone() *Category {
	cp := *c
	return &cp
}
