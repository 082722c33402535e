package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description         string          `gorm:"type:text"`
	Icon                string          `gorm:"type:varchar(50)"`
	MaxAmountPerExpense decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	MonthlyLimit        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsActive            bool            `gorm:"default:true;index"`
	CreatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:                  m.ID,
		Name:                m.Name,
		Description:         m.Description,
		Icon:                m.Icon,
		MaxAmountPerExpense: m.MaxAmountPerExpense,
		MonthlyLimit:        m.MonthlyLimit,
		IsActive:            m.IsActive,
		CreatedAt:           m.CreatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:                  category.ID,
		Name:                category.Name,
		Description:         category.Description,
		Icon:                category.Icon,
		MaxAmountPerExpense: category.MaxAmountPerExpense,
		MonthlyLimit:        category.MonthlyLimit,
		IsActive:            category.IsActive,
		CreatedAt:           category.CreatedAt,
	}
}
