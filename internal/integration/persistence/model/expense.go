// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title           string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency        string          `gorm:"type:varchar(3);not null"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:varchar(20);not null;index"`
	ExpenseDate     time.Time       `gorm:"not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	SubmittedAt     *time.Time      `gorm:"type:timestamp"`
	ApprovedAt      *time.Time      `gorm:"type:timestamp"`
	RejectedAt      *time.Time      `gorm:"type:timestamp"`
	PaidAt          *time.Time      `gorm:"type:timestamp"`
	ApprovedByID    *uuid.UUID      `gorm:"type:uuid"`
	RejectedByID    *uuid.UUID      `gorm:"type:uuid"`
	PaidByID        *uuid.UUID      `gorm:"type:uuid"`
	ApprovalNotes   string          `gorm:"type:text"`
	RejectionReason string          `gorm:"type:text"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Amount:          m.Amount,
		Currency:        m.Currency,
		CategoryID:      m.CategoryID,
		UserID:          m.UserID,
		Status:          entity.ExpenseStatus(m.Status),
		ExpenseDate:     m.ExpenseDate,
		CreatedAt:       m.CreatedAt,
		SubmittedAt:     m.SubmittedAt,
		ApprovedAt:      m.ApprovedAt,
		RejectedAt:      m.RejectedAt,
		PaidAt:          m.PaidAt,
		ApprovedByID:    m.ApprovedByID,
		RejectedByID:    m.RejectedByID,
		PaidByID:        m.PaidByID,
		ApprovalNotes:   m.ApprovalNotes,
		RejectionReason: m.RejectionReason,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:              expense.ID,
		Title:           expense.Title,
		Description:     expense.Description,
		Amount:          expense.Amount,
		Currency:        expense.Currency,
		CategoryID:      expense.CategoryID,
		UserID:          expense.UserID,
		Status:          string(expense.Status),
		ExpenseDate:     expense.ExpenseDate,
		CreatedAt:       expense.CreatedAt,
		SubmittedAt:     expense.SubmittedAt,
		ApprovedAt:      expense.ApprovedAt,
		RejectedAt:      expense.RejectedAt,
		PaidAt:          expense.PaidAt,
		ApprovedByID:    expense.ApprovedByID,
		RejectedByID:    expense.RejectedByID,
		PaidByID:        expense.PaidByID,
		ApprovalNotes:   expense.ApprovalNotes,
		RejectionReason: expense.RejectionReason,
	}
}
