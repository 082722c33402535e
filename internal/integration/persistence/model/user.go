package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username    string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName string    `gorm:"type:varchar(100);not null"`
	Email       string    `gorm:"type:varchar(255);not null"`
	Role        string    `gorm:"type:varchar(20);not null"`
	Department  string    `gorm:"type:varchar(100)"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Role:        entity.UserRole(m.Role),
		Department:  m.Department,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
		Department:  user.Department,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}
