// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user in the expense workflow.
type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleManager  UserRole = "manager"
)

// User represents a user of the expense system.
type User struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	Role        UserRole
	Department  string
	IsActive    bool
	CreatedAt   time.Time
}

// NewUser creates a new User entity.
func NewUser(username, displayName, email string, role UserRole, department string) *User {
	return &User{
		ID:          uuid.New(),
		Username:    username,
		DisplayName: displayName,
		Email:       email,
		Role:        role,
		Department:  department,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == UserRoleManager
}

// Clone returns a copy of the user.
func (u *User) Clone() *User {
	cp := *u
	return &cp
}
