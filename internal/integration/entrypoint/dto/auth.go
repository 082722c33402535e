// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/expense-claims/backend/internal/application/usecase/auth"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// SwitchUserRequest represents the request body for assuming a user identity.
type SwitchUserRequest struct {
	Username string `json:"username" binding:"required"`
}

// SwitchUserResponse represents the issued session.
type SwitchUserResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Department  string `json:"department"`
	IsActive    bool   `json:"is_active"`
}

// UserListResponse represents the response for listing users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToSwitchUserResponse converts a SwitchUserOutput to a SwitchUserResponse DTO.
func ToSwitchUserResponse(out *auth.SwitchUserOutput) SwitchUserResponse {
	return SwitchUserResponse{
		Token:       out.Token,
		UserID:      out.UserID.String(),
		Username:    out.Username,
		DisplayName: out.DisplayName,
		Role:        string(out.Role),
	}
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
		Department:  user.Department,
		IsActive:    user.IsActive,
	}
}

// ToUserListResponse converts users to a UserListResponse DTO.
func ToUserListResponse(users []*entity.User) UserListResponse {
	out := UserListResponse{Users: make([]UserResponse, len(users))}
	for i, u := range users {
		out.Users[i] = ToUserResponse(u)
	}
	return out
}
