package dto

import (
	"time"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name                string  `json:"name" binding:"required,min=1,max=100"`
	Description         string  `json:"description,omitempty" binding:"omitempty,max=500"`
	Icon                string  `json:"icon,omitempty" binding:"omitempty,max=50"`
	MaxAmountPerExpense float64 `json:"max_amount_per_expense" binding:"required"`
	MonthlyLimit        float64 `json:"monthly_limit" binding:"required"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name                string  `json:"name" binding:"required,min=1,max=100"`
	Description         string  `json:"description,omitempty" binding:"omitempty,max=500"`
	Icon                string  `json:"icon,omitempty" binding:"omitempty,max=50"`
	MaxAmountPerExpense float64 `json:"max_amount_per_expense" binding:"required"`
	MonthlyLimit        float64 `json:"monthly_limit" binding:"required"`
	IsActive            *bool   `json:"is_active,omitempty"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Icon                string    `json:"icon"`
	MaxAmountPerExpense string    `json:"max_amount_per_expense"`
	MonthlyLimit        string    `json:"monthly_limit"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:                  category.ID.String(),
		Name:                category.Name,
		Description:         category.Description,
		Icon:                category.Icon,
		MaxAmountPerExpense: category.MaxAmountPerExpense.String(),
		MonthlyLimit:        category.MonthlyLimit.String(),
		IsActive:            category.IsActive,
		CreatedAt:           category.CreatedAt,
	}
}

// ToCategoryListResponse converts categories to a CategoryListResponse DTO.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	response := CategoryListResponse{Categories: make([]CategoryResponse, len(categories))}
	for i, c := range categories {
		response.Categories[i] = ToCategoryResponse(c)
	}
	return response
}
