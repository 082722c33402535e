package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/usecase/expense"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency,omitempty" binding:"omitempty,len=3"`
	CategoryID  string  `json:"category_id" binding:"required"`
	ExpenseDate string  `json:"expense_date" binding:"required"`
}

// UpdateExpenseRequest represents the request body for editing an expense.
// Edits are full replacements of the editable fields.
type UpdateExpenseRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency,omitempty" binding:"omitempty,len=3"`
	CategoryID  string  `json:"category_id" binding:"required"`
	ExpenseDate string  `json:"expense_date" binding:"required"`
}

// ApproveExpenseRequest represents the request body for approving an expense.
type ApproveExpenseRequest struct {
	Notes string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// RejectExpenseRequest represents the request body for rejecting an expense.
type RejectExpenseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ValidateExpenseRequest represents a candidate expense for the dry-run
// validation endpoint.
type ValidateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency,omitempty" binding:"omitempty,len=3"`
	CategoryID  string  `json:"category_id" binding:"required"`
	ExpenseDate string  `json:"expense_date" binding:"required"`
	ExpenseID   *string `json:"expense_id,omitempty"`
}

// ValidateExpenseResponse represents the result of the dry-run validation.
type ValidateExpenseResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// PermissionsResponse represents the per-expense action flags for the actor.
type PermissionsResponse struct {
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
	CanSubmit  bool `json:"can_submit"`
	CanApprove bool `json:"can_approve"`
	CanReject  bool `json:"can_reject"`
	CanPay     bool `json:"can_pay"`
}

// ExpenseResponse represents a full expense in API responses.
type ExpenseResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Amount          string     `json:"amount"`
	Currency        string     `json:"currency"`
	CategoryID      string     `json:"category_id"`
	UserID          string     `json:"user_id"`
	Status          string     `json:"status"`
	ExpenseDate     string     `json:"expense_date"`
	CreatedAt       time.Time  `json:"created_at"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	ApprovedByID    *string    `json:"approved_by_id,omitempty"`
	RejectedByID    *string    `json:"rejected_by_id,omitempty"`
	PaidByID        *string    `json:"paid_by_id,omitempty"`
	ApprovalNotes   string     `json:"approval_notes,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// ExpenseListItemResponse represents one row of the expense listing.
type ExpenseListItemResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Amount          string              `json:"amount"`
	Currency        string              `json:"currency"`
	CategoryName    string              `json:"category_name"`
	CategoryIcon    string              `json:"category_icon"`
	Status          string              `json:"status"`
	ExpenseDate     string              `json:"expense_date"`
	UserDisplayName string              `json:"user_display_name"`
	Permissions     PermissionsResponse `json:"permissions"`
}

// ExpensePaginationResponse represents pagination information in API responses.
type ExpensePaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses   []ExpenseListItemResponse `json:"expenses"`
	Pagination ExpensePaginationResponse `json:"pagination"`
}

// AuditEntryResponse represents one audit trail entry in API responses.
type AuditEntryResponse struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	UserID     string    `json:"user_id"`
	OldValue   string    `json:"old_value,omitempty"`
	NewValue   string    `json:"new_value,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ExpenseDetailResponse represents the expense detail view with its history.
type ExpenseDetailResponse struct {
	Expense      ExpenseResponse      `json:"expense"`
	CategoryName string               `json:"category_name"`
	Permissions  PermissionsResponse  `json:"permissions"`
	History      []AuditEntryResponse `json:"history"`
}

// ToExpenseResponse converts an ExpenseOutput to an ExpenseResponse DTO.
func ToExpenseResponse(out *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:              out.ID.String(),
		Title:           out.Title,
		Description:     out.Description,
		Amount:          out.Amount.String(),
		Currency:        out.Currency,
		CategoryID:      out.CategoryID.String(),
		UserID:          out.UserID.String(),
		Status:          string(out.Status),
		ExpenseDate:     out.ExpenseDate.Format("2006-01-02"),
		CreatedAt:       out.CreatedAt,
		SubmittedAt:     out.SubmittedAt,
		ApprovedAt:      out.ApprovedAt,
		RejectedAt:      out.RejectedAt,
		PaidAt:          out.PaidAt,
		ApprovedByID:    uuidString(out.ApprovedByID),
		RejectedByID:    uuidString(out.RejectedByID),
		PaidByID:        uuidString(out.PaidByID),
		ApprovalNotes:   out.ApprovalNotes,
		RejectionReason: out.RejectionReason,
	}
}

// ToPermissionsResponse converts use case permissions to a DTO.
func ToPermissionsResponse(p expense.Permissions) PermissionsResponse {
	return PermissionsResponse{
		CanEdit:    p.CanEdit,
		CanDelete:  p.CanDelete,
		CanSubmit:  p.CanSubmit,
		CanApprove: p.CanApprove,
		CanReject:  p.CanReject,
		CanPay:     p.CanPay,
	}
}

// ToExpenseListItemResponse converts an ExpenseListItem to its DTO.
func ToExpenseListItemResponse(item *expense.ExpenseListItem) ExpenseListItemResponse {
	return ExpenseListItemResponse{
		ID:              item.ID.String(),
		Title:           item.Title,
		Amount:          item.Amount.String(),
		Currency:        item.Currency,
		CategoryName:    item.CategoryName,
		CategoryIcon:    item.CategoryIcon,
		Status:          string(item.Status),
		ExpenseDate:     item.ExpenseDate.Format("2006-01-02"),
		UserDisplayName: item.UserDisplayName,
		Permissions:     ToPermissionsResponse(item.Permissions),
	}
}

// ToExpenseListResponse converts a listing page to its DTO.
func ToExpenseListResponse(out *expense.ListExpensesOutput) ExpenseListResponse {
	response := ExpenseListResponse{
		Expenses: make([]ExpenseListItemResponse, len(out.Items)),
		Pagination: ExpensePaginationResponse{
			Page:       out.Page,
			PageSize:   out.PageSize,
			Total:      out.TotalCount,
			TotalPages: out.TotalPages,
		},
	}
	for i, item := range out.Items {
		response.Expenses[i] = ToExpenseListItemResponse(item)
	}
	return response
}

// ToAuditEntryResponse converts an audit entry to its DTO.
func ToAuditEntryResponse(entry *entity.AuditLog) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         entry.ID.String(),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID.String(),
		Action:     string(entry.Action),
		UserID:     entry.UserID.String(),
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		Details:    entry.Details,
		Timestamp:  entry.Timestamp,
	}
}

// ToExpenseDetailResponse converts the detail projection to its DTO.
func ToExpenseDetailResponse(out *expense.GetExpenseOutput) ExpenseDetailResponse {
	response := ExpenseDetailResponse{
		Expense:      ToExpenseResponse(out.Expense),
		CategoryName: out.CategoryName,
		Permissions:  ToPermissionsResponse(out.ListItem.Permissions),
		History:      make([]AuditEntryResponse, len(out.History)),
	}
	for i, entry := range out.History {
		response.History[i] = ToAuditEntryResponse(entry)
	}
	return response
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
