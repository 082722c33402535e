package dto

import (
	"time"

	"github.com/expense-claims/backend/internal/application/usecase/dashboard"
)

// DashboardKPIsResponse represents the headline numbers of the dashboard.
type DashboardKPIsResponse struct {
	SubmittedThisMonth       int     `json:"submitted_this_month"`
	ApprovedThisMonth        int     `json:"approved_this_month"`
	RejectedThisMonth        int     `json:"rejected_this_month"`
	PendingApproval          int     `json:"pending_approval"`
	TotalAmountThisMonth     string  `json:"total_amount_this_month"`
	AverageApprovalTimeHours float64 `json:"average_approval_time_hours"`
}

// MonthlyBucketResponse represents one calendar month of the window.
type MonthlyBucketResponse struct {
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	MonthName      string `json:"month_name"`
	Count          int    `json:"count"`
	TotalAmount    string `json:"total_amount"`
	ApprovedAmount string `json:"approved_amount"`
	RejectedAmount string `json:"rejected_amount"`
	PendingAmount  string `json:"pending_amount"`
}

// CategoryBucketResponse represents one category slice of the window.
type CategoryBucketResponse struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	CategoryIcon string  `json:"category_icon"`
	Count        int     `json:"count"`
	TotalAmount  string  `json:"total_amount"`
	Percentage   float64 `json:"percentage"`
}

// StatusBucketResponse represents one status slice of the window.
type StatusBucketResponse struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DashboardResponse represents the aggregated reporting view.
type DashboardResponse struct {
	IsPersonal      bool                     `json:"is_personal"`
	UserID          *string                  `json:"user_id,omitempty"`
	UserDisplayName string                   `json:"user_display_name,omitempty"`
	Filter          string                   `json:"filter"`
	WindowStart     time.Time                `json:"window_start"`
	WindowEnd       time.Time                `json:"window_end"`
	KPIs            DashboardKPIsResponse    `json:"kpis"`
	MonthlyBuckets  []MonthlyBucketResponse  `json:"monthly_buckets"`
	CategoryBuckets []CategoryBucketResponse `json:"category_buckets"`
	StatusBuckets   []StatusBucketResponse   `json:"status_buckets"`
	AvailableUsers  []UserResponse           `json:"available_users,omitempty"`
}

// ToDashboardResponse converts the dashboard aggregation to its DTO.
func ToDashboardResponse(out *dashboard.GetDashboardOutput, includeUsers bool) DashboardResponse {
	response := DashboardResponse{
		IsPersonal:      out.IsPersonal,
		UserDisplayName: out.UserDisplayName,
		Filter:          string(out.Filter),
		WindowStart:     out.WindowStart,
		WindowEnd:       out.WindowEnd,
		KPIs: DashboardKPIsResponse{
			SubmittedThisMonth:       out.KPIs.SubmittedThisMonth,
			ApprovedThisMonth:        out.KPIs.ApprovedThisMonth,
			RejectedThisMonth:        out.KPIs.RejectedThisMonth,
			PendingApproval:          out.KPIs.PendingApproval,
			TotalAmountThisMonth:     out.KPIs.TotalAmountThisMonth.String(),
			AverageApprovalTimeHours: out.KPIs.AverageApprovalTimeHours,
		},
		MonthlyBuckets:  make([]MonthlyBucketResponse, len(out.MonthlyBuckets)),
		CategoryBuckets: make([]CategoryBucketResponse, len(out.CategoryBuckets)),
		StatusBuckets:   make([]StatusBucketResponse, len(out.StatusBuckets)),
	}

	if out.UserID != nil {
		s := out.UserID.String()
		response.UserID = &s
	}

	for i, b := range out.MonthlyBuckets {
		response.MonthlyBuckets[i] = MonthlyBucketResponse{
			Year:           b.Year,
			Month:          int(b.Month),
			MonthName:      b.MonthName,
			Count:          b.Count,
			TotalAmount:    b.TotalAmount.String(),
			ApprovedAmount: b.ApprovedAmount.String(),
			RejectedAmount: b.RejectedAmount.String(),
			PendingAmount:  b.PendingAmount.String(),
		}
	}
	for i, b := range out.CategoryBuckets {
		response.CategoryBuckets[i] = CategoryBucketResponse{
			CategoryID:   b.CategoryID.String(),
			CategoryName: b.CategoryName,
			CategoryIcon: b.CategoryIcon,
			Count:        b.Count,
			TotalAmount:  b.TotalAmount.String(),
			Percentage:   b.Percentage,
		}
	}
	for i, b := range out.StatusBuckets {
		response.StatusBuckets[i] = StatusBucketResponse{
			Status:     string(b.Status),
			Count:      b.Count,
			Percentage: b.Percentage,
		}
	}

	if includeUsers {
		response.AvailableUsers = make([]UserResponse, len(out.AvailableUsers))
		for i, u := range out.AvailableUsers {
			response.AvailableUsers[i] = ToUserResponse(u)
		}
	}
	return response
}
