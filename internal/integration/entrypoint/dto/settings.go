package dto

import (
	"github.com/expense-claims/backend/internal/domain/entity"
)

// UpdateSettingsRequest represents the request body for replacing the
// expense policy.
type UpdateSettingsRequest struct {
	AutoApprovalThreshold float64  `json:"auto_approval_threshold"`
	AllowedCurrencies     []string `json:"allowed_currencies" binding:"required,min=1"`
	DefaultCurrency       string   `json:"default_currency" binding:"required,len=3"`
}

// SettingsResponse represents the expense policy in API responses.
type SettingsResponse struct {
	AutoApprovalThreshold string   `json:"auto_approval_threshold"`
	AllowedCurrencies     []string `json:"allowed_currencies"`
	DefaultCurrency       string   `json:"default_currency"`
}

// ToSettingsResponse converts domain Settings to a SettingsResponse DTO.
func ToSettingsResponse(settings *entity.Settings) SettingsResponse {
	return SettingsResponse{
		AutoApprovalThreshold: settings.AutoApprovalThreshold.String(),
		AllowedCurrencies:     settings.AllowedCurrencies,
		DefaultCurrency:       settings.DefaultCurrency,
	}
}

// AuditLogListResponse represents the response for the audit trail listing.
type AuditLogListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// ToAuditLogListResponse converts audit entries to their list DTO.
func ToAuditLogListResponse(entries []*entity.AuditLog) AuditLogListResponse {
	response := AuditLogListResponse{Entries: make([]AuditEntryResponse, len(entries))}
	for i, entry := range entries {
		response.Entries[i] = ToAuditEntryResponse(entry)
	}
	return response
}
