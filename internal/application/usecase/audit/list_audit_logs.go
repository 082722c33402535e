// Package audit contains audit trail read use cases.
package audit

import (
	"context"
	"fmt"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// DefaultRecentLimit bounds the audit listing when no limit is given.
const DefaultRecentLimit = 50

// ListAuditLogsInput represents the input for the audit trail listing.
type ListAuditLogsInput struct {
	Limit int
}

// ListAuditLogsOutput represents the output of the audit trail listing.
type ListAuditLogsOutput struct {
	Entries []*entity.AuditLog
}

// ListAuditLogsUseCase lists recent audit entries for the manager view.
type ListAuditLogsUseCase struct {
	auditRepo adapter.AuditLogRepository
}

// NewListAuditLogsUseCase creates a new ListAuditLogsUseCase instance.
func NewListAuditLogsUseCase(auditRepo adapter.AuditLogRepository) *ListAuditLogsUseCase {
	return &ListAuditLogsUseCase{auditRepo: auditRepo}
}

// Execute retrieves the most recent entries, newest first.
func (uc *ListAuditLogsUseCase) Execute(ctx context.Context, input ListAuditLogsInput) (*ListAuditLogsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	entries, err := uc.auditRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return &ListAuditLogsOutput{Entries: entries}, nil
}
