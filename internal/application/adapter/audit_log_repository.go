// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// AuditLogRepository defines the interface for the append-only audit trail.
// Appends are best effort from the caller's perspective; a failed append is
// logged and never rolls back the transition it documents.
type AuditLogRepository interface {
	// Append stores a new audit entry.
	Append(ctx context.Context, entry *entity.AuditLog) error

	// FindRecent retrieves the most recent entries, newest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error)

	// FindByEntity retrieves all entries for one entity, newest first.
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entity.AuditLog, error)
}
