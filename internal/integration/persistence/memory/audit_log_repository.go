package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
)

// auditLogRepository implements adapter.AuditLogRepository over a locked
// append-only slice.
type auditLogRepository struct {
	mu      sync.RWMutex
	entries []*entity.AuditLog
}

// NewAuditLogRepository creates an empty in-memory audit log.
func NewAuditLogRepository() adapter.AuditLogRepository {
	return &auditLogRepository{}
}

// Append stores a new audit entry.
func (r *auditLogRepository) Append(_ context.Context, entry *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

// FindRecent retrieves the most recent entries, newest first.
func (r *auditLogRepository) FindRecent(_ context.Context, limit int) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]*entity.AuditLog, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.entries[i]
		out = append(out, &cp)
	}
	return out, nil
}

// FindByEntity retrieves all entries for one entity, newest first.
func (r *auditLogRepository) FindByEntity(_ context.Context, entityType string, entityID uuid.UUID) ([]*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.AuditLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if entry.EntityType == entityType && entry.EntityID == entityID {
			cp := *entry
			out = append(out, &cp)
		}
	}
	return out, nil
}
