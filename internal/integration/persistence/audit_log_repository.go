package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	"github.com/expense-claims/backend/internal/integration/persistence/model"
)

// auditLogRepository implements the adapter.AuditLogRepository interface.
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance.
func NewAuditLogRepository(db *gorm.DB) adapter.AuditLogRepository {
	return &auditLogRepository{
		db: db,
	}
}

// Append stores a new audit entry.
func (r *auditLogRepository) Append(ctx context.Context, entry *entity.AuditLog) error {
	auditModel := model.AuditLogFromEntity(entry)
	result := r.db.WithContext(ctx).Create(auditModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindRecent retrieves the most recent entries, newest first.
func (r *auditLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.AuditLog, error) {
	query := r.db.WithContext(ctx).Order("timestamp DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var auditModels []model.AuditLogModel
	result := query.Find(&auditModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAuditEntities(auditModels), nil
}

// FindByEntity retrieves all entries for one entity, newest first.
func (r *auditLogRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*entity.AuditLog, error) {
	var auditModels []model.AuditLogModel
	result := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("timestamp DESC, id DESC").
		Find(&auditModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toAuditEntities(auditModels), nil
}

func toAuditEntities(models []model.AuditLogModel) []*entity.AuditLog {
	entries := make([]*entity.AuditLog, len(models))
	for i, m := range models {
		entries[i] = m.ToEntity()
	}
	return entries
}
