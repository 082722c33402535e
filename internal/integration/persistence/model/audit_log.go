package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// AuditLogModel represents the audit_logs table in the database.
// Rows are append-only; nothing updates or deletes them.
type AuditLogModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_entity"`
	Action     string    `gorm:"type:varchar(20);not null"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	OldValue   string    `gorm:"type:text"`
	NewValue   string    `gorm:"type:text"`
	Details    string    `gorm:"type:text"`
	Timestamp  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the AuditLogModel.
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToEntity converts an AuditLogModel to a domain AuditLog entity.
func (m *AuditLogModel) ToEntity() *entity.AuditLog {
	return &entity.AuditLog{
		ID:         m.ID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Action:     entity.AuditAction(m.Action),
		UserID:     m.UserID,
		OldValue:   m.OldValue,
		NewValue:   m.NewValue,
		Details:    m.Details,
		Timestamp:  m.Timestamp,
	}
}

// AuditLogFromEntity creates an AuditLogModel from a domain AuditLog entity.
func AuditLogFromEntity(entry *entity.AuditLog) *AuditLogModel {
	return &AuditLogModel{
		ID:         entry.ID,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     string(entry.Action),
		UserID:     entry.UserID,
		OldValue:   entry.OldValue,
		NewValue:   entry.NewValue,
		Details:    entry.Details,
		Timestamp:  entry.Timestamp,
	}
}
