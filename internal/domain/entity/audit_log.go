// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction tags the lifecycle action an audit entry documents.
type AuditAction string

const (
	AuditActionCreated   AuditAction = "Created"
	AuditActionUpdated   AuditAction = "Updated"
	AuditActionDeleted   AuditAction = "Deleted"
	AuditActionSubmitted AuditAction = "Submitted"
	AuditActionApproved  AuditAction = "Approved"
	AuditActionRejected  AuditAction = "Rejected"
	AuditActionPaid      AuditAction = "Paid"
)

// AuditLog represents an append-only audit trail entry. Entries are never
// mutated or deleted once written.
type AuditLog struct {
	ID         uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     AuditAction
	UserID     uuid.UUID
	OldValue   string
	NewValue   string
	Details    string
	Timestamp  time.Time
}

// NewAuditLog creates a new audit entry stamped with the current time.
func NewAuditLog(entityType string, entityID uuid.UUID, action AuditAction, userID uuid.UUID) *AuditLog {
	return &AuditLog{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     userID,
		Timestamp:  time.Now().UTC(),
	}
}
