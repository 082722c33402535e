// Package memory implements the repository interfaces on an in-memory
// collection guarded by a mutex.
package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/domain/entity"
)

func TestAuditLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditLogRepository()

	expenseID := uuid.New()
	otherID := uuid.New()
	actorID := uuid.New()

	actions := []entity.AuditAction{
		entity.AuditActionCreated,
		entity.AuditActionSubmitted,
		entity.AuditActionApproved,
	}
	for _, action := range actions {
		if err := repo.Append(ctx, entity.NewAuditLog("Expense", expenseID, action, actorID)); err != nil {
			t.Fatalf("failed to append entry: %v", err)
		}
	}
	if err := repo.Append(ctx, entity.NewAuditLog("Expense", otherID, entity.AuditActionCreated, actorID)); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}

	t.Run("FindByEntity returns entries newest first", func(t *testing.T) {
		entries, err := repo.FindByEntity(ctx, "Expense", expenseID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Action != entity.AuditActionApproved {
			t.Errorf("expected newest entry first, got %s", entries[0].Action)
		}
		if entries[2].Action != entity.AuditActionCreated {
			t.Errorf("expected oldest entry last, got %s", entries[2].Action)
		}
	})

	t.Run("FindByEntity scopes to the entity", func(t *testing.T) {
		entries, err := repo.FindByEntity(ctx, "Expense", otherID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry, got %d", len(entries))
		}
	})

	t.Run("FindRecent honors the limit", func(t *testing.T) {
		entries, err := repo.FindRecent(ctx, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
	})

	t.Run("a non-positive limit returns everything", func(t *testing.T) {
		entries, err := repo.FindRecent(ctx, 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 4 {
			t.Errorf("expected 4 entries, got %d", len(entries))
		}
	})

	t.Run("stored entries are isolated from caller mutation", func(t *testing.T) {
		entries, err := repo.FindByEntity(ctx, "Expense", otherID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		entries[0].Details = "tampered"

		again, err := repo.FindByEntity(ctx, "Expense", otherID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if again[0].Details == "tampered" {
			t.Error("expected the stored entry to be isolated from caller mutation")
		}
	})
}
