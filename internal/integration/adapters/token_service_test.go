// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/expense-claims/backend/internal/domain/entity"
)

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService("test-secret", time.Hour)
	user := entity.NewUser("alice.manager", "Alice Manager", "alice.manager@example.com", entity.UserRoleManager, "Finance")

	t.Run("round-trips the identity", func(t *testing.T) {
		token, err := svc.IssueToken(ctx, user)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		claims, err := svc.ValidateToken(ctx, token)
		if err != nil {
			t.Fatalf("failed to validate token: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("expected user ID %s, got %s", user.ID, claims.UserID)
		}
		if claims.Username != "alice.manager" {
			t.Errorf("expected username alice.manager, got %q", claims.Username)
		}
		if claims.Role != entity.UserRoleManager {
			t.Errorf("expected manager role, got %s", claims.Role)
		}
		if !claims.IsManager() {
			t.Error("expected IsManager to be true for a manager token")
		}
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		if _, err := svc.ValidateToken(ctx, "not-a-token"); err == nil {
			t.Error("expected an error for a malformed token")
		}
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		token, err := other.IssueToken(ctx, user)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		if _, err := svc.ValidateToken(ctx, token); err == nil {
			t.Error("expected an error for a token with a wrong signature")
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := NewTokenService("test-secret", -time.Minute)
		token, err := expired.IssueToken(ctx, user)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}
		if _, err := svc.ValidateToken(ctx, token); err == nil {
			t.Error("expected an error for an expired token")
		}
	})
}
