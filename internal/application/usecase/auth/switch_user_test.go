// Package auth contains the switch-user session use cases.
package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
	"github.com/expense-claims/backend/internal/integration/adapters"
	"github.com/expense-claims/backend/internal/integration/persistence/memory"
)

func TestSwitchUserUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	employee := entity.NewUser("john.doe", "John Doe", "john.doe@example.com", entity.UserRoleEmployee, "Engineering")
	inactive := entity.NewUser("gone.user", "Gone User", "gone.user@example.com", entity.UserRoleEmployee, "Engineering")
	inactive.IsActive = false

	userRepo := memory.NewUserRepository(employee, inactive)
	tokenService := adapters.NewTokenService("test-secret", time.Hour)
	uc := NewSwitchUserUseCase(userRepo, tokenService)

	t.Run("issues a session for a known user", func(t *testing.T) {
		out, err := uc.Execute(ctx, SwitchUserInput{Username: "john.doe"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out.Token == "" {
			t.Error("expected a non-empty token")
		}
		if out.UserID != employee.ID || out.Role != entity.UserRoleEmployee {
			t.Errorf("unexpected session identity: %+v", out)
		}

		claims, err := tokenService.ValidateToken(ctx, out.Token)
		if err != nil {
			t.Fatalf("expected the issued token to validate, got %v", err)
		}
		if claims.UserID != employee.ID {
			t.Errorf("expected token subject %s, got %s", employee.ID, claims.UserID)
		}
	})

	t.Run("unknown usernames fail", func(t *testing.T) {
		_, err := uc.Execute(ctx, SwitchUserInput{Username: "nobody"})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected *AuthError, got %T", err)
		}
		if authErr.Code != domainerror.ErrCodeUserNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeUserNotFound, authErr.Code)
		}
	})

	t.Run("inactive users fail", func(t *testing.T) {
		_, err := uc.Execute(ctx, SwitchUserInput{Username: "gone.user"})
		var authErr *domainerror.AuthError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected *AuthError, got %T", err)
		}
		if authErr.Code != domainerror.ErrCodeUserInactive {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeUserInactive, authErr.Code)
		}
	})
}

func TestListUsersUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	userRepo := memory.NewUserRepository(
		entity.NewUser("bob", "Bob", "bob@example.com", entity.UserRoleEmployee, "Sales"),
		entity.NewUser("alice", "Alice", "alice@example.com", entity.UserRoleManager, "Finance"),
	)
	uc := NewListUsersUseCase(userRepo)

	users, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	// Sorted by display name.
	if users[0].DisplayName != "Alice" {
		t.Errorf("expected Alice first, got %q", users[0].DisplayName)
	}
}
