// Package adapter defines interfaces that are implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/domain/entity"
)

// TokenClaims carries the identity encoded in a session token.
type TokenClaims struct {
	UserID      uuid.UUID
	Username    string
	DisplayName string
	Role        entity.UserRole
}

// IsManager reports whether the token belongs to a manager.
func (c *TokenClaims) IsManager() bool {
	return c.Role == entity.UserRoleManager
}

// TokenService issues and validates session tokens for the switch-user flow.
type TokenService interface {
	// IssueToken creates a signed session token for the user.
	IssueToken(ctx context.Context, user *entity.User) (string, error)

	// ValidateToken parses and verifies a session token.
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}
