// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

const tokenIssuer = "expense-claims"

// sessionClaims represents the custom claims for session tokens.
type sessionClaims struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface with HS256
// signed JWTs.
type tokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, expiry time.Duration) adapter.TokenService {
	return &tokenService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// IssueToken creates a signed session token for the user.
func (s *tokenService) IssueToken(_ context.Context, user *entity.User) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token.
func (s *tokenService) ValidateToken(_ context.Context, tokenString string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken,
			domainerror.ErrInvalidToken.Error(), err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken,
			domainerror.ErrInvalidToken.Error(), domainerror.ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken,
			"invalid user ID in token", err)
	}

	return &adapter.TokenClaims{
		UserID:      userID,
		Username:    claims.Username,
		DisplayName: claims.DisplayName,
		Role:        entity.UserRole(claims.Role),
	}, nil
}
