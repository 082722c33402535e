// Package auth contains the switch-user session use cases.
//
// There is no real authentication in this system: any seeded user may be
// assumed by username. The use case only issues a signed session token so
// the rest of the API can resolve actor identity and role uniformly.
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// SwitchUserInput represents the input for assuming a user identity.
type SwitchUserInput struct {
	Username string
}

// SwitchUserOutput represents the issued session.
type SwitchUserOutput struct {
	Token       string
	UserID      uuid.UUID
	Username    string
	DisplayName string
	Role        entity.UserRole
}

// SwitchUserUseCase issues a session token for a seeded user.
type SwitchUserUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewSwitchUserUseCase creates a new SwitchUserUseCase instance.
func NewSwitchUserUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *SwitchUserUseCase {
	return &SwitchUserUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute resolves the username and issues a token.
func (uc *SwitchUserUseCase) Execute(ctx context.Context, input SwitchUserInput) (*SwitchUserOutput, error) {
	user, err := uc.userRepo.FindByUsername(ctx, input.Username)
	if err != nil || user == nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}
	if !user.IsActive {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserInactive,
			"user is inactive",
			domainerror.ErrUserInactive,
		)
	}

	token, err := uc.tokenService.IssueToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &SwitchUserOutput{
		Token:       token,
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	}, nil
}

// ListUsersUseCase lists the users available for the switch-user flow and
// the manager dashboard filter.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute retrieves all users.
func (uc *ListUsersUseCase) Execute(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
