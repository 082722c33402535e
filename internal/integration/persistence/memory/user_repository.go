package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/expense-claims/backend/internal/application/adapter"
	"github.com/expense-claims/backend/internal/domain/entity"
	domainerror "github.com/expense-claims/backend/internal/domain/error"
)

// userRepository implements adapter.UserRepository over a locked map.
type userRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

// NewUserRepository creates an in-memory user repository holding the given users.
func NewUserRepository(users ...*entity.User) adapter.UserRepository {
	repo := &userRepository{
		users: make(map[uuid.UUID]*entity.User, len(users)),
	}
	for _, u := range users {
		repo.users[u.ID] = u.Clone()
	}
	return repo
}

// FindByID retrieves a user by its ID.
func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user.Clone(), nil
}

// FindByUsername retrieves a user by username.
func (r *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			return user.Clone(), nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

// FindAll retrieves all users sorted by display name.
func (r *userRepository) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName < out[j].DisplayName
	})
	return out, nil
}
