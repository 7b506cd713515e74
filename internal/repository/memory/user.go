package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/congeflow/leave-backend-go/internal/domain/user"
)

// userRepositoryImpl keeps the demo accounts of the mock identity provider in memory.
type userRepositoryImpl struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string
}

func NewUserRepository() user.UserRepository {
	return &userRepositoryImpl{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

// GetByEmail implements user.UserRepository. Emails are matched case-insensitively.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.byID[id], nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if !newUser.Role.IsValid() {
		return user.User{}, user.ErrInvalidRole
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(newUser.Email)
	if _, exists := r.byEmail[email]; exists {
		return user.User{}, user.ErrUserEmailExists
	}

	r.byID[newUser.ID] = newUser
	r.byEmail[email] = newUser.ID
	return newUser, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]user.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
