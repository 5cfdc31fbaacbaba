package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

// UserRepository stores demo user accounts keyed by normalized email.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*port.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*port.User)}
}

func (r *UserRepository) Save(_ context.Context, user *port.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[strings.ToLower(user.Email)] = user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*port.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, port.ErrNotFound
	}
	return user, nil
}
