package usecase

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/auth"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*port.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*port.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *port.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*port.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, port.ErrNotFound
	}
	return u, nil
}

func newAuthFixture(t *testing.T) (*Authenticate, *fakeUserRepo, *auth.JWTService) {
	t.Helper()
	users := newFakeUserRepo()
	tokens, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "loanops",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	uc := NewAuthenticate(users, tokens, slog.Default(), fixedNow)
	return uc, users, tokens
}

func TestAuthenticateCreatesUserOnFirstLogin(t *testing.T) {
	uc, users, tokens := newAuthFixture(t)

	resp, err := uc.Execute(context.Background(), "Asha@Example.com")
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", resp.Email, "emails are normalized")
	assert.NotEmpty(t, resp.UserID)
	assert.NotEmpty(t, resp.Token)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)

	stored, err := users.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, stored.ID)
}

func TestAuthenticateReusesExistingUser(t *testing.T) {
	uc, _, _ := newAuthFixture(t)

	first, err := uc.Execute(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), "ravi@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
}

func TestAuthenticateRejectsInvalidEmail(t *testing.T) {
	uc, _, _ := newAuthFixture(t)

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := uc.Execute(context.Background(), email)
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
	}
}
