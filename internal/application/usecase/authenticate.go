package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/dto"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/auth"
)

// ErrInvalidEmail rejects malformed login emails at the boundary.
var ErrInvalidEmail = errors.New("a valid email address is required")

// Authenticate implements the email-only demo login: the first login for
// an address creates the account, every login issues a fresh JWT.
type Authenticate struct {
	users  port.UserRepository
	tokens *auth.JWTService
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthenticate(users port.UserRepository, tokens *auth.JWTService, logger *slog.Logger, now func() time.Time) *Authenticate {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Authenticate{users: users, tokens: tokens, logger: logger, now: now}
}

// Execute signs the email in, creating the account on first use.
func (uc *Authenticate) Execute(ctx context.Context, email string) (dto.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return dto.AuthResponse{}, ErrInvalidEmail
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			return dto.AuthResponse{}, fmt.Errorf("find user: %w", err)
		}
		user = &port.User{
			ID:        uuid.NewString(),
			Email:     email,
			CreatedAt: uc.now(),
		}
		if err := uc.users.Save(ctx, user); err != nil {
			return dto.AuthResponse{}, fmt.Errorf("create user: %w", err)
		}
		uc.logger.Info("user created", "user_id", user.ID)
	}

	token, err := uc.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("generate token: %w", err)
	}

	return dto.AuthResponse{Token: token, UserID: user.ID, Email: user.Email}, nil
}
