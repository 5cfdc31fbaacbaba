package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/dto"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

// SessionAdmin exposes the debug session operations: inspect and clear.
type SessionAdmin struct {
	sessions port.SessionRepository
	logger   *slog.Logger
}

func NewSessionAdmin(sessions port.SessionRepository, logger *slog.Logger) *SessionAdmin {
	return &SessionAdmin{sessions: sessions, logger: logger}
}

// Get returns the debug view of a session.
func (uc *SessionAdmin) Get(ctx context.Context, sessionID string) (dto.SessionView, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return dto.SessionView{}, ErrSessionIDRequired
	}

	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return dto.SessionView{}, fmt.Errorf("load session: %w", err)
	}
	return dto.NewSessionView(session), nil
}

// Delete removes a session so the conversation can start fresh.
func (uc *SessionAdmin) Delete(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionIDRequired
	}

	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	uc.logger.Info("session cleared", "session_id", sessionID)
	return nil
}
