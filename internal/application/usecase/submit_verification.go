package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/dto"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

// SubmitVerification evaluates a structured KYC submission for a session
// through the verification gate.
type SubmitVerification struct {
	sessions  port.SessionRepository
	publisher port.EventPublisher
	gate      *service.Gate
	logger    *slog.Logger
	now       func() time.Time
}

func NewSubmitVerification(
	sessions port.SessionRepository,
	publisher port.EventPublisher,
	gate *service.Gate,
	logger *slog.Logger,
	now func() time.Time,
) *SubmitVerification {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &SubmitVerification{
		sessions:  sessions,
		publisher: publisher,
		gate:      gate,
		logger:    logger,
		now:       now,
	}
}

// Execute runs the gate and applies its outcome to the session. The
// session moves to the verification stage if it was still in sales so a
// frontend driving verification directly stays consistent.
func (uc *SubmitVerification) Execute(ctx context.Context, sessionID string, sub service.KYCSubmission) (dto.VerificationResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return dto.VerificationResponse{}, ErrSessionIDRequired
	}

	unlock := uc.sessions.Lock(sessionID)
	defer unlock()

	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			return dto.VerificationResponse{}, fmt.Errorf("load session: %w", err)
		}
		session, err = model.NewSession(sessionID, uc.now())
		if err != nil {
			return dto.VerificationResponse{}, err
		}
	}

	if session.Stage().Equal(valueobject.StageSales) {
		if err := session.AdvanceStage(valueobject.StageVerification, uc.now()); err != nil {
			return dto.VerificationResponse{}, fmt.Errorf("enter verification: %w", err)
		}
	}

	outcome := uc.gate.EvaluateStructured(ctx, sub)

	switch outcome.Status {
	case service.GateGranted:
		session.ApplyVerificationGrant(outcome.Grant, uc.now())
		uc.logger.Info("structured verification granted",
			"session_id", sessionID,
			"score", outcome.Grant.Score,
			"level", outcome.Grant.Level.String(),
		)
	case service.GateAttentionRequired:
		session.RequireVerificationAttention(outcome.Reason, uc.now())
		uc.logger.Warn("verification requires attention",
			"session_id", sessionID, "reason", outcome.Reason)
	case service.GatePending:
		uc.logger.Info("verification submission insufficient",
			"session_id", sessionID, "reason", outcome.Reason)
	}

	session.AppendMessage(model.RoleUser, "[verification_submitted]", uc.now())
	session.AppendMessage(model.RoleAssistant, outcome.Reply, uc.now())

	if err := uc.sessions.Save(ctx, session); err != nil {
		return dto.VerificationResponse{}, fmt.Errorf("save session: %w", err)
	}
	uc.publishEvents(ctx, session)

	return dto.VerificationResponse{
		Reply:              outcome.Reply,
		Verified:           session.Verified(),
		VerificationStatus: session.VerificationStatus().String(),
		AttentionRequired:  session.AttentionRequired(),
		Reason:             outcome.Reason,
		Score:              session.VerificationScore(),
		Level:              session.VerificationLevel().String(),
	}, nil
}

func (uc *SubmitVerification) publishEvents(ctx context.Context, session *model.Session) {
	if uc.publisher == nil {
		return
	}
	for _, e := range session.ClearEvents() {
		if err := uc.publisher.Publish(ctx, e); err != nil {
			uc.logger.Warn("publish event failed", "event_type", e.EventType(), "error", err)
		}
	}
}
