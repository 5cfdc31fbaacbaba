package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
)

// Verification handles identity checks during the verification stage.
// Free-text messages go through the legacy marker rule; structured KYC
// submissions arrive via the dedicated verify endpoint instead.
type Verification struct {
	gate   *service.Gate
	logger *slog.Logger
	now    func() time.Time
}

func NewVerification(gate *service.Gate, logger *slog.Logger, now func() time.Time) *Verification {
	return &Verification{gate: gate, logger: logger, now: defaultClock(now)}
}

func (a *Verification) Handle(_ context.Context, session *model.Session, message string) (string, error) {
	if session.AttentionRequired() {
		// The user is acknowledging a paused verification; clear the
		// flag and ask for a fresh submission.
		session.AcknowledgeVerificationAttention(a.now())
		return "Thanks for confirming. Please resubmit your verification details: " +
			"full name, PAN number and monthly salary.", nil
	}

	outcome := a.gate.EvaluateLegacy(message)
	switch outcome.Status {
	case service.GateGranted:
		session.ApplyVerificationGrant(outcome.Grant, a.now())
		a.logger.Info("identity verified",
			"session_id", session.ID(),
			"customer", outcome.Grant.CustomerName,
		)
	case service.GatePending:
		a.logger.Debug("verification pending", "session_id", session.ID(), "reason", outcome.Reason)
	}
	return outcome.Reply, nil
}
