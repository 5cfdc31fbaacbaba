// Package usecase wires the domain services, agents and ports into the
// operations exposed by the presentation layer.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/agent"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/application/dto"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

// Boundary validation errors, the only hard failures of the chat path.
var (
	ErrSessionIDRequired = errors.New("session_id is required")
	ErrMessageRequired   = errors.New("message is required")
)

// safeReply is returned whenever the pipeline fails internally. Errors are
// swallowed at the top after logging; the session restarts at sales.
const safeReply = "I apologize, but I encountered an issue. Let me help you with " +
	"your loan application. What type of loan are you interested in?"

// Agents groups the per-stage handlers the supervisor routes to.
type Agents struct {
	Sales        agent.Agent
	Verification agent.Agent
	Underwriting agent.Agent
	Sanction     agent.Agent
}

// ProcessMessage is the supervisor: it resolves the next stage for an
// incoming message, runs that stage's agent and applies the same-turn
// cascade when underwriting decides.
type ProcessMessage struct {
	sessions     port.SessionRepository
	applications port.ApplicationRepository
	publisher    port.EventPublisher
	agents       Agents
	logger       *slog.Logger
	now          func() time.Time
}

func NewProcessMessage(
	sessions port.SessionRepository,
	applications port.ApplicationRepository,
	publisher port.EventPublisher,
	agents Agents,
	logger *slog.Logger,
	now func() time.Time,
) *ProcessMessage {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &ProcessMessage{
		sessions:     sessions,
		applications: applications,
		publisher:    publisher,
		agents:       agents,
		logger:       logger,
		now:          now,
	}
}

// Execute processes one chat turn. It fails only on boundary validation;
// every internal fault is logged and converted into the safe reply with
// the session reset to sales.
func (uc *ProcessMessage) Execute(ctx context.Context, sessionID, message string) (dto.ChatResponse, error) {
	sessionID = strings.TrimSpace(sessionID)
	message = strings.TrimSpace(message)
	if sessionID == "" {
		return dto.ChatResponse{}, ErrSessionIDRequired
	}
	if message == "" {
		return dto.ChatResponse{}, ErrMessageRequired
	}

	unlock := uc.sessions.Lock(sessionID)
	defer unlock()

	session, app, err := uc.loadOrCreate(ctx, sessionID)
	if err != nil {
		return dto.ChatResponse{}, err
	}

	session.AppendMessage(model.RoleUser, message, uc.now())

	resp := uc.run(ctx, session, app, message)

	session.AppendMessage(model.RoleAssistant, resp.Reply, uc.now())

	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Error("save session failed", "session_id", sessionID, "error", err)
	}
	if err := uc.applications.Save(ctx, app); err != nil {
		uc.logger.Error("save application failed", "application_id", app.ID(), "error", err)
	}
	uc.publish(ctx, session.ClearEvents())
	uc.publish(ctx, app.ClearEvents())

	return resp, nil
}

// run executes the supervisor pipeline with top-level fault isolation.
func (uc *ProcessMessage) run(ctx context.Context, session *model.Session, app *model.LoanApplication, message string) (resp dto.ChatResponse) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("supervisor panic, resetting session",
				"session_id", session.ID(), "panic", fmt.Sprintf("%v", r))
			session.ResetToSales(uc.now())
			resp = uc.safeResponse(session)
		}
	}()

	reply, err := uc.step(ctx, session, app, message)
	if err != nil {
		uc.logger.Error("supervisor pipeline failed, resetting session",
			"session_id", session.ID(), "error", err)
		session.ResetToSales(uc.now())
		return uc.safeResponse(session)
	}

	return dto.ChatResponse{
		Reply:             reply,
		Stage:             session.Stage().String(),
		ActiveAgent:       session.ActiveAgent(),
		ApplicationStatus: app.Status().String(),
	}
}

// step runs one routing-and-handle cycle, plus the cascade hop when
// underwriting decided within this turn.
func (uc *ProcessMessage) step(ctx context.Context, session *model.Session, app *model.LoanApplication, message string) (string, error) {
	next := service.NextStage(session, message)

	if !next.Equal(session.Stage()) {
		uc.applyTransitionExtraction(session, app, next, message)
		if err := session.AdvanceStage(next, uc.now()); err != nil {
			return "", fmt.Errorf("advance to %s: %w", next.String(), err)
		}
	}

	reply, err := uc.handle(ctx, session, next, message)
	if err != nil {
		return "", fmt.Errorf("%s handler: %w", next.String(), err)
	}

	// Same-turn cascade: a decision made while entering underwriting
	// resolves to sanction or rejected within this request.
	if next.Equal(valueobject.StageUnderwriting) && !session.Decision().IsZero() {
		final := service.NextStage(session, message)
		if !final.Equal(next) {
			if err := session.AdvanceStage(final, uc.now()); err != nil {
				return "", fmt.Errorf("cascade to %s: %w", final.String(), err)
			}
			switch {
			case final.Equal(valueobject.StageSanction):
				app.RecordApproval(float64(session.LoanAmount()), session.EMI().InexactFloat64(),
					session.RiskScore(), session.RiskLevel().String(), uc.now())
				reply, err = uc.agents.Sanction.Handle(ctx, session, message)
				if err != nil {
					return "", fmt.Errorf("sanction handler: %w", err)
				}
			case final.Equal(valueobject.StageRejected):
				reply = agent.RejectionReply
			}
		}
	}

	if err := app.MaterializeStage(session.Stage(), session.Verified(), uc.now()); err != nil {
		return "", fmt.Errorf("materialize application status: %w", err)
	}
	if amount := session.LoanAmount(); amount > 0 && amount != app.LoanAmount() {
		app.CaptureLoanAmount(amount, uc.now())
	}

	return reply, nil
}

// applyTransitionExtraction captures the loan amount when intent moves
// sales into verification. Salary is not extracted here: the underwriting
// agent reads it from the same message as part of its evaluation.
func (uc *ProcessMessage) applyTransitionExtraction(session *model.Session, app *model.LoanApplication, next valueobject.Stage, message string) {
	if session.Stage().Equal(valueobject.StageSales) && next.Equal(valueobject.StageVerification) {
		if m := service.ExtractLoanAmount(message); m.Found {
			session.RecordLoanAmount(m.Value, uc.now())
			app.CaptureLoanAmount(m.Value, uc.now())
		}
	}
}

func (uc *ProcessMessage) handle(ctx context.Context, session *model.Session, stage valueobject.Stage, message string) (string, error) {
	switch {
	case stage.Equal(valueobject.StageSales):
		return uc.agents.Sales.Handle(ctx, session, message)
	case stage.Equal(valueobject.StageVerification):
		return uc.agents.Verification.Handle(ctx, session, message)
	case stage.Equal(valueobject.StageUnderwriting):
		return uc.agents.Underwriting.Handle(ctx, session, message)
	case stage.Equal(valueobject.StageSanction):
		return uc.agents.Sanction.Handle(ctx, session, message)
	default:
		// Rejected has no agent of its own.
		return agent.TerminalReply, nil
	}
}

func (uc *ProcessMessage) loadOrCreate(ctx context.Context, sessionID string) (*model.Session, *model.LoanApplication, error) {
	session, err := uc.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			return nil, nil, fmt.Errorf("load session: %w", err)
		}
		session, err = model.NewSession(sessionID, uc.now())
		if err != nil {
			return nil, nil, err
		}
		uc.logger.Info("session created", "session_id", sessionID)
	}

	app, err := uc.applications.FindByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			return nil, nil, fmt.Errorf("load application: %w", err)
		}
		app, err = model.NewLoanApplication(sessionID, uc.now())
		if err != nil {
			return nil, nil, err
		}
		uc.logger.Info("application created", "application_id", sessionID)
	}

	return session, app, nil
}

func (uc *ProcessMessage) publish(ctx context.Context, evts []events.DomainEvent) {
	if uc.publisher == nil {
		return
	}
	for _, e := range evts {
		if err := uc.publisher.Publish(ctx, e); err != nil {
			uc.logger.Warn("publish event failed", "event_type", e.EventType(), "error", err)
		}
	}
}

func (uc *ProcessMessage) safeResponse(session *model.Session) dto.ChatResponse {
	return dto.ChatResponse{
		Reply:             safeReply,
		Stage:             session.Stage().String(),
		ActiveAgent:       session.ActiveAgent(),
		ApplicationStatus: valueobject.ApplicationInitiated.String(),
	}
}
