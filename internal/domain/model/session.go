package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/event"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ---------------------------------------------------------------------------
// Session aggregate root
// ---------------------------------------------------------------------------

// Session is the conversational state for one loan application flow. All
// mutation goes through named operations; nothing outside this package may
// touch the fields directly. The supervisor is the only caller of
// AdvanceStage, and ApplyVerificationGrant is the only operation that can
// flip the verified flag.
type Session struct {
	events.EventCollector

	id                 string
	stage              valueobject.Stage
	messages           []Message
	verified           bool
	verificationStatus valueobject.VerificationStatus
	attentionRequired  bool
	attentionReason    string
	verificationScore  int
	verificationLevel  valueobject.VerificationLevel

	customerName   string
	employmentType string
	loanAmount     int64
	salary         int64
	tenureMonths   int
	interestRate   float64
	emi            decimal.Decimal

	decision    valueobject.UnderwritingDecision
	riskScore   int
	riskLevel   valueobject.RiskLevel
	riskFactors []string

	version   int
	createdAt time.Time
	updatedAt time.Time
}

// Sentinel errors.
var (
	ErrVerificationRequired = errors.New("session is not verified")
	ErrSessionIDRequired    = errors.New("session ID is required")
)

// NewSession creates a fresh session in the sales stage with an empty
// conversation history.
func NewSession(id string, now time.Time) (*Session, error) {
	if id == "" {
		return nil, ErrSessionIDRequired
	}
	return &Session{
		id:                 id,
		stage:              valueobject.StageSales,
		verificationStatus: valueobject.VerificationPending,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ---------------------------------------------------------------------------
// Stage transitions
// ---------------------------------------------------------------------------

// AdvanceStage moves the session to the given stage. The transition must be
// legal per the stage table, and entering underwriting or sanction requires
// the two-field verification guard to hold. Self-transitions are no-ops.
func (s *Session) AdvanceStage(next valueobject.Stage, now time.Time) error {
	if s.stage.Equal(next) {
		return nil
	}
	if !s.stage.CanTransitionTo(next) {
		return valueobject.ErrInvalidStageTransition
	}
	if next.Equal(valueobject.StageUnderwriting) || next.Equal(valueobject.StageSanction) {
		if !s.verified || !s.verificationStatus.IsVerified() {
			return ErrVerificationRequired
		}
	}

	from := s.stage
	s.stage = next
	s.touch(now)
	s.Record(event.NewStageChanged(s.id, from.String(), next.String()))
	return nil
}

// ResetToSales forces the session back to the initial stage. Used by the
// supervisor's failure path only; it bypasses the transition table but keeps
// all accumulated facts.
func (s *Session) ResetToSales(now time.Time) {
	s.stage = valueobject.StageSales
	s.touch(now)
}

// ---------------------------------------------------------------------------
// Conversation history
// ---------------------------------------------------------------------------

// AppendMessage adds a message to the session history. History is append-only
// and unbounded for the life of the session.
func (s *Session) AppendMessage(role Role, content string, now time.Time) {
	s.messages = append(s.messages, Message{Role: role, Content: content})
	s.touch(now)
}

// ---------------------------------------------------------------------------
// Fact capture
// ---------------------------------------------------------------------------

// RecordLoanAmount stores an extracted loan amount.
func (s *Session) RecordLoanAmount(amount int64, now time.Time) {
	s.loanAmount = amount
	s.touch(now)
}

// RecordSalary stores an extracted or verified monthly salary.
func (s *Session) RecordSalary(salary int64, now time.Time) {
	s.salary = salary
	s.touch(now)
}

// RecordLoanTerms stores the terms computed during underwriting.
func (s *Session) RecordLoanTerms(tenureMonths int, interestRate float64, emi decimal.Decimal, now time.Time) {
	s.tenureMonths = tenureMonths
	s.interestRate = interestRate
	s.emi = emi
	s.touch(now)
}

// RecordRiskAssessment stores (or overwrites) the risk engine output.
func (s *Session) RecordRiskAssessment(score int, level valueobject.RiskLevel, factors []string, now time.Time) {
	s.riskScore = score
	s.riskLevel = level
	s.riskFactors = append([]string(nil), factors...)
	s.touch(now)
}

// RecordDecision stores the underwriting decision.
func (s *Session) RecordDecision(d valueobject.UnderwritingDecision, now time.Time) {
	s.decision = d
	s.touch(now)
}

// ---------------------------------------------------------------------------
// Verification
// ---------------------------------------------------------------------------

// VerificationGrant carries the facts established by a successful pass
// through the verification gate.
type VerificationGrant struct {
	CustomerName   string
	Salary         int64
	EmploymentType string
	Score          int
	Level          valueobject.VerificationLevel
}

// ApplyVerificationGrant marks the session verified. This is the only
// operation that sets the verified flag; callers other than the verification
// gate must never construct a grant.
func (s *Session) ApplyVerificationGrant(g VerificationGrant, now time.Time) {
	s.verified = true
	s.verificationStatus = valueobject.VerificationVerified
	s.attentionRequired = false
	s.attentionReason = ""
	s.customerName = g.CustomerName
	if g.Salary > 0 {
		s.salary = g.Salary
	}
	s.employmentType = g.EmploymentType
	s.verificationScore = g.Score
	s.verificationLevel = g.Level
	s.touch(now)
	s.Record(event.NewVerificationCompleted(s.id, g.CustomerName, g.Score, g.Level.String()))
}

// RequireVerificationAttention pauses the flow pending explicit user
// acknowledgment. This is a control state, not a rejection: the session stays
// unverified and remains in the verification stage.
func (s *Session) RequireVerificationAttention(reason string, now time.Time) {
	s.attentionRequired = true
	s.attentionReason = reason
	s.verified = false
	s.verificationStatus = valueobject.VerificationPending
	s.touch(now)
	s.Record(event.NewVerificationAttentionRequired(s.id, reason))
}

// AcknowledgeVerificationAttention clears the attention flag so the user can
// resubmit.
func (s *Session) AcknowledgeVerificationAttention(now time.Time) {
	s.attentionRequired = false
	s.attentionReason = ""
	s.touch(now)
}

func (s *Session) touch(now time.Time) {
	s.version++
	s.updatedAt = now
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s *Session) ID() string                                            { return s.id }
func (s *Session) Stage() valueobject.Stage                              { return s.stage }
func (s *Session) ActiveAgent() string                                   { return s.stage.AgentName() }
func (s *Session) Verified() bool                                        { return s.verified }
func (s *Session) VerificationStatus() valueobject.VerificationStatus    { return s.verificationStatus }
func (s *Session) AttentionRequired() bool                               { return s.attentionRequired }
func (s *Session) AttentionReason() string                               { return s.attentionReason }
func (s *Session) VerificationScore() int                                { return s.verificationScore }
func (s *Session) VerificationLevel() valueobject.VerificationLevel      { return s.verificationLevel }
func (s *Session) CustomerName() string                                  { return s.customerName }
func (s *Session) EmploymentType() string                                { return s.employmentType }
func (s *Session) LoanAmount() int64                                     { return s.loanAmount }
func (s *Session) Salary() int64                                         { return s.salary }
func (s *Session) TenureMonths() int                                     { return s.tenureMonths }
func (s *Session) InterestRate() float64                                 { return s.interestRate }
func (s *Session) EMI() decimal.Decimal                                  { return s.emi }
func (s *Session) Decision() valueobject.UnderwritingDecision            { return s.decision }
func (s *Session) RiskScore() int                                        { return s.riskScore }
func (s *Session) RiskLevel() valueobject.RiskLevel                      { return s.riskLevel }
func (s *Session) Version() int                                          { return s.version }
func (s *Session) CreatedAt() time.Time                                  { return s.createdAt }
func (s *Session) UpdatedAt() time.Time                                  { return s.updatedAt }

// Messages returns a defensive copy of the conversation history.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// RiskFactors returns a defensive copy of the risk factor strings.
func (s *Session) RiskFactors() []string {
	return append([]string(nil), s.riskFactors...)
}
