package event

import (
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Session events
// ---------------------------------------------------------------------------

// StageChanged is raised whenever the supervisor moves a session to a new stage.
type StageChanged struct {
	events.BaseEvent
	FromStage string `json:"from_stage"`
	ToStage   string `json:"to_stage"`
}

func NewStageChanged(sessionID, fromStage, toStage string) StageChanged {
	return StageChanged{
		BaseEvent: events.NewBaseEvent("loanops.session.stage_changed", sessionID, "Session"),
		FromStage: fromStage,
		ToStage:   toStage,
	}
}

// VerificationCompleted is raised when the verification gate grants verified
// status to a session.
type VerificationCompleted struct {
	events.BaseEvent
	CustomerName      string `json:"customer_name"`
	VerificationScore int    `json:"verification_score"`
	VerificationLevel string `json:"verification_level"`
}

func NewVerificationCompleted(sessionID, customerName string, score int, level string) VerificationCompleted {
	return VerificationCompleted{
		BaseEvent:         events.NewBaseEvent("loanops.session.verification_completed", sessionID, "Session"),
		CustomerName:      customerName,
		VerificationScore: score,
		VerificationLevel: level,
	}
}

// VerificationAttentionRequired is raised when a KYC submission fails a check
// that pauses the flow (invalid PAN format, failed video KYC).
type VerificationAttentionRequired struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewVerificationAttentionRequired(sessionID, reason string) VerificationAttentionRequired {
	return VerificationAttentionRequired{
		BaseEvent: events.NewBaseEvent("loanops.session.verification_attention_required", sessionID, "Session"),
		Reason:    reason,
	}
}

// ---------------------------------------------------------------------------
// Application events
// ---------------------------------------------------------------------------

// ApplicationApproved is raised when underwriting approves a loan.
type ApplicationApproved struct {
	events.BaseEvent
	LoanAmount float64 `json:"loan_amount"`
	EMI        float64 `json:"emi"`
	RiskScore  int     `json:"risk_score"`
	RiskLevel  string  `json:"risk_level"`
}

func NewApplicationApproved(applicationID string, loanAmount, emi float64, riskScore int, riskLevel string) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:  events.NewBaseEvent("loanops.application.approved", applicationID, "LoanApplication"),
		LoanAmount: loanAmount,
		EMI:        emi,
		RiskScore:  riskScore,
		RiskLevel:  riskLevel,
	}
}

// ApplicationRejected is raised when underwriting rejects a loan.
type ApplicationRejected struct {
	events.BaseEvent
	Reason string `json:"reason"`
}

func NewApplicationRejected(applicationID, reason string) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent: events.NewBaseEvent("loanops.application.rejected", applicationID, "LoanApplication"),
		Reason:    reason,
	}
}

// ApplicationSanctioned is raised when the sanction letter is issued.
type ApplicationSanctioned struct {
	events.BaseEvent
	CustomerName string `json:"customer_name"`
	LetterFile   string `json:"letter_file"`
}

func NewApplicationSanctioned(applicationID, customerName, letterFile string) ApplicationSanctioned {
	return ApplicationSanctioned{
		BaseEvent:    events.NewBaseEvent("loanops.application.sanctioned", applicationID, "LoanApplication"),
		CustomerName: customerName,
		LetterFile:   letterFile,
	}
}
