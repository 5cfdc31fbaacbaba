// Package dto defines the request and response shapes exchanged with the
// presentation layer.
package dto

import (
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
)

// ChatRequest is an incoming chat turn.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the supervisor's public contract: reply, stage and
// active agent are always present, plus the materialized application
// status.
type ChatResponse struct {
	Reply             string `json:"reply"`
	Stage             string `json:"stage"`
	ActiveAgent       string `json:"active_agent"`
	ApplicationStatus string `json:"application_status"`
}

// VerificationRequest carries a structured KYC submission for a session.
type VerificationRequest struct {
	SessionID string                `json:"session_id"`
	Details   service.KYCSubmission `json:"details"`
}

// VerificationResponse reports the gate outcome.
type VerificationResponse struct {
	Reply              string `json:"reply"`
	Verified           bool   `json:"verified"`
	VerificationStatus string `json:"verification_status"`
	AttentionRequired  bool   `json:"attention_required"`
	Reason             string `json:"reason,omitempty"`
	Score              int    `json:"verification_score"`
	Level              string `json:"verification_level,omitempty"`
}

// MessageView is one conversation message.
type MessageView struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionView is the debug view of a session.
type SessionView struct {
	SessionID          string        `json:"session_id"`
	Stage              string        `json:"stage"`
	ActiveAgent        string        `json:"active_agent"`
	Verified           bool          `json:"verified"`
	VerificationStatus string        `json:"verification_status"`
	AttentionRequired  bool          `json:"attention_required"`
	CustomerName       string        `json:"customer_name,omitempty"`
	LoanAmount         int64         `json:"loan_amount,omitempty"`
	Salary             int64         `json:"salary,omitempty"`
	TenureMonths       int           `json:"tenure_months,omitempty"`
	InterestRate       float64       `json:"interest_rate,omitempty"`
	EMI                string        `json:"emi,omitempty"`
	Decision           string        `json:"underwriting_decision,omitempty"`
	RiskScore          int           `json:"risk_score"`
	RiskLevel          string        `json:"risk_level,omitempty"`
	RiskFactors        []string      `json:"risk_factors,omitempty"`
	Messages           []MessageView `json:"messages"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// NewSessionView maps a session aggregate to its debug view.
func NewSessionView(s *model.Session) SessionView {
	msgs := s.Messages()
	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, MessageView{Role: string(m.Role), Content: m.Content})
	}

	view := SessionView{
		SessionID:          s.ID(),
		Stage:              s.Stage().String(),
		ActiveAgent:        s.ActiveAgent(),
		Verified:           s.Verified(),
		VerificationStatus: s.VerificationStatus().String(),
		AttentionRequired:  s.AttentionRequired(),
		CustomerName:       s.CustomerName(),
		LoanAmount:         s.LoanAmount(),
		Salary:             s.Salary(),
		TenureMonths:       s.TenureMonths(),
		InterestRate:       s.InterestRate(),
		Decision:           s.Decision().String(),
		RiskScore:          s.RiskScore(),
		RiskLevel:          s.RiskLevel().String(),
		RiskFactors:        s.RiskFactors(),
		Messages:           views,
		CreatedAt:          s.CreatedAt(),
		UpdatedAt:          s.UpdatedAt(),
	}
	if !s.EMI().IsZero() {
		view.EMI = s.EMI().StringFixed(2)
	}
	return view
}

// ApplicationView is the read model for a loan application.
type ApplicationView struct {
	ApplicationID string    `json:"application_id"`
	UserID        string    `json:"user_id,omitempty"`
	LoanAmount    int64     `json:"loan_amount,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewApplicationView maps an application aggregate to its read model.
func NewApplicationView(a *model.LoanApplication) ApplicationView {
	return ApplicationView{
		ApplicationID: a.ID(),
		UserID:        a.UserID(),
		LoanAmount:    a.LoanAmount(),
		Status:        a.Status().String(),
		CreatedAt:     a.CreatedAt(),
	}
}

// ApplicationListResponse wraps the applications listing.
type ApplicationListResponse struct {
	Total        int               `json:"total"`
	Applications []ApplicationView `json:"applications"`
}

// EmailAuthRequest is an email-only signup/login request.
type EmailAuthRequest struct {
	Email string `json:"email"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// StageInfo describes one workflow stage for frontend visualization.
type StageInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Agent       string `json:"agent"`
	Description string `json:"description"`
}

// StagesResponse lists the workflow stages in order.
type StagesResponse struct {
	Stages []StageInfo `json:"stages"`
	Flow   string      `json:"flow"`
}
