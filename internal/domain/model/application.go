package model

import (
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/event"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is the trackable application record created alongside every
// session. It materializes workflow progress into an externally visible
// status for the audit endpoints.
type LoanApplication struct {
	events.EventCollector

	id         string
	userID     string
	loanAmount int64
	status     valueobject.ApplicationStatus
	createdAt  time.Time
	updatedAt  time.Time
}

// NewLoanApplication creates an application in Initiated status. The ID is
// the session ID so the two records stay correlated.
func NewLoanApplication(id string, now time.Time) (*LoanApplication, error) {
	if id == "" {
		return nil, ErrSessionIDRequired
	}
	return &LoanApplication{
		id:        id,
		status:    valueobject.ApplicationInitiated,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// AssignUser associates an authenticated user with the application.
func (a *LoanApplication) AssignUser(userID string, now time.Time) {
	a.userID = userID
	a.updatedAt = now
}

// CaptureLoanAmount stores the requested amount once extraction finds it.
func (a *LoanApplication) CaptureLoanAmount(amount int64, now time.Time) {
	if amount > 0 {
		a.loanAmount = amount
		a.updatedAt = now
	}
}

// RecordApproval raises the approval event with the terms underwriting
// settled on. The status itself moves through MaterializeStage, which
// carries the application to Sanctioned in the same turn.
func (a *LoanApplication) RecordApproval(loanAmount, emi float64, riskScore int, riskLevel string, now time.Time) {
	a.updatedAt = now
	a.Record(event.NewApplicationApproved(a.id, loanAmount, emi, riskScore, riskLevel))
}

// MaterializeStage maps a workflow stage onto the application status.
// Sanctioned status re-checks the verification invariant: even if the session
// record were corrupted into the sanction stage, an unverified application
// can never surface a sanctioned status.
func (a *LoanApplication) MaterializeStage(stage valueobject.Stage, verified bool, now time.Time) error {
	next := valueobject.StatusForStage(stage)
	if next.Equal(valueobject.ApplicationSanctioned) && !verified {
		return ErrVerificationRequired
	}
	if next.Equal(a.status) {
		return nil
	}

	a.status = next
	a.updatedAt = now

	switch {
	case next.Equal(valueobject.ApplicationRejected):
		a.Record(event.NewApplicationRejected(a.id, "eligibility criteria not met"))
	case next.Equal(valueobject.ApplicationSanctioned):
		a.Record(event.NewApplicationSanctioned(a.id, "", ""))
	}
	return nil
}

// Accessors

func (a *LoanApplication) ID() string                              { return a.id }
func (a *LoanApplication) UserID() string                          { return a.userID }
func (a *LoanApplication) LoanAmount() int64                       { return a.loanAmount }
func (a *LoanApplication) Status() valueobject.ApplicationStatus   { return a.status }
func (a *LoanApplication) CreatedAt() time.Time                    { return a.createdAt }
func (a *LoanApplication) UpdatedAt() time.Time                    { return a.updatedAt }
