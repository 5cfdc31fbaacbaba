package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("LOAN-0001", testNow)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, valueobject.StageSales, s.Stage())
	assert.Equal(t, "SalesAgent", s.ActiveAgent())
	assert.False(t, s.Verified())
	assert.Equal(t, valueobject.VerificationPending, s.VerificationStatus())
	assert.Empty(t, s.Messages())
	assert.Equal(t, int64(0), s.LoanAmount())

	_, err := NewSession("", testNow)
	require.ErrorIs(t, err, ErrSessionIDRequired)
}

func TestAdvanceStageHappyPath(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.AdvanceStage(valueobject.StageVerification, testNow))
	assert.Equal(t, valueobject.StageVerification, s.Stage())

	s.ApplyVerificationGrant(VerificationGrant{CustomerName: "Asha Rao", Salary: 50000}, testNow)

	require.NoError(t, s.AdvanceStage(valueobject.StageUnderwriting, testNow))
	require.NoError(t, s.AdvanceStage(valueobject.StageSanction, testNow))
	assert.True(t, s.Stage().IsTerminal())
}

func TestAdvanceStageRejectsSkips(t *testing.T) {
	s := newTestSession(t)

	err := s.AdvanceStage(valueobject.StageUnderwriting, testNow)
	require.ErrorIs(t, err, valueobject.ErrInvalidStageTransition)

	err = s.AdvanceStage(valueobject.StageSanction, testNow)
	require.ErrorIs(t, err, valueobject.ErrInvalidStageTransition)

	assert.Equal(t, valueobject.StageSales, s.Stage())
}

func TestAdvanceStageEnforcesVerificationGuard(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AdvanceStage(valueobject.StageVerification, testNow))

	// Both guard fields are still pending: underwriting entry must fail.
	err := s.AdvanceStage(valueobject.StageUnderwriting, testNow)
	require.ErrorIs(t, err, ErrVerificationRequired)
	assert.Equal(t, valueobject.StageVerification, s.Stage())
}

func TestVerifiedOnlyViaGrant(t *testing.T) {
	s := newTestSession(t)

	s.ApplyVerificationGrant(VerificationGrant{
		CustomerName:   "Asha Rao",
		Salary:         42000,
		EmploymentType: "salaried",
		Score:          60,
		Level:          valueobject.VerificationLevelStandard,
	}, testNow)

	assert.True(t, s.Verified())
	assert.True(t, s.VerificationStatus().IsVerified())
	assert.Equal(t, "Asha Rao", s.CustomerName())
	assert.Equal(t, int64(42000), s.Salary())
	assert.Equal(t, 60, s.VerificationScore())
	assert.Equal(t, valueobject.VerificationLevelStandard, s.VerificationLevel())
}

func TestGrantWithoutSalaryKeepsExisting(t *testing.T) {
	s := newTestSession(t)
	s.RecordSalary(30000, testNow)

	s.ApplyVerificationGrant(VerificationGrant{CustomerName: "Asha Rao"}, testNow)
	assert.Equal(t, int64(30000), s.Salary())
}

func TestAttentionRequiredIsNotVerification(t *testing.T) {
	s := newTestSession(t)

	s.RequireVerificationAttention("invalid PAN format", testNow)

	assert.True(t, s.AttentionRequired())
	assert.Equal(t, "invalid PAN format", s.AttentionReason())
	assert.False(t, s.Verified())
	assert.Equal(t, valueobject.VerificationPending, s.VerificationStatus())

	s.AcknowledgeVerificationAttention(testNow)
	assert.False(t, s.AttentionRequired())
	assert.False(t, s.Verified(), "acknowledgment must not grant verification")
}

func TestAppendMessageIsAppendOnly(t *testing.T) {
	s := newTestSession(t)

	s.AppendMessage(RoleUser, "I need a loan", testNow)
	s.AppendMessage(RoleAssistant, "Sure, how much?", testNow)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)

	// Mutating the returned slice must not affect the session.
	msgs[0].Content = "tampered"
	assert.Equal(t, "I need a loan", s.Messages()[0].Content)
}

func TestResetToSalesKeepsFacts(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AdvanceStage(valueobject.StageVerification, testNow))
	s.RecordLoanAmount(200000, testNow)

	s.ResetToSales(testNow)

	assert.Equal(t, valueobject.StageSales, s.Stage())
	assert.Equal(t, int64(200000), s.LoanAmount())
}

func TestStageChangeRecordsEvent(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AdvanceStage(valueobject.StageVerification, testNow))

	evts := s.ClearEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, "loanops.session.stage_changed", evts[0].EventType())
	assert.Equal(t, "LOAN-0001", evts[0].AggregateID())
}
