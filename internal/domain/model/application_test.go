package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/event"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

func TestNewLoanApplication(t *testing.T) {
	app, err := NewLoanApplication("LOAN-0001", testNow)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ApplicationInitiated, app.Status())

	_, err = NewLoanApplication("", testNow)
	require.Error(t, err)
}

func TestMaterializeStage(t *testing.T) {
	app, err := NewLoanApplication("LOAN-0001", testNow)
	require.NoError(t, err)
	app.CaptureLoanAmount(100000, testNow)

	require.NoError(t, app.MaterializeStage(valueobject.StageVerification, false, testNow))
	assert.Equal(t, valueobject.ApplicationInitiated, app.Status())

	require.NoError(t, app.MaterializeStage(valueobject.StageUnderwriting, true, testNow))
	assert.Equal(t, valueobject.ApplicationVerified, app.Status())

	require.NoError(t, app.MaterializeStage(valueobject.StageSanction, true, testNow))
	assert.Equal(t, valueobject.ApplicationSanctioned, app.Status())
}

func TestMaterializeStageBlocksUnverifiedSanction(t *testing.T) {
	app, err := NewLoanApplication("LOAN-0002", testNow)
	require.NoError(t, err)

	err = app.MaterializeStage(valueobject.StageSanction, false, testNow)
	require.ErrorIs(t, err, ErrVerificationRequired)
	assert.Equal(t, valueobject.ApplicationInitiated, app.Status())
}

func TestRecordApprovalRaisesEvent(t *testing.T) {
	app, err := NewLoanApplication("LOAN-0004", testNow)
	require.NoError(t, err)

	app.RecordApproval(100000, 4637.60, 80, "LOW", testNow)

	evts := app.ClearEvents()
	require.Len(t, evts, 1)
	approved, ok := evts[0].(event.ApplicationApproved)
	require.True(t, ok)
	assert.Equal(t, "loanops.application.approved", approved.EventType())
	assert.Equal(t, float64(100000), approved.LoanAmount)
	assert.InDelta(t, 4637.60, approved.EMI, 0.001)
	assert.Equal(t, 80, approved.RiskScore)
	assert.Equal(t, "LOW", approved.RiskLevel)
}

func TestMaterializeStageRejection(t *testing.T) {
	app, err := NewLoanApplication("LOAN-0003", testNow)
	require.NoError(t, err)

	require.NoError(t, app.MaterializeStage(valueobject.StageRejected, false, testNow))
	assert.Equal(t, valueobject.ApplicationRejected, app.Status())

	evts := app.ClearEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, "loanops.application.rejected", evts[0].EventType())
}
