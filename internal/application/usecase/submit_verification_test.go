package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

func newVerificationFixture() (*SubmitVerification, *fakeSessionRepo, *capturingPublisher) {
	logger := slog.Default()
	sessions := newFakeSessionRepo()
	publisher := &capturingPublisher{}
	uc := NewSubmitVerification(sessions, publisher, service.NewGate(nil, logger), logger, fixedNow)
	return uc, sessions, publisher
}

func structuredSubmission() service.KYCSubmission {
	return service.KYCSubmission{
		Personal:   service.PersonalDetails{FullName: "Asha Rao"},
		Identity:   service.IdentityDetails{PAN: "ABCDE1234F"},
		Employment: service.EmploymentDetails{MonthlyIncome: "42000", EmploymentType: "salaried"},
		Documents:  service.DocumentDetails{Uploaded: []string{"salary_slip.pdf"}},
	}
}

func TestSubmitVerificationGrants(t *testing.T) {
	uc, sessions, publisher := newVerificationFixture()

	resp, err := uc.Execute(context.Background(), "LOAN-0100", structuredSubmission())
	require.NoError(t, err)

	assert.True(t, resp.Verified)
	assert.Equal(t, "verified", resp.VerificationStatus)
	assert.Equal(t, 60, resp.Score)
	assert.Equal(t, "STANDARD", resp.Level)
	assert.False(t, resp.AttentionRequired)

	session, err := sessions.FindByID(context.Background(), "LOAN-0100")
	require.NoError(t, err)
	assert.True(t, session.Verified())
	assert.Equal(t, valueobject.StageVerification, session.Stage())
	assert.Equal(t, "Asha Rao", session.CustomerName())
	assert.Equal(t, int64(42000), session.Salary())

	assert.Contains(t, publisher.eventTypes(), "loanops.session.verification_completed")
}

func TestSubmitVerificationInvalidPANPausesFlow(t *testing.T) {
	uc, sessions, publisher := newVerificationFixture()

	sub := structuredSubmission()
	sub.Identity.PAN = "AB1234"

	resp, err := uc.Execute(context.Background(), "LOAN-0101", sub)
	require.NoError(t, err)

	assert.False(t, resp.Verified)
	assert.True(t, resp.AttentionRequired)
	assert.Equal(t, "invalid PAN format", resp.Reason)
	assert.Equal(t, "pending", resp.VerificationStatus)

	session, err := sessions.FindByID(context.Background(), "LOAN-0101")
	require.NoError(t, err)
	assert.False(t, session.Verified())
	assert.Equal(t, valueobject.StageVerification, session.Stage())

	assert.Contains(t, publisher.eventTypes(), "loanops.session.verification_attention_required")
}

func TestSubmitVerificationMissingNameStaysPending(t *testing.T) {
	uc, _, _ := newVerificationFixture()

	sub := structuredSubmission()
	sub.Personal.FullName = ""

	resp, err := uc.Execute(context.Background(), "LOAN-0102", sub)
	require.NoError(t, err)

	assert.False(t, resp.Verified)
	assert.False(t, resp.AttentionRequired)
	assert.NotEmpty(t, resp.Reply)
}

func TestSubmitVerificationRequiresSessionID(t *testing.T) {
	uc, _, _ := newVerificationFixture()

	_, err := uc.Execute(context.Background(), "  ", structuredSubmission())
	require.ErrorIs(t, err, ErrSessionIDRequired)
}
