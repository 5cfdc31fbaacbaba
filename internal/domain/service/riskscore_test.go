package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

func TestAssessRiskFavorableProfile(t *testing.T) {
	in := RiskInput{
		LoanAmount:   100000,
		Salary:       50000,
		EMI:          4637.6,
		TenureMonths: 24,
		Verified:     true,
	}

	out := AssessRisk(in)

	assert.Equal(t, 25, out.Score)
	assert.Equal(t, valueobject.RiskLevelLow, out.Level)
	assert.Equal(t, []string{
		"✓ EMI-to-income ratio is excellent (under 30%)",
		"✓ Loan amount is conservative relative to income",
		"✓ Standard loan tenure",
		"✓ Identity verification complete",
	}, out.Factors)
}

func TestAssessRiskUnfavorableProfile(t *testing.T) {
	out := AssessRisk(RiskInput{
		LoanAmount:   500000,
		Salary:       20000,
		EMI:          44073,
		TenureMonths: 48,
		Verified:     false,
	})

	// 40 + 30 + 20 + 10: every component at its cap.
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, valueobject.RiskLevelHigh, out.Level)
	assert.Equal(t, []string{
		"⚠ EMI-to-income ratio exceeds recommended limits",
		"⚠ Loan amount is high relative to income",
		"⚠ Long tenure increases repayment risk",
		"⚠ Identity verification pending",
	}, out.Factors)
}

func TestAssessRiskClampsInputs(t *testing.T) {
	// Zero and negative inputs must not panic or divide by zero.
	out := AssessRisk(RiskInput{LoanAmount: 0, Salary: 0, EMI: 0, TenureMonths: 0})

	assert.GreaterOrEqual(t, out.Score, 0)
	assert.LessOrEqual(t, out.Score, 100)
	assert.Len(t, out.Factors, 4)

	// Zero tenure scores as the 12-month bucket.
	withDefault := AssessRisk(RiskInput{LoanAmount: 100000, Salary: 50000, EMI: 9000, TenureMonths: 0, Verified: true})
	explicit := AssessRisk(RiskInput{LoanAmount: 100000, Salary: 50000, EMI: 9000, TenureMonths: 12, Verified: true})
	assert.Equal(t, explicit, withDefault)
}

func TestAssessRiskIsDeterministic(t *testing.T) {
	in := RiskInput{LoanAmount: 300000, Salary: 40000, EMI: 14000, TenureMonths: 36, Verified: true}

	first := AssessRisk(in)
	second := AssessRisk(in)

	assert.Equal(t, first, second)
}

func TestAssessRiskLevelBoundaries(t *testing.T) {
	// 10 + 15 + 15 + 0 = 40, the top of the Low band.
	low := AssessRisk(RiskInput{LoanAmount: 200000, Salary: 40000, EMI: 10000, TenureMonths: 36, Verified: true})
	assert.Equal(t, 40, low.Score)
	assert.Equal(t, valueobject.RiskLevelLow, low.Level)

	// 30 + 15 + 15 + 10 = 70, the top of the Medium band.
	medium := AssessRisk(RiskInput{LoanAmount: 200000, Salary: 40000, EMI: 18000, TenureMonths: 36, Verified: false})
	assert.Equal(t, 70, medium.Score)
	assert.Equal(t, valueobject.RiskLevelMedium, medium.Level)
}
