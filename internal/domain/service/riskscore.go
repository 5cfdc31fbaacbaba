package service

import (
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

// RiskInput carries the loan terms scored by AssessRisk.
type RiskInput struct {
	LoanAmount   int64
	Salary       int64
	EMI          float64
	TenureMonths int
	Verified     bool
}

// RiskAssessment is a 0-100 advisory score with display factors. It never
// gates approval on its own.
type RiskAssessment struct {
	Score   int
	Level   valueobject.RiskLevel
	Factors []string
}

// AssessRisk computes a weighted risk score from loan terms. Higher is
// riskier. Inputs are clamped so the function never divides by zero:
// non-positive amounts become 1 and a non-positive tenure becomes 12
// months. The factor strings are emitted in a fixed order (EMI ratio,
// loan ratio, tenure, verification) because consumers display them
// verbatim.
func AssessRisk(in RiskInput) RiskAssessment {
	salary := clampPositive(in.Salary)
	loanAmount := clampPositive(in.LoanAmount)
	emi := in.EMI
	if emi <= 0 {
		emi = 1
	}
	tenure := in.TenureMonths
	if tenure <= 0 {
		tenure = 12
	}

	score := 0
	factors := make([]string, 0, 4)

	// EMI-to-income ratio, 40 points max.
	emiRatio := emi / float64(salary)
	switch {
	case emiRatio <= 0.3:
		score += 10
		factors = append(factors, "✓ EMI-to-income ratio is excellent (under 30%)")
	case emiRatio <= 0.4:
		score += 20
		factors = append(factors, "✓ EMI-to-income ratio within acceptable limits")
	case emiRatio <= 0.5:
		score += 30
		factors = append(factors, "⚠ EMI-to-income ratio approaching threshold")
	default:
		score += 40
		factors = append(factors, "⚠ EMI-to-income ratio exceeds recommended limits")
	}

	// Loan-to-salary ratio, 30 points max.
	loanRatio := float64(loanAmount) / float64(salary)
	switch {
	case loanRatio <= 3:
		score += 5
		factors = append(factors, "✓ Loan amount is conservative relative to income")
	case loanRatio <= 6:
		score += 15
		factors = append(factors, "✓ Loan amount is moderate relative to income")
	case loanRatio <= 10:
		score += 25
		factors = append(factors, "⚠ Loan amount is elevated relative to income")
	default:
		score += 30
		factors = append(factors, "⚠ Loan amount is high relative to income")
	}

	// Tenure, 20 points max.
	switch {
	case tenure <= 12:
		score += 5
		factors = append(factors, "✓ Short loan tenure reduces overall exposure")
	case tenure <= 24:
		score += 10
		factors = append(factors, "✓ Standard loan tenure")
	case tenure <= 36:
		score += 15
		factors = append(factors, "⚠ Extended tenure increases interest burden")
	default:
		score += 20
		factors = append(factors, "⚠ Long tenure increases repayment risk")
	}

	// Verification status, 10 points max.
	if in.Verified {
		factors = append(factors, "✓ Identity verification complete")
	} else {
		score += 10
		factors = append(factors, "⚠ Identity verification pending")
	}

	return RiskAssessment{
		Score:   score,
		Level:   valueobject.RiskLevelForScore(score),
		Factors: factors,
	}
}

func clampPositive(v int64) int64 {
	if v <= 0 {
		return 1
	}
	return v
}
