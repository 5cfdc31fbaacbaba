package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

func TestEvaluateAffordabilityApproves(t *testing.T) {
	result := EvaluateAffordability(LoanTerms{
		LoanAmount:        100000,
		Salary:            50000,
		TenureMonths:      24,
		AnnualRatePercent: 10.5,
		Verified:          true,
	})

	assert.Equal(t, valueobject.DecisionApproved, result.Decision)
	assert.InDelta(t, 4637.6, result.EMI.InexactFloat64(), 0.5)
	assert.InDelta(t, 0.093, result.EMIRatio, 0.001)
	assert.Equal(t, valueobject.RiskLevelLow, result.Risk.Level)
}

func TestEvaluateAffordabilityRejectsHighEMI(t *testing.T) {
	result := EvaluateAffordability(LoanTerms{
		LoanAmount:        500000,
		Salary:            20000,
		TenureMonths:      12,
		AnnualRatePercent: 10.5,
		Verified:          true,
	})

	assert.Equal(t, valueobject.DecisionRejected, result.Decision)
	assert.Greater(t, result.EMIRatio, 0.5)
	assert.Equal(t, "EMI exceeds 50% of monthly salary", result.Reason)
}

func TestEvaluateAffordabilityZeroSalaryRejects(t *testing.T) {
	result := EvaluateAffordability(LoanTerms{
		LoanAmount:        100000,
		Salary:            0,
		TenureMonths:      24,
		AnnualRatePercent: 10.5,
	})

	assert.Equal(t, valueobject.DecisionRejected, result.Decision)
	assert.Equal(t, 1.0, result.EMIRatio)
}

func TestEvaluateAffordabilityNeverPanicsOnDegenerateTerms(t *testing.T) {
	result := EvaluateAffordability(LoanTerms{LoanAmount: -5, Salary: -1, TenureMonths: -3})
	assert.Equal(t, valueobject.DecisionRejected, result.Decision)
	assert.NotEmpty(t, result.Risk.Factors)
}

type mockCreditBureau struct {
	fetchScoreFunc func(ctx context.Context, pan string) (int, error)
}

func (m *mockCreditBureau) FetchScore(ctx context.Context, pan string) (int, error) {
	return m.fetchScoreFunc(ctx, pan)
}

type mockOfferMart struct {
	preApprovedLimitFunc func(ctx context.Context, customerID string) (int64, error)
}

func (m *mockOfferMart) PreApprovedLimit(ctx context.Context, customerID string) (int64, error) {
	return m.preApprovedLimitFunc(ctx, customerID)
}

func newTieredEngine(score int, limit int64) *TieredEngine {
	return NewTieredEngine(
		&mockCreditBureau{fetchScoreFunc: func(context.Context, string) (int, error) { return score, nil }},
		&mockOfferMart{preApprovedLimitFunc: func(context.Context, string) (int64, error) { return limit, nil }},
	)
}

func TestTieredEngineEvaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("low credit score rejects", func(t *testing.T) {
		result, err := newTieredEngine(650, 100000).Evaluate(ctx, "CUST-1", 50000, 40000, decimal.NewFromInt(2400))
		require.NoError(t, err)
		assert.Equal(t, valueobject.DecisionRejected, result.Decision)
		assert.Equal(t, 650, result.CreditScore)
	})

	t.Run("within limit approves instantly", func(t *testing.T) {
		result, err := newTieredEngine(750, 100000).Evaluate(ctx, "CUST-1", 100000, 0, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, valueobject.DecisionApproved, result.Decision)
		assert.Equal(t, "instant", result.ApprovalType)
	})

	t.Run("within twice the limit needs salary proof", func(t *testing.T) {
		result, err := newTieredEngine(750, 100000).Evaluate(ctx, "CUST-1", 150000, 0, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, valueobject.DecisionSalarySlipRequired, result.Decision)
	})

	t.Run("salary verified approval", func(t *testing.T) {
		result, err := newTieredEngine(750, 100000).Evaluate(ctx, "CUST-1", 150000, 40000, decimal.NewFromInt(7000))
		require.NoError(t, err)
		assert.Equal(t, valueobject.DecisionApproved, result.Decision)
		assert.Equal(t, "salary_verified", result.ApprovalType)
	})

	t.Run("emi above half salary rejects", func(t *testing.T) {
		result, err := newTieredEngine(750, 100000).Evaluate(ctx, "CUST-1", 150000, 10000, decimal.NewFromInt(7000))
		require.NoError(t, err)
		assert.Equal(t, valueobject.DecisionRejected, result.Decision)
	})

	t.Run("amount beyond eligibility rejects", func(t *testing.T) {
		result, err := newTieredEngine(750, 100000).Evaluate(ctx, "CUST-1", 500000, 40000, decimal.NewFromInt(20000))
		require.NoError(t, err)
		assert.Equal(t, valueobject.DecisionRejected, result.Decision)
		assert.Equal(t, "Requested loan amount exceeds eligibility limits", result.Reason)
	})

	t.Run("bureau failure surfaces", func(t *testing.T) {
		engine := NewTieredEngine(
			&mockCreditBureau{fetchScoreFunc: func(context.Context, string) (int, error) {
				return 0, errors.New("bureau unavailable")
			}},
			&mockOfferMart{preApprovedLimitFunc: func(context.Context, string) (int64, error) { return 100000, nil }},
		)
		_, err := engine.Evaluate(ctx, "CUST-1", 50000, 40000, decimal.Zero)
		require.Error(t, err)
	})
}
