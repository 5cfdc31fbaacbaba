package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

// maxEMIRatio is the affordability ceiling: the computed installment may
// take at most half of the applicant's monthly salary.
const maxEMIRatio = 0.5

// LoanTerms are the inputs to the affordability evaluation.
type LoanTerms struct {
	LoanAmount        int64
	Salary            int64
	TenureMonths      int
	AnnualRatePercent float64
	Verified          bool
}

// EvaluationResult is the outcome of an affordability evaluation,
// including the computed installment and the risk assessment that
// accompanies every decision.
type EvaluationResult struct {
	Decision valueobject.UnderwritingDecision
	EMI      decimal.Decimal
	EMIRatio float64
	Reason   string
	Risk     RiskAssessment
}

// EvaluateAffordability is the authoritative underwriting rule: compute
// the fixed monthly installment for the requested terms and approve iff
// it takes no more than half the applicant's salary. A zero salary is
// treated as a ratio of 1 and auto-rejects. The function never fails;
// every input produces a decision.
func EvaluateAffordability(terms LoanTerms) EvaluationResult {
	emi := model.MonthlyInstallment(
		decimal.NewFromInt(terms.LoanAmount),
		terms.AnnualRatePercent,
		terms.TenureMonths,
	)

	ratio := 1.0
	if terms.Salary > 0 {
		ratio = emi.InexactFloat64() / float64(terms.Salary)
	}

	result := EvaluationResult{
		EMI:      emi,
		EMIRatio: ratio,
		Risk: AssessRisk(RiskInput{
			LoanAmount:   terms.LoanAmount,
			Salary:       terms.Salary,
			EMI:          emi.InexactFloat64(),
			TenureMonths: terms.TenureMonths,
			Verified:     terms.Verified,
		}),
	}

	if ratio <= maxEMIRatio {
		result.Decision = valueobject.DecisionApproved
		result.Reason = "EMI within 50% of monthly salary"
	} else {
		result.Decision = valueobject.DecisionRejected
		result.Reason = "EMI exceeds 50% of monthly salary"
	}
	return result
}

// TieredEngine is the alternate underwriting policy driven by external
// credit-bureau and offer-mart collaborators. It is kept as a distinct,
// selectable policy and is not merged into the affordability rule.
type TieredEngine struct {
	bureau port.CreditBureauClient
	offers port.OfferMartClient
}

func NewTieredEngine(bureau port.CreditBureauClient, offers port.OfferMartClient) *TieredEngine {
	return &TieredEngine{bureau: bureau, offers: offers}
}

// TieredResult is the outcome of a tiered evaluation.
type TieredResult struct {
	Decision     valueobject.UnderwritingDecision
	ApprovalType string
	CreditScore  int
	Reason       string
}

const minCreditScore = 700

// Evaluate applies the tiered eligibility rules:
//
//  1. reject when the bureau score is below 700
//  2. instant approval when the amount is within the pre-approved limit
//  3. within twice the limit, approve on salary proof with EMI at most
//     half the salary; ask for a salary slip when proof is missing
//  4. reject anything above twice the limit
func (e *TieredEngine) Evaluate(ctx context.Context, customerID string, loanAmount, salary int64, expectedEMI decimal.Decimal) (TieredResult, error) {
	creditScore, err := e.bureau.FetchScore(ctx, customerID)
	if err != nil {
		return TieredResult{}, fmt.Errorf("fetch credit score: %w", err)
	}
	limit, err := e.offers.PreApprovedLimit(ctx, customerID)
	if err != nil {
		return TieredResult{}, fmt.Errorf("fetch pre-approved limit: %w", err)
	}

	if creditScore < minCreditScore {
		return TieredResult{
			Decision:    valueobject.DecisionRejected,
			CreditScore: creditScore,
			Reason:      "Credit score below minimum threshold",
		}, nil
	}

	if loanAmount <= limit {
		return TieredResult{
			Decision:     valueobject.DecisionApproved,
			ApprovalType: "instant",
			CreditScore:  creditScore,
		}, nil
	}

	if loanAmount <= 2*limit {
		if salary <= 0 || expectedEMI.IsZero() {
			return TieredResult{
				Decision:    valueobject.DecisionSalarySlipRequired,
				CreditScore: creditScore,
				Reason:      "Salary slip required for further evaluation",
			}, nil
		}
		if expectedEMI.LessThanOrEqual(decimal.NewFromInt(salary).Mul(decimal.NewFromFloat(maxEMIRatio))) {
			return TieredResult{
				Decision:     valueobject.DecisionApproved,
				ApprovalType: "salary_verified",
				CreditScore:  creditScore,
			}, nil
		}
		return TieredResult{
			Decision:    valueobject.DecisionRejected,
			CreditScore: creditScore,
			Reason:      "EMI exceeds 50% of monthly salary",
		}, nil
	}

	return TieredResult{
		Decision:    valueobject.DecisionRejected,
		CreditScore: creditScore,
		Reason:      "Requested loan amount exceeds eligibility limits",
	}, nil
}
