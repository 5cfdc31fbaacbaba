package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

// Demo defaults applied when the conversation never captured a figure, so
// the evaluation always completes.
const (
	defaultTenureMonths  = 24
	defaultInterestRate  = 10.5
	defaultSalaryIfUnset = 50000
)

// Defaults supply the loan terms used when the conversation never
// captured them. Zero values fall back to the demo constants.
type Defaults struct {
	TenureMonths      int
	AnnualRatePercent float64
}

func (d Defaults) normalized() Defaults {
	if d.TenureMonths <= 0 {
		d.TenureMonths = defaultTenureMonths
	}
	if d.AnnualRatePercent <= 0 {
		d.AnnualRatePercent = defaultInterestRate
	}
	return d
}

// Underwriting runs the affordability evaluation and records its outcome
// on the session. The decision itself drives the supervisor's same-turn
// transition to sanction or rejected. When a tiered engine is configured
// its decision replaces the affordability one; the EMI and risk
// assessment still come from the affordability evaluation.
type Underwriting struct {
	tiered   *service.TieredEngine
	defaults Defaults
	logger   *slog.Logger
	now      func() time.Time
}

func NewUnderwriting(defaults Defaults, logger *slog.Logger, now func() time.Time) *Underwriting {
	return &Underwriting{defaults: defaults.normalized(), logger: logger, now: defaultClock(now)}
}

func NewTieredUnderwriting(engine *service.TieredEngine, defaults Defaults, logger *slog.Logger, now func() time.Time) *Underwriting {
	return &Underwriting{tiered: engine, defaults: defaults.normalized(), logger: logger, now: defaultClock(now)}
}

func (a *Underwriting) Handle(ctx context.Context, session *model.Session, message string) (string, error) {
	if m := service.ExtractSalary(message); m.Found {
		session.RecordSalary(m.Value, a.now())
	}

	salary := session.Salary()
	if salary <= 0 {
		// Known demo simplification: evaluation proceeds on a placeholder
		// rather than blocking the flow.
		salary = defaultSalaryIfUnset
		session.RecordSalary(salary, a.now())
	}

	tenure := session.TenureMonths()
	if tenure <= 0 {
		tenure = a.defaults.TenureMonths
	}
	rate := session.InterestRate()
	if rate <= 0 {
		rate = a.defaults.AnnualRatePercent
	}

	result := service.EvaluateAffordability(service.LoanTerms{
		LoanAmount:        session.LoanAmount(),
		Salary:            salary,
		TenureMonths:      tenure,
		AnnualRatePercent: rate,
		Verified:          session.Verified(),
	})

	if a.tiered != nil {
		tiered, err := a.tiered.Evaluate(ctx, session.ID(), session.LoanAmount(), salary, result.EMI)
		if err != nil {
			a.logger.Warn("tiered evaluation failed, keeping affordability decision",
				"session_id", session.ID(), "error", err)
		} else {
			result.Decision = tiered.Decision
			if tiered.Reason != "" {
				result.Reason = tiered.Reason
			}
		}
	}

	session.RecordLoanTerms(tenure, rate, result.EMI, a.now())
	session.RecordRiskAssessment(result.Risk.Score, result.Risk.Level, result.Risk.Factors, a.now())
	session.RecordDecision(result.Decision, a.now())

	a.logger.Info("underwriting evaluated",
		"session_id", session.ID(),
		"decision", result.Decision.String(),
		"emi", result.EMI.StringFixed(2),
		"emi_ratio", fmt.Sprintf("%.3f", result.EMIRatio),
		"risk_score", result.Risk.Score,
	)

	var b strings.Builder
	fmt.Fprintf(&b, "Eligibility assessment complete.\n\n")
	fmt.Fprintf(&b, "Requested amount: Rs. %s\n", formatAmount(session.LoanAmount()))
	fmt.Fprintf(&b, "Monthly EMI: Rs. %s over %d months at %.1f%% p.a.\n", result.EMI.StringFixed(2), tenure, rate)
	fmt.Fprintf(&b, "Risk level: %s (score %d)\n", result.Risk.Level.String(), result.Risk.Score)
	for _, f := range result.Risk.Factors {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	if result.Decision.Equal(valueobject.DecisionSalarySlipRequired) {
		b.WriteString("\nPlease share your latest salary slip so we can complete the assessment.\n")
	}
	return b.String(), nil
}
