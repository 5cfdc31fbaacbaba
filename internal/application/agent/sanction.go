package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
)

const approvedFallback = "Congratulations! Your loan application has been approved. " +
	"Your income meets our eligibility criteria and the requested EMI is within " +
	"acceptable limits."

// Sanction finalizes an approved loan: it renders the sanction letter and
// composes the approval reply. Both collaborators are fail-safe; letter or
// explainer trouble degrades the reply, never the flow.
type Sanction struct {
	letters   port.LetterRenderer
	explainer port.DecisionExplainer
	logger    *slog.Logger
}

func NewSanction(letters port.LetterRenderer, explainer port.DecisionExplainer, logger *slog.Logger) *Sanction {
	return &Sanction{letters: letters, explainer: explainer, logger: logger}
}

func (a *Sanction) Handle(ctx context.Context, session *model.Session, _ string) (string, error) {
	explanation := approvedFallback
	if a.explainer != nil {
		text, err := a.explainer.Explain(ctx, port.ExplainRequest{
			Decision:     "APPROVED",
			LoanAmount:   session.LoanAmount(),
			Salary:       session.Salary(),
			EMI:          session.EMI(),
			RiskScore:    session.RiskScore(),
			RiskLevel:    session.RiskLevel().String(),
			RiskFactors:  session.RiskFactors(),
			CustomerName: session.CustomerName(),
		})
		if err != nil {
			a.logger.Warn("decision explainer failed, using fallback", "session_id", session.ID(), "error", err)
		} else if strings.TrimSpace(text) != "" {
			explanation = text
		}
	}

	var b strings.Builder
	b.WriteString(explanation)
	b.WriteString("\n\nLoan Summary:\n")
	fmt.Fprintf(&b, "- Amount: Rs. %s\n", formatAmount(session.LoanAmount()))
	fmt.Fprintf(&b, "- Interest Rate: %.1f%% p.a.\n", session.InterestRate())
	fmt.Fprintf(&b, "- Tenure: %d months\n", session.TenureMonths())
	fmt.Fprintf(&b, "- Monthly EMI: Rs. %s\n", session.EMI().StringFixed(2))

	var letterFile string
	if a.letters != nil {
		letter, err := a.letters.RenderSanctionLetter(ctx, session)
		if err != nil {
			a.logger.Error("sanction letter generation failed", "session_id", session.ID(), "error", err)
		} else {
			letterFile = letter.FileName
		}
	}
	if letterFile == "" {
		b.WriteString("\nThere was an issue generating your sanction letter; our team " +
			"will send it to you shortly via email.")
	} else {
		fmt.Fprintf(&b, "\nYour sanction letter has been generated: %s", letterFile)
	}

	return b.String(), nil
}
