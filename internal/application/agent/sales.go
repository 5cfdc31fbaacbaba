package agent

import (
	"context"
	"fmt"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/service"
)

// Sales greets the user and captures loan intent. Replies are fixed
// templates; routing to the next stage is the supervisor's job.
type Sales struct{}

func NewSales() *Sales { return &Sales{} }

func (a *Sales) Handle(_ context.Context, session *model.Session, message string) (string, error) {
	if service.HasLoanIntent(message) {
		if amount := session.LoanAmount(); amount > 0 {
			return fmt.Sprintf(
				"Great, you are looking for a loan of Rs. %s. To proceed we first need "+
					"to verify your identity. Please share your full name and PAN details.",
				formatAmount(amount)), nil
		}
		return "Happy to help with your loan! Could you tell me how much you would " +
			"like to borrow? We will then verify your identity and check your eligibility.", nil
	}

	return "Hello! I can help you with personal loans: checking eligibility, EMI " +
		"estimates and instant sanction letters. How much would you like to borrow?", nil
}

// formatAmount renders an amount with Indian digit grouping for replies
// and letters.
func formatAmount(v int64) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	// Last three digits, then groups of two.
	out := s[len(s)-3:]
	s = s[:len(s)-3]
	for len(s) > 2 {
		out = s[len(s)-2:] + "," + out
		s = s[:len(s)-2]
	}
	return s + "," + out
}
