package service

import (
	"strings"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/valueobject"
)

// loanIntentKeywords trigger the move from sales to verification. A plain
// case-insensitive substring match keeps routing deterministic.
var loanIntentKeywords = []string{"loan", "lakh", "amount", "borrow", "need", "want", "rupees"}

// HasLoanIntent reports whether a message expresses loan intent.
func HasLoanIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range loanIntentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// NextStage computes the stage the workflow should occupy after receiving
// a message. It performs no mutation and is safe to call repeatedly.
//
// Leaving verification requires both the verified flag and the verified
// status; there is no keyword fallback out of verification. Underwriting
// resolves on its recorded decision. The terminal stages self-loop.
func NextStage(session *model.Session, message string) valueobject.Stage {
	switch session.Stage() {
	case valueobject.StageSales:
		if HasLoanIntent(message) {
			return valueobject.StageVerification
		}
		return valueobject.StageSales

	case valueobject.StageVerification:
		if session.Verified() && session.VerificationStatus().IsVerified() {
			return valueobject.StageUnderwriting
		}
		return valueobject.StageVerification

	case valueobject.StageUnderwriting:
		switch {
		case session.Decision().Equal(valueobject.DecisionApproved):
			return valueobject.StageSanction
		case session.Decision().Equal(valueobject.DecisionRejected):
			return valueobject.StageRejected
		}
		return valueobject.StageUnderwriting

	default:
		// sanction and rejected are terminal.
		return session.Stage()
	}
}
