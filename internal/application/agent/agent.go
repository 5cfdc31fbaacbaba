// Package agent implements the per-stage message handlers driven by the
// supervisor. Agents mutate the session through its named operations and
// return the reply text for the turn.
package agent

import (
	"context"
	"time"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/model"
)

// Agent handles one workflow stage.
type Agent interface {
	Handle(ctx context.Context, session *model.Session, message string) (string, error)
}

func defaultClock(now func() time.Time) func() time.Time {
	if now == nil {
		return func() time.Time { return time.Now().UTC() }
	}
	return now
}

// RejectionReply is the fixed reply for the terminal rejected stage.
const RejectionReply = "We regret to inform you that your loan application could not be " +
	"approved at this time based on our eligibility criteria. Please contact our " +
	"support team for more information."

// TerminalReply acknowledges messages arriving after the workflow has
// finished.
const TerminalReply = "Thank you for your interest. Is there anything else I can help you with?"
