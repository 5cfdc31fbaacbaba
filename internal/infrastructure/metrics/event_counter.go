package metrics

import (
	"context"

	"github.com/PrafulK99/CodeRed-LoanOps-AI/internal/domain/port"
	"github.com/PrafulK99/CodeRed-LoanOps-AI/pkg/events"
)

// EventCounter decorates an EventPublisher, counting workflow outcomes
// as their events pass through.
type EventCounter struct {
	next     port.EventPublisher
	workflow *Workflow
}

func NewEventCounter(next port.EventPublisher, workflow *Workflow) *EventCounter {
	return &EventCounter{next: next, workflow: workflow}
}

func (c *EventCounter) Publish(ctx context.Context, event events.DomainEvent) error {
	switch event.EventType() {
	case "loanops.application.approved":
		c.workflow.Decision("approved")
	case "loanops.application.rejected":
		c.workflow.Decision("rejected")
	case "loanops.application.sanctioned":
		c.workflow.LetterRendered()
	case "loanops.session.verification_completed":
		c.workflow.VerificationOutcome("granted")
	case "loanops.session.verification_attention_required":
		c.workflow.VerificationOutcome("attention_required")
	}
	return c.next.Publish(ctx, event)
}
