package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// UnderwritingDecision – immutable value object
// ---------------------------------------------------------------------------

// UnderwritingDecision is the outcome of the underwriting engine for a
// session. The zero value means no decision has been made yet.
type UnderwritingDecision struct {
	value string
}

const (
	decisionApproved           = "approved"
	decisionRejected           = "rejected"
	decisionSalarySlipRequired = "salary_slip_required"
)

var (
	DecisionApproved           = UnderwritingDecision{value: decisionApproved}
	DecisionRejected           = UnderwritingDecision{value: decisionRejected}
	DecisionSalarySlipRequired = UnderwritingDecision{value: decisionSalarySlipRequired}
)

var validDecisions = map[string]UnderwritingDecision{
	decisionApproved:           DecisionApproved,
	decisionRejected:           DecisionRejected,
	decisionSalarySlipRequired: DecisionSalarySlipRequired,
}

// NewUnderwritingDecision creates an UnderwritingDecision from a raw string.
func NewUnderwritingDecision(s string) (UnderwritingDecision, error) {
	v, ok := validDecisions[s]
	if !ok {
		return UnderwritingDecision{}, fmt.Errorf("invalid underwriting decision: %q", s)
	}
	return v, nil
}

// String returns the string representation of the decision.
func (d UnderwritingDecision) String() string { return d.value }

// IsZero returns true when no decision has been recorded.
func (d UnderwritingDecision) IsZero() bool { return d.value == "" }

// Equal returns true when both decisions carry the same value.
func (d UnderwritingDecision) Equal(other UnderwritingDecision) bool {
	return d.value == other.value
}
