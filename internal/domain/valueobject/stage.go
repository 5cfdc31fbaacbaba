package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Stage – immutable value object
// ---------------------------------------------------------------------------

// Stage represents the workflow phase a conversation is in. It determines
// which agent handles the next message.
type Stage struct {
	value string
}

const (
	stageSales        = "sales"
	stageVerification = "verification"
	stageUnderwriting = "underwriting"
	stageSanction     = "sanction"
	stageRejected     = "rejected"
)

var (
	StageSales        = Stage{value: stageSales}
	StageVerification = Stage{value: stageVerification}
	StageUnderwriting = Stage{value: stageUnderwriting}
	StageSanction     = Stage{value: stageSanction}
	StageRejected     = Stage{value: stageRejected}
)

var validStages = map[string]Stage{
	stageSales:        StageSales,
	stageVerification: StageVerification,
	stageUnderwriting: StageUnderwriting,
	stageSanction:     StageSanction,
	stageRejected:     StageRejected,
}

// allowedTransitions is the monotonic sales -> verification -> underwriting ->
// sanction|rejected flow. Staying in place is always allowed; nothing else is.
var allowedTransitions = map[string][]string{
	stageSales:        {stageVerification},
	stageVerification: {stageUnderwriting},
	stageUnderwriting: {stageSanction, stageRejected},
	stageSanction:     {},
	stageRejected:     {},
}

// NewStage creates a Stage from a raw string.
func NewStage(s string) (Stage, error) {
	v, ok := validStages[s]
	if !ok {
		return Stage{}, fmt.Errorf("invalid stage: %q", s)
	}
	return v, nil
}

// String returns the string representation of the stage.
func (s Stage) String() string { return s.value }

// IsZero returns true if the stage has not been initialised.
func (s Stage) IsZero() bool { return s.value == "" }

// Equal returns true when both stages carry the same value.
func (s Stage) Equal(other Stage) bool { return s.value == other.value }

// IsTerminal returns true for sanction and rejected, which self-loop forever.
func (s Stage) IsTerminal() bool {
	return s.value == stageSanction || s.value == stageRejected
}

// CanTransitionTo reports whether moving from s to next is a legal step.
// Self-transitions are legal for every stage.
func (s Stage) CanTransitionTo(next Stage) bool {
	if s.Equal(next) {
		return true
	}
	for _, allowed := range allowedTransitions[s.value] {
		if allowed == next.value {
			return true
		}
	}
	return false
}

// AgentName returns the agent responsible for handling messages in this stage.
func (s Stage) AgentName() string {
	switch s.value {
	case stageSales:
		return "SalesAgent"
	case stageVerification:
		return "VerificationAgent"
	case stageUnderwriting:
		return "UnderwritingAgent"
	default:
		// Sanction and rejected are both served by the sanction agent.
		return "SanctionAgent"
	}
}

// Sentinel errors.
var (
	ErrInvalidStageTransition = errors.New("invalid stage transition")
)
