package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus is the externally visible lifecycle state of a loan
// application record.
type ApplicationStatus struct {
	value string
}

const (
	applicationInitiated  = "Initiated"
	applicationVerified   = "Verified"
	applicationApproved   = "Approved"
	applicationRejected   = "Rejected"
	applicationSanctioned = "Sanctioned"
)

// ApplicationApproved completes the status set accepted from external
// callers, but the same-turn cascade never rests on it: StatusForStage
// materializes an approved decision directly as Sanctioned.
var (
	ApplicationInitiated  = ApplicationStatus{value: applicationInitiated}
	ApplicationVerified   = ApplicationStatus{value: applicationVerified}
	ApplicationApproved   = ApplicationStatus{value: applicationApproved}
	ApplicationRejected   = ApplicationStatus{value: applicationRejected}
	ApplicationSanctioned = ApplicationStatus{value: applicationSanctioned}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	applicationInitiated:  ApplicationInitiated,
	applicationVerified:   ApplicationVerified,
	applicationApproved:   ApplicationApproved,
	applicationRejected:   ApplicationRejected,
	applicationSanctioned: ApplicationSanctioned,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// StatusForStage materializes the application status for a workflow stage.
func StatusForStage(stage Stage) ApplicationStatus {
	switch stage {
	case StageUnderwriting:
		return ApplicationVerified
	case StageSanction:
		return ApplicationSanctioned
	case StageRejected:
		return ApplicationRejected
	default:
		// Sales and verification both map to Initiated.
		return ApplicationInitiated
	}
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}
