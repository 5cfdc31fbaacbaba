package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// VerificationStatus – immutable value object
// ---------------------------------------------------------------------------

// VerificationStatus tracks identity verification progress for a session.
// It deliberately mirrors the session's verified flag so the supervisor's
// hard guard can check both fields.
type VerificationStatus struct {
	value string
}

const (
	verificationPending  = "pending"
	verificationVerified = "verified"
)

var (
	VerificationPending  = VerificationStatus{value: verificationPending}
	VerificationVerified = VerificationStatus{value: verificationVerified}
)

var validVerificationStatuses = map[string]VerificationStatus{
	verificationPending:  VerificationPending,
	verificationVerified: VerificationVerified,
}

// NewVerificationStatus creates a VerificationStatus from a raw string.
func NewVerificationStatus(s string) (VerificationStatus, error) {
	v, ok := validVerificationStatuses[s]
	if !ok {
		return VerificationStatus{}, fmt.Errorf("invalid verification status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s VerificationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s VerificationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s VerificationStatus) Equal(other VerificationStatus) bool {
	return s.value == other.value
}

// IsVerified reports whether identity verification has completed.
func (s VerificationStatus) IsVerified() bool { return s.value == verificationVerified }

// ---------------------------------------------------------------------------
// VerificationLevel – advisory strength of completed verification
// ---------------------------------------------------------------------------

// VerificationLevel classifies the combined verification score. It is
// display-only and never gates the flow.
type VerificationLevel struct {
	value string
}

var (
	VerificationLevelBasic    = VerificationLevel{value: "BASIC"}
	VerificationLevelStandard = VerificationLevel{value: "STANDARD"}
	VerificationLevelEnhanced = VerificationLevel{value: "ENHANCED"}
)

// VerificationLevelForScore maps a combined verification score (0-100) to a level.
func VerificationLevelForScore(score int) VerificationLevel {
	switch {
	case score >= 80:
		return VerificationLevelEnhanced
	case score >= 40:
		return VerificationLevelStandard
	default:
		return VerificationLevelBasic
	}
}

// String returns the string representation of the level.
func (l VerificationLevel) String() string { return l.value }

// IsZero returns true if the level has not been initialised.
func (l VerificationLevel) IsZero() bool { return l.value == "" }
