package scheduler

import "fmt"

// FailurePolicy selects how the run reacts to a subsystem failing its tick.
type FailurePolicy int

const (
	// AbortOnFailure stops the entire run on the first failed tick.
	AbortOnFailure FailurePolicy = iota

	// ContinueOnFailure abandons the failed tick and advances to the next.
	ContinueOnFailure
)

// String returns the manifest spelling of the policy.
func (p FailurePolicy) String() string {
	switch p {
	case AbortOnFailure:
		return "abort"
	case ContinueOnFailure:
		return "continue"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy converts a manifest spelling into a policy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "abort", "":
		return AbortOnFailure, nil
	case "continue":
		return ContinueOnFailure, nil
	default:
		return 0, fmt.Errorf("invalid failure policy %q: must be 'abort' or 'continue'", s)
	}
}
