package enums

import "fmt"

// Decision is the creator's verdict on a pending direct payment.
type Decision string

const (
	DecisionVerify Decision = "verify"
	DecisionReject Decision = "reject"
)

var validDecisions = []Decision{
	DecisionVerify,
	DecisionReject,
}

// String implements fmt.Stringer.
func (d Decision) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Decision.
func (d Decision) IsValid() bool {
	for _, candidate := range validDecisions {
		if candidate == d {
			return true
		}
	}
	return false
}

// TargetStatus maps the decision onto the terminal entry status it produces.
func (d Decision) TargetStatus() SupportStatus {
	if d == DecisionVerify {
		return SupportStatusVerified
	}
	return SupportStatusRejected
}

// ParseDecision converts raw input into a Decision.
func ParseDecision(value string) (Decision, error) {
	for _, candidate := range validDecisions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid decision %q", value)
}
