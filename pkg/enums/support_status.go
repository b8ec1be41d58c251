package enums

import "fmt"

// SupportStatus tracks the verification state of a support entry.
//
// Gateway entries are born verified; direct entries are born unverified and
// transition exactly once, to verified or rejected. Both outcomes are
// terminal.
type SupportStatus string

const (
	SupportStatusUnverified SupportStatus = "unverified"
	SupportStatusVerified   SupportStatus = "verified"
	SupportStatusRejected   SupportStatus = "rejected"
)

var validSupportStatuses = []SupportStatus{
	SupportStatusUnverified,
	SupportStatusVerified,
	SupportStatusRejected,
}

// String implements fmt.Stringer.
func (s SupportStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SupportStatus.
func (s SupportStatus) IsValid() bool {
	for _, candidate := range validSupportStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s SupportStatus) IsTerminal() bool {
	return s == SupportStatusVerified || s == SupportStatusRejected
}

// ParseSupportStatus converts raw input into a SupportStatus.
func ParseSupportStatus(value string) (SupportStatus, error) {
	for _, candidate := range validSupportStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid support status %q", value)
}
