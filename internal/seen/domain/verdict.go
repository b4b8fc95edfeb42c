package domain

import "fmt"

// Verdict classifies a checked item. Pure value type, no external dependencies.
type Verdict uint8

const (
	// VerdictNew means the filter had definitely not seen the item before.
	VerdictNew Verdict = iota
	// VerdictPossiblyDuplicate means the filter reports the item as seen.
	// This may be a false positive; it is never a false negative.
	VerdictPossiblyDuplicate
)

// IsNew is a convenience accessor.
func (v Verdict) IsNew() bool { return v == VerdictNew }

// String returns the textual representation of the Verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictNew:
		return "new"
	case VerdictPossiblyDuplicate:
		return "possibly-duplicate"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(v))
	}
}
