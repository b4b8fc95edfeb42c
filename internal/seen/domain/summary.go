package domain

import "time"

// Summary reports the outcome of running a stream of items through the
// uniqueness checker.
type Summary struct {
	Total             uint64 // items checked
	New               uint64 // items classified new
	PossiblyDuplicate uint64 // items classified possibly-duplicate
	Elapsed           time.Duration

	// Audit results; populated only when an exact index was configured.
	Audited                bool
	ExactDistinct          uint64 // distinct items per the exact index
	ObservedFalsePositives uint64 // duplicate verdicts the exact index disproved

	// Filter shape at the end of the run.
	FilterBits      uint64
	FilterHashes    uint64
	EstimatedFPRate float64
}

// ObservedFPRate returns the audited false-positive frequency over all
// checked items, or 0 when no audit ran.
func (s Summary) ObservedFPRate() float64 {
	if !s.Audited || s.Total == 0 {
		return 0
	}
	return float64(s.ObservedFalsePositives) / float64(s.Total)
}
