package domain

import (
	"testing"
	"time"
)

func TestVerdictString(t *testing.T) {
	if VerdictNew.String() != "new" {
		t.Errorf("VerdictNew.String() = %q", VerdictNew.String())
	}
	if VerdictPossiblyDuplicate.String() != "possibly-duplicate" {
		t.Errorf("VerdictPossiblyDuplicate.String() = %q", VerdictPossiblyDuplicate.String())
	}
	if Verdict(42).String() != "UNKNOWN(42)" {
		t.Errorf("Verdict(42).String() = %q", Verdict(42).String())
	}
	if !VerdictNew.IsNew() || VerdictPossiblyDuplicate.IsNew() {
		t.Error("IsNew misclassifies verdicts")
	}
}

func TestSummaryObservedFPRate(t *testing.T) {
	s := Summary{
		Total:                  200,
		Audited:                true,
		ObservedFalsePositives: 2,
		Elapsed:                time.Second,
	}
	if got := s.ObservedFPRate(); got != 0.01 {
		t.Errorf("ObservedFPRate = %v, want 0.01", got)
	}

	// no audit → no observed rate
	s.Audited = false
	if got := s.ObservedFPRate(); got != 0 {
		t.Errorf("ObservedFPRate without audit = %v, want 0", got)
	}

	// empty run must not divide by zero
	empty := Summary{Audited: true}
	if got := empty.ObservedFPRate(); got != 0 {
		t.Errorf("ObservedFPRate on empty run = %v, want 0", got)
	}
}
