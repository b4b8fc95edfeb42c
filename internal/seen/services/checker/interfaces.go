package checker

// Filter is the probabilistic membership core the checker classifies against.
// A false Contains is definitive; a true Contains may be a false positive.
type Filter interface {
	Insert(item []byte)
	Contains(item []byte) bool
	M() uint64
	K() uint64
	ApproxFalsePositiveRate() float64
}

// ObservedCache short-circuits recently repeated items before the filter is
// consulted. A hit is exact: the item was certainly observed before.
type ObservedCache interface {
	Seen(item string) bool
	Mark(item string)
	Stats() (hits, misses, evictions uint64)
}

// ExactIndex records every checked item exactly, so duplicate verdicts can
// be audited against ground truth. Implementations may be in-memory or
// disk-backed; Record must be an atomic test-and-insert.
type ExactIndex interface {
	Record(item []byte) (seen bool, err error)
	Len() (uint64, error)
}
