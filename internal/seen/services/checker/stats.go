package checker

// Stats reports cumulative checker counters since construction.
// All fields are best-effort snapshots and may be updated concurrently.
type Stats struct {
	Total             uint64 // items checked
	New               uint64 // classified new
	PossiblyDuplicate uint64 // classified possibly-duplicate

	// Audit counters; zero when no exact index is configured.
	ObservedFalsePositives uint64

	// Observed-cache counters.
	CacheHits      uint64
	CacheMisses    uint64
	CacheEvictions uint64
}
