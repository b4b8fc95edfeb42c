// Package checker implements the uniqueness-checking service: each candidate
// item is classified as new or possibly-duplicate against a Bloom filter,
// with an optional exact-answer cache in front and an optional exact index
// behind it that audits the filter's verdicts.
package checker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/haukened/seen/internal/seen/common/clock"
	"github.com/haukened/seen/internal/seen/common/log"
	"github.com/haukened/seen/internal/seen/domain"
)

// Options configures a Checker. Filter is required; the rest are optional.
type Options struct {
	Filter Filter
	Cache  ObservedCache // nil disables the observed cache
	Audit  ExactIndex    // nil disables verdict auditing
	Logger log.Logger    // nil falls back to the noop logger
	Clock  clock.Clock   // nil falls back to the real clock
}

// Checker classifies a stream of items. Safe for concurrent use: the filter
// read-then-conditional-write pair is serialized under one lock, since the
// filter itself performs no locking.
type Checker struct {
	mu     sync.Mutex
	filter Filter
	cache  ObservedCache
	audit  ExactIndex
	logger log.Logger
	clock  clock.Clock

	newCount uint64
	dupCount uint64
	fpCount  uint64
}

// New constructs a Checker from options.
func New(opts Options) *Checker {
	c := &Checker{
		filter: opts.Filter,
		cache:  opts.Cache,
		audit:  opts.Audit,
		logger: opts.Logger,
		clock:  opts.Clock,
	}
	if c.cache == nil {
		c.cache = noopCache{}
	}
	if c.logger == nil {
		c.logger = log.NewNoopLogger()
	}
	if c.clock == nil {
		c.clock = clock.RealClock{}
	}
	return c
}

// Check classifies item and, when it is new, inserts it into the filter.
// Possibly-duplicate items are not re-inserted.
func (c *Checker) Check(item []byte) domain.Verdict {
	key := string(item)

	// A cache hit is a certain repeat; the filter is not consulted and the
	// exact index already holds the item from its first observation.
	if c.cache.Seen(key) {
		atomic.AddUint64(&c.dupCount, 1)
		return domain.VerdictPossiblyDuplicate
	}

	c.mu.Lock()
	dup := c.filter.Contains(item)
	if !dup {
		c.filter.Insert(item)
	}
	c.mu.Unlock()

	c.cache.Mark(key)
	c.auditVerdict(item, dup)

	if dup {
		atomic.AddUint64(&c.dupCount, 1)
		return domain.VerdictPossiblyDuplicate
	}
	atomic.AddUint64(&c.newCount, 1)
	return domain.VerdictNew
}

// auditVerdict records item in the exact index and compares the filter's
// answer against ground truth. Index errors never alter verdicts.
func (c *Checker) auditVerdict(item []byte, dup bool) {
	if c.audit == nil {
		return
	}
	seen, err := c.audit.Record(item)
	if err != nil {
		c.logger.Warn(map[string]any{"error": err.Error()}, "audit_record_failed")
		return
	}
	if dup && !seen {
		atomic.AddUint64(&c.fpCount, 1)
		c.logger.Debug(map[string]any{"item_len": len(item)}, "observed_false_positive")
	}
	if !dup && seen {
		// A correct Bloom filter can never report an inserted item absent.
		c.logger.Error(map[string]any{"item_len": len(item)}, "false_negative_detected")
	}
}

// Run drives a batch of items through Check, honoring ctx cancellation
// between items. On cancellation it returns the summary so far together
// with the context's error.
func (c *Checker) Run(ctx context.Context, items []string) (domain.Summary, error) {
	start := c.clock.Now()
	fpStart := atomic.LoadUint64(&c.fpCount)

	s := domain.Summary{}
	for _, item := range items {
		select {
		case <-ctx.Done():
			c.finishSummary(&s, start, fpStart)
			return s, ctx.Err()
		default:
		}
		switch c.Check([]byte(item)) {
		case domain.VerdictNew:
			s.New++
		case domain.VerdictPossiblyDuplicate:
			s.PossiblyDuplicate++
		}
		s.Total++
	}
	c.finishSummary(&s, start, fpStart)
	return s, nil
}

// Stats returns cumulative counters since construction.
func (c *Checker) Stats() Stats {
	hits, misses, evictions := c.cache.Stats()
	return Stats{
		Total:                  atomic.LoadUint64(&c.newCount) + atomic.LoadUint64(&c.dupCount),
		New:                    atomic.LoadUint64(&c.newCount),
		PossiblyDuplicate:      atomic.LoadUint64(&c.dupCount),
		ObservedFalsePositives: atomic.LoadUint64(&c.fpCount),
		CacheHits:              hits,
		CacheMisses:            misses,
		CacheEvictions:         evictions,
	}
}

// finishSummary fills in timing, filter shape, and audit results.
func (c *Checker) finishSummary(s *domain.Summary, start time.Time, fpStart uint64) {
	s.Elapsed = c.clock.Now().Sub(start)
	s.FilterBits = c.filter.M()
	s.FilterHashes = c.filter.K()
	s.EstimatedFPRate = c.filter.ApproxFalsePositiveRate()
	if c.audit == nil {
		return
	}
	s.Audited = true
	s.ObservedFalsePositives = atomic.LoadUint64(&c.fpCount) - fpStart
	n, err := c.audit.Len()
	if err != nil {
		c.logger.Warn(map[string]any{"error": err.Error()}, "audit_len_failed")
		return
	}
	s.ExactDistinct = n
}

// noopCache is the disabled ObservedCache used when Options.Cache is nil.
type noopCache struct{}

func (noopCache) Seen(string) bool                { return false }
func (noopCache) Mark(string)                     {}
func (noopCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }
