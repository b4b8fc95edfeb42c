// Package lru provides an LRU cache of recently observed items that sits in
// front of the Bloom filter. A cache hit is an exact answer: the item was
// certainly observed, so the duplicate verdict cannot be a false positive.
package lru

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache remembers recently observed items with basic metrics.
type Cache interface {
	Seen(item string) bool
	Mark(item string)
	Len() int
	Purge()
	Stats() (hits, misses, evictions uint64)
}

// observedCache is an LRU-backed implementation of Cache.
// It tracks basic metrics: hits, misses, and evictions.
type observedCache struct {
	lru       *lru.Cache[string, struct{}]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op Cache used when size <= 0.
type disabledCache struct{}

// New creates a new Cache with the given capacity. If size <= 0, a disabled
// no-op cache is returned that always misses and tracks no metrics.
func New(size int) (Cache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	var oc observedCache
	// Use NewWithEvict to observe evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(string, struct{}) {
		atomic.AddUint64(&oc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	oc.lru = cache
	return &oc, nil
}

// Seen reports whether item was recently observed. When found, increments
// hits; otherwise increments misses.
func (c *observedCache) Seen(item string) bool {
	if _, ok := c.lru.Get(item); ok {
		atomic.AddUint64(&c.hits, 1)
		return true
	}
	atomic.AddUint64(&c.misses, 1)
	return false
}

// Mark records item as observed.
func (c *observedCache) Mark(item string) {
	c.lru.Add(item, struct{}{})
}

// Len returns the number of entries in the cache.
func (c *observedCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *observedCache) Purge() { c.lru.Purge() }

// Stats returns cumulative hit/miss/eviction counters.
func (c *observedCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

// disabledCache implementation

func (d *disabledCache) Seen(string) bool { return false }

func (d *disabledCache) Mark(string) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ Cache = (*observedCache)(nil)
var _ Cache = (*disabledCache)(nil)
