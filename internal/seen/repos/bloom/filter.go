// Package bloom implements a fixed-size Bloom filter: a probabilistic
// membership structure with no false negatives and a tunable false-positive
// rate. Items are never stored; only the bit positions derived from their
// hashes affect state.
//
// Positions are derived by double hashing: a single murmur3 128-bit hash
// yields two 64-bit halves h1 and h2, and the i-th probe position is
// (h1 + i*h2) mod m. This gives k positions from one hash computation and
// is stable across processes and platforms.
package bloom

import (
	"errors"
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/spaolacci/murmur3"
)

// ErrInvalidParameters is returned by New when the requested capacity or
// false-positive rate cannot produce a valid filter.
var ErrInvalidParameters = errors.New("invalid bloom filter parameters")

// Filter is a fixed-size Bloom filter. The bit array never grows, shrinks,
// or resets after construction; bits only flip 0 -> 1.
//
// Filter performs no internal locking. A single goroutine may use it freely;
// concurrent embedders must serialize Insert and Contains externally, since
// a position can be read mid-write.
type Filter struct {
	bits     *bitset.BitSet
	m        uint64 // number of bits
	k        uint64 // number of probe positions per item
	inserted uint64 // Insert calls since construction, for rate estimation
}

// New constructs a filter sized for expectedItems insertions at the target
// false-positive rate. It returns ErrInvalidParameters (wrapped with detail)
// when expectedItems is zero or fpRate is not strictly between 0 and 1.
//
// Inserting more than expectedItems degrades the false-positive rate
// gracefully; it is never an error. ApproxFalsePositiveRate reports the
// estimate for the actual insert count.
func New(expectedItems uint64, fpRate float64) (*Filter, error) {
	if expectedItems == 0 {
		return nil, fmt.Errorf("%w: expected items must be > 0, got %d", ErrInvalidParameters, expectedItems)
	}
	if !(fpRate > 0 && fpRate < 1) {
		return nil, fmt.Errorf("%w: false-positive rate must be in (0,1), got %g", ErrInvalidParameters, fpRate)
	}
	m, k := Size(expectedItems, fpRate)
	return NewWithSize(m, k)
}

// NewWithSize constructs a filter directly from m bits and k hash positions,
// for callers that have already computed their own sizing.
func NewWithSize(m, k uint64) (*Filter, error) {
	if m == 0 {
		return nil, fmt.Errorf("%w: bit array size must be > 0", ErrInvalidParameters)
	}
	if k == 0 {
		return nil, fmt.Errorf("%w: hash count must be >= 1", ErrInvalidParameters)
	}
	return &Filter{
		bits: bitset.New(uint(m)),
		m:    m,
		k:    k,
	}, nil
}

// Insert adds item to the filter. It always succeeds and is idempotent:
// re-inserting an item leaves the bit array unchanged.
func (f *Filter) Insert(item []byte) {
	h1, h2 := probes(item)
	for i := uint64(0); i < f.k; i++ {
		f.bits.Set(uint((h1 + i*h2) % f.m))
	}
	f.inserted++
}

// Contains reports whether item may have been inserted. A false result is
// definitive; a true result may be a false positive with probability
// approaching the configured rate as inserts approach the configured
// capacity.
func (f *Filter) Contains(item []byte) bool {
	h1, h2 := probes(item)
	for i := uint64(0); i < f.k; i++ {
		if !f.bits.Test(uint((h1 + i*h2) % f.m)) {
			return false
		}
	}
	return true
}

// M returns the size of the bit array.
func (f *Filter) M() uint64 { return f.m }

// K returns the number of probe positions per item.
func (f *Filter) K() uint64 { return f.k }

// InsertedCount returns the number of Insert calls since construction.
// Duplicate inserts are counted; this is an upper bound on distinct items.
func (f *Filter) InsertedCount() uint64 { return f.inserted }

// ApproxFalsePositiveRate estimates the current false-positive probability
// as (1 - e^(-k*n/m))^k for the actual insert count n. When more items have
// been inserted than the filter was sized for, this exceeds the rate
// requested at construction.
func (f *Filter) ApproxFalsePositiveRate() float64 {
	if f.inserted == 0 {
		return 0
	}
	exp := -float64(f.k) * float64(f.inserted) / float64(f.m)
	return math.Pow(1-math.Exp(exp), float64(f.k))
}

// probes returns the two base hashes for double hashing. h2 is nudged off
// zero so the k probe positions cannot all collapse onto one bit.
func probes(item []byte) (h1, h2 uint64) {
	h1, h2 = murmur3.Sum128(item)
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}
