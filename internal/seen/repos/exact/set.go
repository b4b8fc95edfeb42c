// Package exact provides exact-membership indexes used to audit the Bloom
// filter's verdicts. Unlike the filter, these store every item and never
// report false positives.
package exact

import "sync"

// Set is an in-memory exact-membership index backed by a map.
// Safe for concurrent use. It must never evict, so an LRU is unsuitable.
type Set struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

// NewSet returns an empty in-memory index.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Record atomically tests for item and inserts it when absent.
// It returns true when the item had been recorded before.
func (s *Set) Record(item []byte) (bool, error) {
	key := string(item)
	s.mu.Lock()
	_, seen := s.members[key]
	if !seen {
		s.members[key] = struct{}{}
	}
	s.mu.Unlock()
	return seen, nil
}

// Contains reports whether item has been recorded.
func (s *Set) Contains(item []byte) (bool, error) {
	s.mu.RLock()
	_, ok := s.members[string(item)]
	s.mu.RUnlock()
	return ok, nil
}

// Len returns the number of distinct items recorded.
func (s *Set) Len() (uint64, error) {
	s.mu.RLock()
	n := uint64(len(s.members))
	s.mu.RUnlock()
	return n, nil
}
