// Package bolt provides a bbolt-backed exact-membership index for audit runs
// whose distinct-item count is too large to hold in memory.
package bolt

import (
	"encoding/binary"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var (
	bucketItems = []byte("items")
	bucketMeta  = []byte("meta")
)

// StoreStats reports lightweight store metrics and metadata.
// Values are read from the store in a cheap, read-only transaction.
type StoreStats struct {
	Keys        uint64 // number of distinct items recorded
	UpdatedUnix int64  // last write unix time (0 if never written)
}

// Store implements the checker's ExactIndex on top of bbolt.
type Store struct {
	db *bbolt.DB
}

// New opens (or creates) a Bolt database at path and ensures buckets exist.
func New(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketItems); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return err
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Record atomically tests for item and inserts it when absent, returning
// true when the item had been recorded before. Test and insert share one
// write transaction so concurrent callers cannot both observe "absent".
func (s *Store) Record(item []byte) (bool, error) {
	var seen bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketItems)
		if b.Get(item) != nil {
			seen = true
			return nil
		}
		if err := b.Put(item, []byte{1}); err != nil {
			return err
		}
		return touchMeta(tx)
	})
	return seen, err
}

// Contains reports whether item has been recorded.
func (s *Store) Contains(item []byte) (bool, error) {
	var present bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		present = tx.Bucket(bucketItems).Get(item) != nil
		return nil
	})
	return present, err
}

// Len returns the number of distinct items recorded.
func (s *Store) Len() (uint64, error) {
	var n uint64
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = uint64(tx.Bucket(bucketItems).Stats().KeyN)
		return nil
	})
	return n, err
}

// Stats returns store counters and metadata.
func (s *Store) Stats() StoreStats {
	st := StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		st.Keys = uint64(tx.Bucket(bucketItems).Stats().KeyN)
		if v := tx.Bucket(bucketMeta).Get([]byte("updated")); len(v) == 8 {
			st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
		}
		return nil
	})
	return st
}

func touchMeta(tx *bbolt.Tx) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(time.Now().Unix()))
	return tx.Bucket(bucketMeta).Put([]byte("updated"), buf)
}
