package exact

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_RecordAndContains(t *testing.T) {
	s := NewSet()

	seen, err := s.Record([]byte("alice"))
	require.NoError(t, err)
	assert.False(t, seen, "first record should not be seen")

	seen, err = s.Record([]byte("alice"))
	require.NoError(t, err)
	assert.True(t, seen, "second record should be seen")

	ok, err := s.Contains([]byte("alice"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Contains([]byte("bob"))
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestSet_ConcurrentRecord(t *testing.T) {
	s := NewSet()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, err := s.Record([]byte(fmt.Sprintf("item-%d", i)))
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), n, "distinct count must not be inflated by races")
}
