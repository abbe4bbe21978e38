package keys

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandom_BlockKeysUniqueAndShort(t *testing.T) {
	g := NewRandom()
	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		key := g.BlockKey()
		require.Len(t, key, BlockKeyLength)
		require.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

func TestRandom_RetriesOnCollision(t *testing.T) {
	calls := 0
	g := NewRandom()
	g.source = func() string {
		calls++
		if calls < 3 {
			return "aaaaa"
		}
		return "bbbbb"
	}

	require.Equal(t, "aaaaa", g.BlockKey())
	require.Equal(t, "bbbbb", g.BlockKey())
	require.Equal(t, 3, calls)
}

func TestRandom_EntityKeysMonotonic(t *testing.T) {
	g := NewRandom()
	require.Equal(t, "0", g.EntityKey())
	require.Equal(t, "1", g.EntityKey())
	require.Equal(t, "2", g.EntityKey())
}

func TestSequential_Keys(t *testing.T) {
	g := NewSequential()
	require.Equal(t, "b0", g.BlockKey())
	require.Equal(t, "b1", g.BlockKey())
	require.Equal(t, "0", g.EntityKey())
	require.Equal(t, "b2", g.BlockKey())
	require.Equal(t, "1", g.EntityKey())
}

func TestSequential_ConcurrentUse(t *testing.T) {
	g := NewSequential()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := g.BlockKey()
				mu.Lock()
				seen[key] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, 800)
}
