package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *time.Time) {
	t.Helper()
	store := NewInMemoryIdempotencyStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestInMemoryIdempotencyStore_RememberAndLookup(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Lookup(ctx, "till-1-0001")
	require.NoError(t, err)
	assert.False(t, ok)

	first, err := store.Remember(ctx, "till-1-0001", "doc-a", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.Remember(ctx, "till-1-0001", "doc-b", time.Hour)
	require.NoError(t, err)
	assert.False(t, second, "first writer wins")

	id, ok, err := store.Lookup(ctx, "till-1-0001")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "doc-a", id)
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store, now := newTestStore(t)
	ctx := context.Background()

	_, err := store.Remember(ctx, "k", "doc-a", time.Minute)
	require.NoError(t, err)

	*now = now.Add(2 * time.Minute)

	_, ok, err := store.Lookup(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	again, err := store.Remember(ctx, "k", "doc-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, again, "an expired key can be reused")

	id, _, _ := store.Lookup(ctx, "k")
	assert.Equal(t, "doc-b", id)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store, now := newTestStore(t)
	ctx := context.Background()

	_, _ = store.Remember(ctx, "short-1", "a", time.Second)
	_, _ = store.Remember(ctx, "short-2", "b", time.Second)
	_, _ = store.Remember(ctx, "long", "c", time.Hour)
	assert.Equal(t, 3, store.Size())

	*now = now.Add(time.Minute)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
	id, ok, _ := store.Lookup(ctx, "long")
	assert.True(t, ok)
	assert.Equal(t, "c", id)
}

func TestInMemoryIdempotencyStore_ConcurrentRemember(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Close()

	ctx := context.Background()
	const goroutines = 100

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		first string
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			ok, err := store.Remember(ctx, "shared", id, time.Hour)
			if err == nil && ok {
				mu.Lock()
				wins++
				first = id
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	id, _, _ := store.Lookup(ctx, "shared")
	assert.Equal(t, first, id)
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
