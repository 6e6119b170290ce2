package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryKeyLocker_WaitsForRelease(t *testing.T) {
	locker := NewInMemoryKeyLocker()
	ctx := context.Background()

	release, err := locker.Obtain(ctx, "sale-document:k1", time.Second)
	require.NoError(t, err)

	obtained := make(chan struct{})
	go func() {
		second, err := locker.Obtain(ctx, "sale-document:k1", time.Second)
		if err == nil {
			close(obtained)
			_ = second(ctx)
		}
	}()

	select {
	case <-obtained:
		t.Fatal("second holder must wait")
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, release(ctx))
	select {
	case <-obtained:
	case <-time.After(time.Second):
		t.Fatal("second holder never obtained the lock")
	}
}

func TestInMemoryKeyLocker_GivesUpAfterTTL(t *testing.T) {
	locker := NewInMemoryKeyLocker()
	ctx := context.Background()

	release, err := locker.Obtain(ctx, "k", time.Second)
	require.NoError(t, err)
	defer func() { _ = release(ctx) }()

	_, err = locker.Obtain(ctx, "k", 20*time.Millisecond)
	assert.ErrorIs(t, err, shared.ErrLockNotObtained)

	// other keys are independent
	other, err := locker.Obtain(ctx, "other", 20*time.Millisecond)
	require.NoError(t, err)
	assert.NoError(t, other(ctx))
}

func TestInMemoryKeyLocker_ContextCancelled(t *testing.T) {
	locker := NewInMemoryKeyLocker()

	release, err := locker.Obtain(context.Background(), "k", time.Second)
	require.NoError(t, err)
	defer func() { _ = release(context.Background()) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locker.Obtain(ctx, "k", time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInMemoryKeyLocker_ReleaseIsIdempotent(t *testing.T) {
	locker := NewInMemoryKeyLocker()
	ctx := context.Background()

	release, err := locker.Obtain(ctx, "k", time.Second)
	require.NoError(t, err)
	require.NoError(t, release(ctx))

	next, err := locker.Obtain(ctx, "k", time.Second)
	require.NoError(t, err)

	// a stale release must not free the new holder
	require.NoError(t, release(ctx))
	_, err = locker.Obtain(ctx, "k", 20*time.Millisecond)
	assert.ErrorIs(t, err, shared.ErrLockNotObtained)
	require.NoError(t, next(ctx))
}

func TestInMemoryKeyLocker_MutualExclusion(t *testing.T) {
	locker := NewInMemoryKeyLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  int32
		maxSeen int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Obtain(ctx, "k", 5*time.Second)
			if err != nil {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			_ = release(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}
