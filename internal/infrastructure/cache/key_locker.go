package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const defaultLockPrefix = "jewelry:lock:"

// RedisKeyLocker serialises requests sharing an idempotency key across instances
type RedisKeyLocker struct {
	client    *redislock.Client
	keyPrefix string
	backoff   time.Duration
}

// NewRedisKeyLocker creates a locker on top of an existing Redis client
func NewRedisKeyLocker(client *redis.Client, keyPrefix string) *RedisKeyLocker {
	if keyPrefix == "" {
		keyPrefix = defaultLockPrefix
	}
	return &RedisKeyLocker{
		client:    redislock.New(client),
		keyPrefix: keyPrefix,
		backoff:   50 * time.Millisecond,
	}
}

// Obtain takes the lock for key, retrying until ttl elapses or ctx ends.
// The lock expires on its own after ttl if the holder never releases it.
func (l *RedisKeyLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	waitCtx, cancel := context.WithTimeout(ctx, ttl)
	defer cancel()

	lock, err := l.client.Obtain(waitCtx, l.keyPrefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(l.backoff),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, shared.ErrLockNotObtained
	}
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// expired under us; nothing left to release
			return nil
		}
		return err
	}, nil
}

// InMemoryKeyLocker is the single-process KeyLocker used when Redis is not configured
type InMemoryKeyLocker struct {
	mu    sync.Mutex
	held  map[string]chan struct{}
	clock func(d time.Duration) <-chan time.Time
}

// NewInMemoryKeyLocker creates an empty locker
func NewInMemoryKeyLocker() *InMemoryKeyLocker {
	return &InMemoryKeyLocker{
		held:  make(map[string]chan struct{}),
		clock: time.After,
	}
}

// Obtain waits up to ttl for the current holder of key to release it
func (l *InMemoryKeyLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	deadline := l.clock(ttl)
	for {
		l.mu.Lock()
		released, busy := l.held[key]
		if !busy {
			mine := make(chan struct{})
			l.held[key] = mine
			l.mu.Unlock()
			return l.releaser(key, mine), nil
		}
		l.mu.Unlock()

		select {
		case <-released:
		case <-deadline:
			return nil, shared.ErrLockNotObtained
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (l *InMemoryKeyLocker) releaser(key string, mine chan struct{}) func(context.Context) error {
	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			if l.held[key] == mine {
				delete(l.held, key)
			}
			l.mu.Unlock()
			close(mine)
		})
		return nil
	}
}

var (
	_ shared.KeyLocker = (*RedisKeyLocker)(nil)
	_ shared.KeyLocker = (*InMemoryKeyLocker)(nil)
)
