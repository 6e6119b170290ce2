package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which resource a client-supplied idempotency key produced
type IdempotencyStore interface {
	// Remember records the resource created for key. Returns false if the key was already recorded.
	Remember(ctx context.Context, key, resourceID string, ttl time.Duration) (bool, error)

	// Lookup returns the resource recorded for key, if any
	Lookup(ctx context.Context, key string) (string, bool, error)

	// Close closes the store and releases resources
	Close() error
}

// KeyLocker serialises work on the same key across processes
type KeyLocker interface {
	// Obtain acquires the lock for key and returns a release function.
	// Returns ErrLockNotObtained when another holder keeps the key past the wait.
	Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

// ErrLockNotObtained is returned when a key lock is held elsewhere
var ErrLockNotObtained = NewDomainError("REQUEST_IN_PROGRESS", "A request with the same idempotency key is in progress")

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a key keeps resolving to the same resource
	TTL time.Duration

	// LockTTL bounds how long a request may hold a key
	LockTTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		LockTTL: 30 * time.Second,
		Enabled: true,
	}
}
