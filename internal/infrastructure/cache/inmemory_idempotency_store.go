package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jewelry/backend/internal/domain/shared"
)

type entry struct {
	resourceID string
	expiresAt  time.Time
}

func (e entry) live(now time.Time) bool {
	return now.Before(e.expiresAt)
}

// InMemoryIdempotencyStore maps idempotency keys to the sale document they created.
// State is per process: suitable for single-instance deployments and tests.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	now       func() time.Time
}

// NewInMemoryIdempotencyStore creates the store and starts a goroutine that
// evicts expired keys every cleanupInterval
func NewInMemoryIdempotencyStore(cleanupInterval time.Duration) *InMemoryIdempotencyStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	store := &InMemoryIdempotencyStore{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}

	store.wg.Add(1)
	go store.cleanupLoop(cleanupInterval)

	return store
}

// Remember records resourceID for key. An expired key may be recorded again.
func (s *InMemoryIdempotencyStore) Remember(_ context.Context, key, resourceID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, exists := s.entries[key]; exists && e.live(now) {
		return false, nil
	}
	s.entries[key] = entry{resourceID: resourceID, expiresAt: now.Add(ttl)}
	return true, nil
}

// Lookup returns the resource recorded for key while it is live
func (s *InMemoryIdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists || !e.live(s.now()) {
		return "", false, nil
	}
	return e.resourceID, true, nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if !e.live(now) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of stored keys, expired ones included until cleanup
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
