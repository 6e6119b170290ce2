package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyPrefix = "jewelry:idempotency:"

// NewRedisClient connects to Redis and verifies the connection with a ping
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// RedisIdempotencyStore shares idempotency keys between server instances.
// Each key holds the id of the sale document it created and expires with its TTL.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore wraps an existing client. An empty prefix selects the default.
func NewRedisIdempotencyStore(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultIdempotencyPrefix
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Remember stores resourceID under key with SET NX so that only the first writer wins
func (s *RedisIdempotencyStore) Remember(ctx context.Context, key, resourceID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, resourceID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to remember idempotency key: %w", err)
	}
	return ok, nil
}

// Lookup returns the resource stored for key
func (s *RedisIdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return val, true, nil
}

// Close closes the Redis client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
