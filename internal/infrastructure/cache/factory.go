package cache

import (
	"context"
	"fmt"

	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Idempotency bundles the store and locker the sale endpoints share
type Idempotency struct {
	Store  shared.IdempotencyStore
	Locker shared.KeyLocker
	// Client is the shared Redis connection; nil for the in-memory backend
	Client *redis.Client
}

// Close releases the store and, for Redis, the underlying client
func (i *Idempotency) Close() error {
	return i.Store.Close()
}

// IdempotencyFactory builds the idempotency backend from configuration
type IdempotencyFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// IdempotencyFactoryOption configures the factory
type IdempotencyFactoryOption func(*IdempotencyFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) IdempotencyFactoryOption {
	return func(f *IdempotencyFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// the in-memory backend. Default is true.
func WithInMemoryFallback(allow bool) IdempotencyFactoryOption {
	return func(f *IdempotencyFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewIdempotencyFactory creates a new factory
func NewIdempotencyFactory(cfg config.RedisConfig, opts ...IdempotencyFactoryOption) *IdempotencyFactory {
	f := &IdempotencyFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedis connects to Redis and builds a store and locker sharing one client
func (f *IdempotencyFactory) CreateRedis(ctx context.Context) (*Idempotency, error) {
	client, err := NewRedisClient(ctx, f.redisConfig)
	if err != nil {
		return nil, err
	}
	return &Idempotency{
		Store:  NewRedisIdempotencyStore(client, ""),
		Locker: NewRedisKeyLocker(client, ""),
		Client: client,
	}, nil
}

// CreateInMemory builds a process-local backend.
// Retries that land on another instance are then only caught by the
// unique idempotency_key column.
func (f *IdempotencyFactory) CreateInMemory() *Idempotency {
	return &Idempotency{
		Store:  NewInMemoryIdempotencyStore(0),
		Locker: NewInMemoryKeyLocker(),
	}
}

// Create uses Redis when a host is configured and falls back to memory
// if it is unreachable and fallback is allowed
func (f *IdempotencyFactory) Create(ctx context.Context) (*Idempotency, error) {
	if f.redisConfig.Host == "" {
		f.logger.Info("Redis not configured, using in-memory idempotency store")
		return f.CreateInMemory(), nil
	}

	idem, err := f.CreateRedis(ctx)
	if err == nil {
		f.logger.Info("using Redis idempotency store", zap.String("addr", f.redisConfig.Addr()))
		return idem, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
		zap.String("addr", f.redisConfig.Addr()),
		zap.Error(err),
	)
	return f.CreateInMemory(), nil
}
