package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"
)

const rateLimitPrefix = "jewelry:ratelimit"

// RateLimitConfig configures the per client IP rate limiter
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// Redis shares counters across instances; nil keeps them in process memory
	Redis  *redis.Client
	Logger *zap.Logger
}

// NewRateLimitStore returns the redis store when a client is given, otherwise memory
func NewRateLimitStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          rateLimitPrefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		}), nil
	}
	return sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   rateLimitPrefix,
		MaxRetry: limiter.DefaultMaxRetry,
	})
}

// RateLimit limits requests per client IP. Limited requests get 429 with the
// standard error envelope; X-RateLimit-* headers are set on every response.
func RateLimit(cfg RateLimitConfig) (gin.HandlerFunc, error) {
	store, err := NewRateLimitStore(cfg.Redis)
	if err != nil {
		return nil, err
	}
	rate := limiter.Rate{Period: cfg.Window, Limit: int64(cfg.Requests)}
	return RateLimitWithStore(store, rate, cfg.Logger), nil
}

// RateLimitWithStore builds the middleware on an existing store
func RateLimitWithStore(store limiter.Store, rate limiter.Rate, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests, please try again later",
				GetRequestID(c),
			))
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// counters unavailable: let the request through rather than block sales
			logger.Warn("Rate limit store failed", zap.Error(err))
			c.Next()
		}),
	)
}
