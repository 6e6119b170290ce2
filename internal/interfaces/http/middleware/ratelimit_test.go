package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, cfg RateLimitConfig) *gin.Engine {
	t.Helper()
	limit, err := RateLimit(cfg)
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequestID(), limit)
	router.GET("/api/v1/products", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func hit(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit_MemoryStore(t *testing.T) {
	router := newLimitedRouter(t, RateLimitConfig{Requests: 2, Window: time.Minute})

	first := hit(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1:1234").Code)

	limited := hit(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Contains(t, limited.Body.String(), dto.ErrCodeRateLimited)
	assert.Contains(t, limited.Body.String(), limited.Header().Get(RequestIDHeader))

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2:1234").Code)
}

func TestRateLimit_RedisStoreSharedAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := RateLimitConfig{Requests: 2, Window: time.Minute, Redis: client}
	tillA := newLimitedRouter(t, cfg)
	tillB := newLimitedRouter(t, cfg)

	assert.Equal(t, http.StatusOK, hit(tillA, "10.0.0.9:1").Code)
	assert.Equal(t, http.StatusOK, hit(tillB, "10.0.0.9:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(tillA, "10.0.0.9:1").Code)
}

func TestNewRateLimitStore(t *testing.T) {
	store, err := NewRateLimitStore(nil)
	require.NoError(t, err)
	assert.NotNil(t, store)
}
