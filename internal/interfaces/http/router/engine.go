package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/jewelry/backend/internal/infrastructure/logger"
	"github.com/jewelry/backend/internal/infrastructure/telemetry"
	"github.com/jewelry/backend/internal/interfaces/http/handler"
	"github.com/jewelry/backend/internal/interfaces/http/middleware"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	SaleDocuments *handler.SaleDocumentHandler
	Products      *handler.ProductHandler
	Customers     *handler.CustomerHandler
	System        *handler.SystemHandler
}

// EngineDeps carries what NewEngine needs besides the handlers
type EngineDeps struct {
	Config        *config.Config
	Logger        *zap.Logger
	MeterProvider *telemetry.MeterProvider
	// Redis backs the rate limiter when set
	Redis *redis.Client
}

// NewEngine builds the gin engine with the middleware stack and every route.
//
// Middleware order:
//  1. RequestID, so every later layer can tag its output
//  2. request logging and panic recovery
//  3. security headers, CORS, body limit
//  4. Idempotency-Key validation
//  5. tracing, span status, HTTP metrics, profiling labels
//  6. rate limiting (when enabled)
func NewEngine(deps EngineDeps, h Handlers) (*gin.Engine, error) {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.IdempotencyKey())

	if tracing := middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled); len(tracing) > 0 {
		engine.Use(tracing...)
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: deps.MeterProvider,
		Enabled:       cfg.Telemetry.MetricsEnabled,
		Logger:        log,
	}))
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.Profiling(middleware.DefaultProfilingConfig()))
	}

	if cfg.HTTP.RateLimitEnabled {
		limit, err := middleware.RateLimit(middleware.RateLimitConfig{
			Requests: cfg.HTTP.RateLimitRequests,
			Window:   cfg.HTTP.RateLimitWindow,
			Redis:    deps.Redis,
			Logger:   log,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		engine.Use(limit)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
			zap.Bool("shared", deps.Redis != nil),
		)
	}

	if h.System != nil {
		engine.GET("/health", h.System.Health)
		engine.GET("/ready", h.System.Ready)
	}

	docs := engine.Group("/swagger", middleware.SwaggerProtection(cfg.Swagger))
	docs.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := NewRouter(engine, WithAPIVersion("v1"))
	if h.SaleDocuments != nil {
		r.Register(SaleDocumentRoutes(h.SaleDocuments))
	}
	if h.Products != nil {
		r.Register(ProductRoutes(h.Products))
	}
	if h.Customers != nil {
		r.Register(CustomerRoutes(h.Customers))
	}
	if h.System != nil {
		r.Register(SystemRoutes(h.System))
	}
	r.Setup()

	return engine, nil
}
