package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jewelry/backend/docs"
	catalogapp "github.com/jewelry/backend/internal/application/catalog"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	partnerapp "github.com/jewelry/backend/internal/application/partner"
	salesapp "github.com/jewelry/backend/internal/application/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/cache"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/jewelry/backend/internal/infrastructure/logger"
	"github.com/jewelry/backend/internal/infrastructure/persistence"
	"github.com/jewelry/backend/internal/infrastructure/telemetry"
	"github.com/jewelry/backend/internal/interfaces/http/handler"
	"github.com/jewelry/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Jewelry Sales API
//	@version		1.0
//	@description	Sale documents, stock ledger and customer records for a jewelry retail shop

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(logger.OptionsFromConfig(cfg))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry providers come first so the bridged logger can export
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log := loggerProvider.Bridge(baseLog, cfg.Telemetry.ServiceName)
	defer func() {
		_ = logger.Sync(log)
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}

	log.Info("Starting Jewelry Sales API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowQueryThresh),
		logger.WithIgnoreRecordNotFoundError(true),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get database handle", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingOptions{
			Driver:             cfg.Database.Driver,
			LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
			SlowQueryThreshold: cfg.Database.SlowQueryThresh,
		}, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}
	if meterProvider.IsEnabled() {
		if _, err := telemetry.RegisterDBMetrics(db.DB, sqlDB, meterProvider, cfg.Database.SlowQueryThresh, log); err != nil {
			log.Warn("Database metrics disabled", zap.Error(err))
		}
		if _, err := telemetry.RegisterStockGauges(meterProvider, db.DB); err != nil {
			log.Warn("Stock gauges disabled", zap.Error(err))
		}
	}

	idempotency, err := cache.NewIdempotencyFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).Create(ctx)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotency.Close(); err != nil {
			log.Warn("Error closing idempotency store", zap.Error(err))
		}
	}()

	salesMetrics, err := telemetry.NewSalesMetrics(meterProvider)
	if err != nil {
		log.Fatal("Failed to create sales metrics", zap.Error(err))
	}

	// Repositories and the transaction scope every write goes through
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	documentRepo := persistence.NewGormSaleDocumentRepository(db.DB)
	ledgerRepo := persistence.NewGormStockLedgerRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB, persistence.TransactionOptions{
		Timeout:     cfg.Sales.TransactionTimeout,
		LockTimeout: cfg.Database.LockTimeout,
	})

	alerter := inventoryapp.NewLowStockAlerter(log).
		WithNotifier(inventoryapp.NewLoggingStockAlertNotifier(log)).
		WithNotifier(salesMetrics)

	ledgerService := inventoryapp.NewStockLedgerService(scope, productRepo, ledgerRepo, log).WithAlerter(alerter)
	productService := catalogapp.NewProductService(productRepo, scope, ledgerService, log)
	customerService := partnerapp.NewCustomerService(customerRepo, scope, log)
	saleService := salesapp.NewSaleService(scope, ledgerService, documentRepo, log).
		WithAlerter(alerter).
		WithRecorder(salesMetrics)
	creator := salesapp.NewIdempotentCreator(saleService, idempotency.Store, idempotency.Locker, shared.IdempotencyConfig{
		TTL:     cfg.Sales.IdempotencyTTL,
		LockTTL: cfg.Sales.IdempotencyLockTTL,
		Enabled: cfg.Sales.IdempotencyEnabled,
	}, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := router.NewEngine(router.EngineDeps{
		Config:        cfg,
		Logger:        log,
		MeterProvider: meterProvider,
		Redis:         idempotency.Client,
	}, router.Handlers{
		SaleDocuments: handler.NewSaleDocumentHandler(saleService, creator),
		Products:      handler.NewProductHandler(productService, ledgerService),
		Customers:     handler.NewCustomerHandler(customerService),
		System:        handler.NewSystemHandler(sqlDB, version),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Flush telemetry after the last request finished
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down telemetry provider", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
