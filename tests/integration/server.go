package integration

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/jewelry/backend/internal/application/catalog"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	partnerapp "github.com/jewelry/backend/internal/application/partner"
	salesapp "github.com/jewelry/backend/internal/application/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/cache"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/jewelry/backend/internal/infrastructure/persistence"
	"github.com/jewelry/backend/internal/interfaces/http/handler"
	"github.com/jewelry/backend/internal/interfaces/http/router"
	"github.com/jewelry/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// TestServer is the full HTTP stack over a migrated PostgreSQL database
type TestServer struct {
	DB     *TestDB
	Engine *gin.Engine
}

// NewTestServer wires repositories, services and handlers the way
// cmd/server does, with an in-memory idempotency store
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	log := zaptest.NewLogger(t)

	productRepo := persistence.NewGormProductRepository(testDB.DB)
	customerRepo := persistence.NewGormCustomerRepository(testDB.DB)
	documentRepo := persistence.NewGormSaleDocumentRepository(testDB.DB)
	ledgerRepo := persistence.NewGormStockLedgerRepository(testDB.DB)
	scope := persistence.NewGormTransactionScope(testDB.DB, persistence.TransactionOptions{
		Timeout:     15 * time.Second,
		LockTimeout: 5 * time.Second,
	})

	alerter := inventoryapp.NewLowStockAlerter(log).WithNotifier(inventoryapp.NewLoggingStockAlertNotifier(log))
	ledger := inventoryapp.NewStockLedgerService(scope, productRepo, ledgerRepo, log).WithAlerter(alerter)
	saleService := salesapp.NewSaleService(scope, ledger, documentRepo, log).WithAlerter(alerter)

	idem := cache.NewIdempotencyFactory(config.RedisConfig{}).CreateInMemory()
	t.Cleanup(func() { _ = idem.Close() })
	creator := salesapp.NewIdempotentCreator(saleService, idem.Store, idem.Locker, shared.IdempotencyConfig{
		TTL:     time.Hour,
		LockTTL: 30 * time.Second,
		Enabled: true,
	}, log)

	cfg := &config.Config{
		App:  config.AppConfig{Name: "jewelry-integration", Env: "test"},
		HTTP: config.HTTPConfig{MaxBodySize: 1 << 20},
	}
	engine, err := router.NewEngine(router.EngineDeps{Config: cfg, Logger: log}, router.Handlers{
		SaleDocuments: handler.NewSaleDocumentHandler(saleService, creator),
		Products:      handler.NewProductHandler(catalogapp.NewProductService(productRepo, scope, ledger, log), ledger),
		Customers:     handler.NewCustomerHandler(partnerapp.NewCustomerService(customerRepo, scope, log)),
		System:        handler.NewSystemHandler(testDB.SqlDB, "integration"),
	})
	require.NoError(t, err)

	return &TestServer{DB: testDB, Engine: engine}
}

// Do sends a JSON request to the API under /api/v1
func (s *TestServer) Do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.DoJSON(t, s.Engine, method, "/api/v1"+path, body, headers)
}
