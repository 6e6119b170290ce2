package telemetry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/infrastructure/config"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestMeterProvider() (*MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return NewMeterProviderWithReader(reader, zap.NewNop()), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumFor(t *testing.T, data metricdata.Aggregation, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	want := attribute.NewSet(attrs...)
	switch d := data.(type) {
	case metricdata.Sum[int64]:
		for _, dp := range d.DataPoints {
			if dp.Attributes.Equals(&want) {
				return dp.Value
			}
		}
	case metricdata.Gauge[int64]:
		for _, dp := range d.DataPoints {
			if dp.Attributes.Equals(&want) {
				return dp.Value
			}
		}
	default:
		t.Fatalf("unexpected aggregation %T", data)
	}
	return 0
}

func newTelemetrySQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestDisabledProvidersAreNoOps(t *testing.T) {
	ctx := context.Background()
	cfg := config.TelemetryConfig{}

	tp, err := NewTracerProvider(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	tp.EnableSpanProfiles()
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	_, err = NewCounter(mp.Meter("test"), "noop_total", "", "1")
	assert.NoError(t, err)
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	base := zap.NewNop()
	assert.Same(t, base, lp.Bridge(base, "svc"))
	assert.NoError(t, lp.Shutdown(ctx))

	p, err := NewProfiler(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServer(t *testing.T) {
	_, err := NewProfiler(config.TelemetryConfig{ProfilingEnabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestSalesMetrics(t *testing.T) {
	mp, reader := newTestMeterProvider()
	m, err := NewSalesMetrics(mp)
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordDocumentCreated(ctx, "bill", decimal.NewFromInt(100600), 30*time.Millisecond)
	m.RecordDocumentCreated(ctx, "bill", decimal.NewFromInt(5000), 10*time.Millisecond)
	m.RecordDocumentCreated(ctx, "invoice", decimal.NewFromInt(700), 5*time.Millisecond)
	m.RecordDocumentFailed(ctx, "bill", "INSUFFICIENT_STOCK")
	require.NoError(t, m.SendAlert(ctx, inventoryapp.StockAlert{AlertType: "out_of_stock"}))

	data := collect(t, reader)
	assert.EqualValues(t, 2, sumFor(t, data["sale_documents_created_total"], AttrVariant.String("bill")))
	assert.EqualValues(t, 1, sumFor(t, data["sale_documents_created_total"], AttrVariant.String("invoice")))
	assert.EqualValues(t, 1, sumFor(t, data["sale_documents_failed_total"],
		AttrVariant.String("bill"), AttrErrorCode.String("INSUFFICIENT_STOCK")))
	assert.EqualValues(t, 1, sumFor(t, data["stock_alerts_total"], AttrAlertType.String("out_of_stock")))

	amounts, ok := data["sale_document_amount"].(metricdata.Histogram[float64])
	require.True(t, ok)
	for _, dp := range amounts.DataPoints {
		if v, _ := dp.Attributes.Value(AttrVariant); v.AsString() == "bill" {
			assert.EqualValues(t, 2, dp.Count)
			assert.InDelta(t, 105600, dp.Sum, 0.001)
		}
	}
}

func TestRegisterStockGauges(t *testing.T) {
	db := newTelemetrySQLite(t)
	now := time.Now()
	product := func(code string, stock, minStock int, status catalog.ProductStatus) *models.ProductModel {
		p := &models.ProductModel{Code: code, Name: code, StockQuantity: stock, MinStock: minStock, Status: status}
		p.ID = uuid.New()
		p.CreatedAt, p.UpdatedAt = now, now
		return p
	}
	require.NoError(t, db.Create([]*models.ProductModel{
		product("RING-1", 0, 2, catalog.ProductStatusActive),
		product("RING-2", 2, 2, catalog.ProductStatusActive),
		product("RING-3", 1, 5, catalog.ProductStatusActive),
		product("RING-4", 9, 2, catalog.ProductStatusActive),
		product("RING-5", 0, 0, catalog.ProductStatusActive),
		product("RING-6", 0, 3, catalog.ProductStatusInactive),
	}).Error)

	mp, reader := newTestMeterProvider()
	reg, err := RegisterStockGauges(mp, db)
	require.NoError(t, err)
	defer func() { _ = reg.Unregister() }()

	data := collect(t, reader)
	assert.EqualValues(t, 1, sumFor(t, data["products_below_minimum"], AttrAlertType.String("out_of_stock")))
	assert.EqualValues(t, 2, sumFor(t, data["products_below_minimum"], AttrAlertType.String("low_stock")))
}

func TestRegisterDBMetrics(t *testing.T) {
	db := newTelemetrySQLite(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	mp, reader := newTestMeterProvider()
	m, err := RegisterDBMetrics(db, sqlDB, mp, time.Hour, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = m.Stop() }()

	var count int64
	require.NoError(t, db.Model(&models.ProductModel{}).Count(&count).Error)
	var missing models.ProductModel
	_ = db.First(&missing, "id = ?", uuid.New()).Error

	data := collect(t, reader)
	selects := sumFor(t, data["db_query_total"], AttrDBOperation.String("SELECT"), AttrDBTable.String("products"))
	assert.EqualValues(t, 2, selects)
	_, hasSlow := data["db_slow_query_total"]
	assert.False(t, hasSlow)
	assert.EqualValues(t, 1, sumFor(t, data["db_pool_connections_max"]))

	_, hasErrors := data["db_query_errors_total"]
	assert.False(t, hasErrors, "record not found is not an error")
}

func TestOperationOf(t *testing.T) {
	tests := map[string]string{
		`SELECT * FROM "products"`:           "SELECT",
		"  update products SET x = 1":        "UPDATE",
		`INSERT INTO "sale_documents" ...`:   "INSERT",
		`DELETE FROM "stock_ledger_entries"`: "DELETE",
		"SET LOCAL lock_timeout = '5s'":      "OTHER",
		"":                                   "UNKNOWN",
	}
	for sql, want := range tests {
		assert.Equal(t, want, operationOf(sql), sql)
	}
}
