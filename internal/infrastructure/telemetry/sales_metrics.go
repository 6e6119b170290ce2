package telemetry

import (
	"context"
	"time"

	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

// SalesMetrics records sale document outcomes and stock alerts
type SalesMetrics struct {
	documentsCreated *Counter
	documentsFailed  *Counter
	documentAmount   *Histogram
	createDuration   *Histogram
	stockAlerts      *Counter
}

// NewSalesMetrics creates the sale instruments on mp
func NewSalesMetrics(mp *MeterProvider) (*SalesMetrics, error) {
	meter := mp.Meter("jewelry-backend/sales")
	m := &SalesMetrics{}
	var err error

	if m.documentsCreated, err = NewCounter(meter, "sale_documents_created_total", "Sale documents committed by variant", "{document}"); err != nil {
		return nil, err
	}
	if m.documentsFailed, err = NewCounter(meter, "sale_documents_failed_total", "Rejected sale documents by variant and error code", "{document}"); err != nil {
		return nil, err
	}
	if m.stockAlerts, err = NewCounter(meter, "stock_alerts_total", "Low and out of stock alerts raised after a stock change", "{alert}"); err != nil {
		return nil, err
	}
	if m.documentAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "sale_document_amount",
		Description: "Document total amount by variant",
		Unit:        "{currency}",
		Boundaries:  AmountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.createDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "sale_document_create_duration_seconds",
		Description: "Time to validate, number and commit a sale document",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordDocumentCreated counts a committed document
func (m *SalesMetrics) RecordDocumentCreated(ctx context.Context, variant string, total decimal.Decimal, duration time.Duration) {
	attr := AttrVariant.String(variant)
	m.documentsCreated.Inc(ctx, attr)
	m.documentAmount.Record(ctx, total.InexactFloat64(), attr)
	m.createDuration.RecordDuration(ctx, duration, attr)
}

// RecordDocumentFailed counts a rejected document by domain error code
func (m *SalesMetrics) RecordDocumentFailed(ctx context.Context, variant string, code string) {
	m.documentsFailed.Inc(ctx, AttrVariant.String(variant), AttrErrorCode.String(code))
}

// SendAlert counts a stock alert. It never fails.
func (m *SalesMetrics) SendAlert(ctx context.Context, alert inventoryapp.StockAlert) error {
	m.stockAlerts.Inc(ctx, AttrAlertType.String(alert.AlertType))
	return nil
}

var _ inventoryapp.StockAlertNotifier = (*SalesMetrics)(nil)

// RegisterStockGauges observes, on every metrics collection, how many
// products would raise a low or out of stock alert
func RegisterStockGauges(mp *MeterProvider, db *gorm.DB) (metric.Registration, error) {
	meter := mp.Meter("jewelry-backend/inventory")
	products, err := meter.Int64ObservableGauge("products_below_minimum",
		metric.WithDescription("Active products at or below their minimum stock"),
		metric.WithUnit("{product}"))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		var out, low int64
		base := func() *gorm.DB {
			return db.WithContext(ctx).Model(&models.ProductModel{}).Where("status = ? AND min_stock > 0", catalog.ProductStatusActive)
		}
		if err := base().Where("stock_quantity = 0").Count(&out).Error; err != nil {
			return err
		}
		if err := base().Where("stock_quantity > 0 AND stock_quantity <= min_stock").Count(&low).Error; err != nil {
			return err
		}
		o.ObserveInt64(products, out, metric.WithAttributes(AttrAlertType.String("out_of_stock")))
		o.ObserveInt64(products, low, metric.WithAttributes(AttrAlertType.String("low_stock")))
		return nil
	}, products)
}
