package inventory

import (
	"context"
	"strconv"

	"github.com/jewelry/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// StockAlertNotifier is the interface for sending stock alerts
// Implementations can support different channels (logs, metrics, webhooks, etc.)
type StockAlertNotifier interface {
	// SendAlert sends a stock alert notification
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a stock level alert
type StockAlert struct {
	ProductID       string `json:"product_id"`
	ProductCode     string `json:"product_code"`
	ProductName     string `json:"product_name"`
	CurrentQuantity int    `json:"current_quantity"`
	MinimumQuantity int    `json:"minimum_quantity"`
	AlertType       string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// LowStockAlerter raises an alert when a committed stock change leaves a
// product at or below its minimum. It never fails the operation that triggered it.
type LowStockAlerter struct {
	logger    *zap.Logger
	notifiers []StockAlertNotifier
}

// NewLowStockAlerter creates a new alerter
func NewLowStockAlerter(logger *zap.Logger) *LowStockAlerter {
	return &LowStockAlerter{
		logger: logger,
	}
}

// WithNotifier adds a notifier for sending alerts
func (a *LowStockAlerter) WithNotifier(notifier StockAlertNotifier) *LowStockAlerter {
	a.notifiers = append(a.notifiers, notifier)
	return a
}

// Check sends an alert if product is low on stock. Returns true if an alert was raised.
func (a *LowStockAlerter) Check(ctx context.Context, product *catalog.Product) bool {
	if product == nil || !product.IsLowStock() {
		return false
	}

	alertType := "low_stock"
	if product.StockQuantity == 0 {
		alertType = "out_of_stock"
	}

	alert := StockAlert{
		ProductID:       product.ID.String(),
		ProductCode:     product.Code,
		ProductName:     product.Name,
		CurrentQuantity: product.StockQuantity,
		MinimumQuantity: product.MinStock,
		AlertType:       alertType,
	}

	a.logger.Warn("stock below threshold detected",
		zap.String("product_id", alert.ProductID),
		zap.String("product_code", alert.ProductCode),
		zap.Int("current_quantity", alert.CurrentQuantity),
		zap.Int("minimum_quantity", alert.MinimumQuantity),
		zap.String("alert_type", alertType),
	)

	for _, n := range a.notifiers {
		if err := n.SendAlert(ctx, alert); err != nil {
			a.logger.Error("failed to send stock alert notification",
				zap.String("product_id", alert.ProductID),
				zap.Error(err),
			)
		}
	}
	return true
}

// LoggingStockAlertNotifier is a simple notifier that logs alerts
// This is useful for development and testing
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("product_id", alert.ProductID),
		zap.String("product", alert.ProductCode+" "+alert.ProductName),
		zap.String("current_qty", strconv.Itoa(alert.CurrentQuantity)),
		zap.String("minimum_qty", strconv.Itoa(alert.MinimumQuantity)),
	)
	return nil
}

// Ensure LoggingStockAlertNotifier implements StockAlertNotifier
var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
