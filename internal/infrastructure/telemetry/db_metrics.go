package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetrics records statement counts, latency and connection pool state
type DBMetrics struct {
	queryTotal     *Counter
	queryErrors    *Counter
	queryDuration  *Histogram
	slowQueryTotal *Counter
	slowThreshold  time.Duration
	registration   metric.Registration
}

// RegisterDBMetrics instruments db with statement metrics and observes the
// pool of sqlDB on every collection
func RegisterDBMetrics(db *gorm.DB, sqlDB *sql.DB, mp *MeterProvider, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	meter := mp.Meter("jewelry-backend/db")
	if slowThreshold == 0 {
		slowThreshold = 200 * time.Millisecond
	}

	m := &DBMetrics{slowThreshold: slowThreshold}
	var err error
	if m.queryTotal, err = NewCounter(meter, "db_query_total", "Database statements by operation and table", "{query}"); err != nil {
		return nil, err
	}
	if m.queryErrors, err = NewCounter(meter, "db_query_errors_total", "Failed database statements", "{query}"); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Statements slower than the slow query threshold", "{query}"); err != nil {
		return nil, err
	}
	if m.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database statement latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	}); err != nil {
		return nil, err
	}

	if sqlDB != nil {
		if m.registration, err = observePool(meter, sqlDB); err != nil {
			return nil, err
		}
	}

	if err := registerAround(db, "metrics", markQueryStart, m.record); err != nil {
		return nil, err
	}

	logger.Info("Database metrics enabled", zap.Duration("slow_query_threshold", slowThreshold))
	return m, nil
}

func observePool(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	conns, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	maxConns, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for"),
		metric.WithUnit("{wait}"))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(conns, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
		o.ObserveInt64(conns, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
		o.ObserveInt64(maxConns, int64(stats.MaxOpenConnections))
		o.ObserveInt64(waits, stats.WaitCount)
		return nil
	}, conns, maxConns, waits)
}

func (m *DBMetrics) record(tx *gorm.DB) {
	elapsed, ok := queryElapsed(tx)
	if !ok {
		return
	}
	ctx := tx.Statement.Context
	attrs := []attribute.KeyValue{
		AttrDBOperation.String(operationOf(tx.Statement.SQL.String())),
		AttrDBTable.String(tx.Statement.Table),
	}

	m.queryTotal.Inc(ctx, attrs...)
	m.queryDuration.RecordDuration(ctx, elapsed, attrs...)
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		m.queryErrors.Inc(ctx, attrs...)
	}
	if elapsed > m.slowThreshold {
		m.slowQueryTotal.Inc(ctx, attrs...)
	}
}

// Stop unregisters the pool observer
func (m *DBMetrics) Stop() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

func operationOf(sql string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	switch v := strings.ToUpper(verb); v {
	case "SELECT", "INSERT", "UPDATE", "DELETE":
		return v
	case "":
		return "UNKNOWN"
	default:
		return "OTHER"
	}
}
