package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingOptions configures statement spans
type DBTracingOptions struct {
	Driver             string // postgres, mysql, sqlite
	LogFullSQL         bool   // include bound values; never in production
	SlowQueryThreshold time.Duration
}

// DBSystem maps a configured driver to the semantic convention db.system value
func DBSystem(driver string) string {
	switch driver {
	case "mysql":
		return "mysql"
	case "sqlite":
		return "sqlite"
	default:
		return "postgresql"
	}
}

type dbContextKey string

const queryStartKey dbContextKey = "db_query_start"

// RegisterDBTracing installs otelgorm and a callback that marks slow
// statements and failures on the statement span. Lock waits during stock
// deduction show up as slow UPDATE ... FOR UPDATE spans.
func RegisterDBTracing(db *gorm.DB, opts DBTracingOptions, logger *zap.Logger) error {
	threshold := opts.SlowQueryThreshold
	if threshold == 0 {
		threshold = 200 * time.Millisecond
	}
	// Registered ahead of otelgorm so the annotation runs while the
	// statement span is still open.
	after := func(tx *gorm.DB) { annotateStatementSpan(tx, threshold) }
	if err := registerAround(db, "otel_slow", markQueryStart, after); err != nil {
		return err
	}

	pluginOpts := []otelgorm.Option{otelgorm.WithDBName(DBSystem(opts.Driver))}
	if !opts.LogFullSQL {
		pluginOpts = append(pluginOpts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(pluginOpts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", DBSystem(opts.Driver)),
		zap.Bool("log_full_sql", opts.LogFullSQL),
		zap.Duration("slow_query_threshold", threshold),
	)
	return nil
}

func markQueryStart(tx *gorm.DB) {
	if tx.Statement.Context != nil {
		tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey, time.Now())
	}
}

func queryElapsed(tx *gorm.DB) (time.Duration, bool) {
	if tx.Statement.Context == nil {
		return 0, false
	}
	start, ok := tx.Statement.Context.Value(queryStartKey).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

func annotateStatementSpan(tx *gorm.DB, threshold time.Duration) {
	if tx.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(tx.Statement.Context)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
		span.SetStatus(codes.Error, tx.Error.Error())
	}
	if elapsed, ok := queryElapsed(tx); ok && elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}

// registerAround registers before and after callbacks for every statement kind.
// A nil before callback is skipped.
func registerAround(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	if before != nil {
		if err := cb.Create().Before("gorm:create").Register(prefix+":before_create", before); err != nil {
			return err
		}
		if err := cb.Query().Before("gorm:query").Register(prefix+":before_query", before); err != nil {
			return err
		}
		if err := cb.Update().Before("gorm:update").Register(prefix+":before_update", before); err != nil {
			return err
		}
		if err := cb.Delete().Before("gorm:delete").Register(prefix+":before_delete", before); err != nil {
			return err
		}
		if err := cb.Row().Before("gorm:row").Register(prefix+":before_row", before); err != nil {
			return err
		}
		if err := cb.Raw().Before("gorm:raw").Register(prefix+":before_raw", before); err != nil {
			return err
		}
	}
	if err := cb.Create().After("gorm:create").Register(prefix+":after_create", after); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register(prefix+":after_query", after); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register(prefix+":after_update", after); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register(prefix+":after_delete", after); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register(prefix+":after_row", after); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register(prefix+":after_raw", after)
}
