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

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound values in span statements (dev only)
	SlowQueryThresh time.Duration // queries slower than this are flagged on their span
	DBSystem        string        // "sqlite" or "postgres"
}

// DBTracingPlugin wraps the otelgorm plugin with slow query detection.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{config: cfg, logger: logger}
}

type queryStartKey struct{}

// RegisterOtelGorm installs otelgorm and the timing callbacks on db.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

// registerCallbacks times every statement and annotates its span before
// otelgorm's after-callback ends it.
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("pieshop:before_create", markQueryStart) },
		func() error { return cb.Query().Before("gorm:query").Register("pieshop:before_query", markQueryStart) },
		func() error { return cb.Update().Before("gorm:update").Register("pieshop:before_update", markQueryStart) },
		func() error { return cb.Delete().Before("gorm:delete").Register("pieshop:before_delete", markQueryStart) },
		func() error { return cb.Row().Before("gorm:row").Register("pieshop:before_row", markQueryStart) },
		func() error { return cb.Raw().Before("gorm:raw").Register("pieshop:before_raw", markQueryStart) },
		func() error { return cb.Create().After("gorm:create").Before("otel:after_create").Register("pieshop:after_create", p.annotateSpan) },
		func() error { return cb.Query().After("gorm:query").Before("otel:after_query").Register("pieshop:after_query", p.annotateSpan) },
		func() error { return cb.Update().After("gorm:update").Before("otel:after_update").Register("pieshop:after_update", p.annotateSpan) },
		func() error { return cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("pieshop:after_delete", p.annotateSpan) },
		func() error { return cb.Row().After("gorm:row").Before("otel:after_row").Register("pieshop:after_row", p.annotateSpan) },
		func() error { return cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("pieshop:after_raw", p.annotateSpan) },
	}
	for _, register := range steps {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

// annotateSpan adds row counts, table, error status and slow query flags to
// the span opened by otelgorm.
func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok || p.config.SlowQueryThresh <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
