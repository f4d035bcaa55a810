package telemetry

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetrics records query latency, query errors and connection pool state
type DBMetrics struct {
	queryDuration *Histogram
	queryErrors   *Counter
	registration  metric.Registration
	logger        *zap.Logger
}

// RegisterDBMetrics creates the instruments and installs the gorm hook.
// Pool gauges are observed from sqlDB on every collection.
func RegisterDBMetrics(db *gorm.DB, meter metric.Meter, logger *zap.Logger) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &DBMetrics{logger: logger}

	var err error
	if m.queryDuration, err = NewHistogram(meter, "db_query_duration_seconds",
		"Database statement latency", "s", DBDurationBuckets...); err != nil {
		return nil, err
	}
	if m.queryErrors, err = NewCounter(meter, "db_query_errors_total",
		"Failed database statements", "{errors}"); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if m.registration, err = registerPoolGauges(meter, sqlDB); err != nil {
		return nil, err
	}

	hook := gormHook{name: "telemetry_metrics", before: markStart, after: m.record}
	if err := hook.register(db); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DBMetrics) record(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	attrs := []attribute.KeyValue{
		AttrDBOperation.String(operationOf(db)),
		AttrDBTable.String(db.Statement.Table),
	}
	if d, ok := elapsed(db); ok {
		m.queryDuration.RecordDuration(ctx, d, attrs...)
	}
	if queryFailed(db) {
		m.queryErrors.Inc(ctx, attrs...)
	}
}

// Stop unregisters the pool gauges
func (m *DBMetrics) Stop() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}

func registerPoolGauges(meter metric.Meter, sqlDB *sql.DB) (metric.Registration, error) {
	open, err := meter.Int64ObservableGauge("db_pool_open_connections",
		metric.WithDescription("Open connections"), metric.WithUnit("{connections}"))
	if err != nil {
		return nil, err
	}
	inUse, err := meter.Int64ObservableGauge("db_pool_in_use_connections",
		metric.WithDescription("Connections in use"), metric.WithUnit("{connections}"))
	if err != nil {
		return nil, err
	}
	idle, err := meter.Int64ObservableGauge("db_pool_idle_connections",
		metric.WithDescription("Idle connections"), metric.WithUnit("{connections}"))
	if err != nil {
		return nil, err
	}
	waits, err := meter.Int64ObservableCounter("db_pool_wait_count",
		metric.WithDescription("Connections waited for"), metric.WithUnit("{waits}"))
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := sqlDB.Stats()
		o.ObserveInt64(open, int64(s.OpenConnections))
		o.ObserveInt64(inUse, int64(s.InUse))
		o.ObserveInt64(idle, int64(s.Idle))
		o.ObserveInt64(waits, s.WaitCount)
		return nil
	}, open, inUse, idle, waits)
}
