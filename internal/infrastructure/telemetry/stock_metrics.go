package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics component is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// LowStockCounter reports how many products sit below a quantity threshold.
// The product repository satisfies it.
type LowStockCounter interface {
	CountBelowQuantity(ctx context.Context, threshold int64) (int64, error)
}

// StockMetricsConfig configures StockMetrics
type StockMetricsConfig struct {
	Meter             metric.Meter
	Logger            *zap.Logger
	LowStock          LowStockCounter // optional; enables the low stock gauge
	LowStockThreshold int64
}

// StockMetrics records stock mutation engine activity
type StockMetrics struct {
	logger *zap.Logger

	operations *Counter
	lines      *Counter
	clamped    *Counter
	rejected   *Counter

	registration metric.Registration
}

// NewStockMetrics creates the instruments. When a LowStockCounter is supplied
// an observable gauge queries it on every collection.
func NewStockMetrics(cfg StockMetricsConfig) (*StockMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	sm := &StockMetrics{logger: logger}

	var err error
	if sm.operations, err = NewCounter(cfg.Meter, "inventory_operations_total",
		"Committed stock operations", "{operations}"); err != nil {
		return nil, err
	}
	if sm.lines, err = NewCounter(cfg.Meter, "inventory_operation_lines_total",
		"Line items applied to the ledger", "{lines}"); err != nil {
		return nil, err
	}
	if sm.clamped, err = NewCounter(cfg.Meter, "inventory_clamped_lines_total",
		"Line items whose result was clamped at zero", "{lines}"); err != nil {
		return nil, err
	}
	if sm.rejected, err = NewCounter(cfg.Meter, "inventory_operations_rejected_total",
		"Operations rejected by validation or rolled back", "{operations}"); err != nil {
		return nil, err
	}

	if cfg.LowStock != nil {
		gauge, err := cfg.Meter.Int64ObservableGauge("inventory_low_stock_products",
			metric.WithDescription("Products whose aggregate quantity is below the low stock threshold"),
			metric.WithUnit("{products}"),
		)
		if err != nil {
			return nil, err
		}
		threshold := cfg.LowStockThreshold
		sm.registration, err = cfg.Meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
			count, err := cfg.LowStock.CountBelowQuantity(ctx, threshold)
			if err != nil {
				logger.Warn("failed to count low stock products", zap.Error(err))
				return nil
			}
			o.ObserveInt64(gauge, count)
			return nil
		}, gauge)
		if err != nil {
			return nil, err
		}
	}
	return sm, nil
}

// RecordOperation counts a committed operation and its lines
func (sm *StockMetrics) RecordOperation(ctx context.Context, opType string, lines, clampedLines int) {
	attr := AttrOperationType.String(opType)
	sm.operations.Inc(ctx, attr)
	if lines > 0 {
		sm.lines.Add(ctx, int64(lines), attr)
	}
	if clampedLines > 0 {
		sm.clamped.Add(ctx, int64(clampedLines), attr)
	}
}

// RecordRejected counts an operation that did not commit
func (sm *StockMetrics) RecordRejected(ctx context.Context, opType, code string) {
	sm.rejected.Inc(ctx, AttrOperationType.String(opType), AttrErrorCode.String(code))
}

// Stop unregisters the low stock callback
func (sm *StockMetrics) Stop() error {
	if sm.registration == nil {
		return nil
	}
	return sm.registration.Unregister()
}
