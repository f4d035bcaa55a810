package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type countingExporter struct {
	records []sdklog.Record
}

func (e *countingExporter) Export(_ context.Context, records []sdklog.Record) error {
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}
func (e *countingExporter) Shutdown(context.Context) error   { return nil }
func (e *countingExporter) ForceFlush(context.Context) error { return nil }

func TestNewZapOTELCore_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())

	core := NewZapOTELCore("inventory", lp, zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
	assert.NoError(t, lp.Shutdown(context.Background()))

	var nilProvider *LoggerProvider
	assert.False(t, nilProvider.IsEnabled())
}

func TestLevelFilterCore(t *testing.T) {
	exporter := &countingExporter{}
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exporter)))
	lp := &LoggerProvider{provider: provider, logger: zap.NewNop()}

	core := NewZapOTELCore("inventory", lp, zapcore.WarnLevel)
	log := zap.New(core).With(zap.String("component", "ledger"))

	log.Info("dropped")
	log.Warn("quant clamped", zap.Int64("requested", 5))
	log.Error("rolled back")

	require.Len(t, exporter.records, 2)
	assert.Equal(t, "quant clamped", exporter.records[0].Body().AsString())
	_, isFilter := log.Core().(*levelFilterCore)
	assert.True(t, isFilter, "With keeps the level filter")
	assert.NoError(t, provider.Shutdown(context.Background()))
}

var _ zapcore.Core = (*otelzap.Core)(nil)
