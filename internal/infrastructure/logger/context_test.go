package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func validSpanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func fieldMap(entry observer.LoggedEntry) map[string]string {
	out := make(map[string]string)
	for _, f := range entry.Context {
		out[f.Key] = f.String
	}
	return out
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		l := zap.NewExample()
		assert.Same(t, l, FromContext(WithContext(context.Background(), l)))
	})

	t.Run("returns nop logger when missing", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("ignores wrong value type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
		assert.NotNil(t, FromContext(ctx))
	})
}

func TestWithRequestIDAndOperation(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	ctx, l := WithRequestID(context.Background(), zap.New(core), "req-1")
	ctx, l = WithOperation(ctx, l, "ADJ")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "ADJ", GetOperation(ctx))
	assert.Same(t, l, FromContext(ctx))

	L(ctx).Info("applied")

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := fieldMap(entries[0])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "ADJ", fields["operation"])
}

func TestGetters_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetOperation(ctx))
	assert.Empty(t, GetTraceID(ctx))
	assert.Empty(t, GetSpanID(ctx))
}

func TestTraceIDs(t *testing.T) {
	ctx := validSpanContext(t)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
	assert.Equal(t, "00f067aa0ba902b7", GetSpanID(ctx))
}

func TestEnrich(t *testing.T) {
	t.Run("adds trace and context fields to a foreign logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := context.WithValue(validSpanContext(t), RequestIDKey, "req-9")

		Enrich(ctx, zap.New(core)).Info("hello")

		entries := recorded.All()
		require.Len(t, entries, 1)
		fields := fieldMap(entries[0])
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
		assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
		assert.Equal(t, "req-9", fields["request_id"])
	})

	t.Run("nil logger is replaced by nop", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Enrich(context.Background(), nil).Info("dropped")
		})
	})
}
