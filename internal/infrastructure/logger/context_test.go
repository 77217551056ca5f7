package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func bufferLogger(buf *bytes.Buffer) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(buf), zapcore.DebugLevel))
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestFromContext(t *testing.T) {
	base := zap.NewExample()
	ctx := WithContext(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))

	assert.NotNil(t, FromContext(context.Background()))

	wrong := context.WithValue(context.Background(), LoggerKey, "not a logger")
	assert.NotNil(t, FromContext(wrong))
}

func TestWithRequestIDAndUserID(t *testing.T) {
	var buf bytes.Buffer
	base := bufferLogger(&buf)

	ctx, l := WithRequestID(context.Background(), base, "req-1")
	ctx, l = WithUserID(ctx, l, "user-9")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-9", GetUserID(ctx))
	assert.Same(t, l, FromContext(ctx))

	l.Info("hello")
	entry := lastEntry(t, &buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "user-9", entry["user_id"])
}

func TestGettersOnEmptyContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceID_WithSpan(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(ctx))
}

func TestContextLogger_EnrichesEntries(t *testing.T) {
	var buf bytes.Buffer
	base := bufferLogger(&buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(),
		trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID}))
	ctx = context.WithValue(ctx, RequestIDKey, "req-2")
	ctx = context.WithValue(ctx, UserIDKey, "user-2")

	WithLogger(ctx, base).With(zap.String("component", "orders")).Warn("stock low")

	entry := lastEntry(t, &buf)
	assert.Equal(t, "stock low", entry["msg"])
	assert.Equal(t, "req-2", entry["request_id"])
	assert.Equal(t, "user-2", entry["user_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
	assert.Equal(t, "orders", entry["component"])
}

func TestContextLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	WithLogger(context.Background(), bufferLogger(&buf)).Info("plain")

	entry := lastEntry(t, &buf)
	assert.NotContains(t, entry, "request_id")
	assert.NotContains(t, entry, "user_id")
	assert.NotContains(t, entry, "trace_id")
}

func TestContextLogger_NilLoggerIsSafe(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	assert.NotPanics(t, func() {
		cl.Debug("d")
		cl.Info("i")
		cl.Warn("w")
		cl.Error("e")
		cl.With(zap.Int("n", 1)).Info("child")
		assert.NotNil(t, cl.Zap())
	})
}

func TestL_UsesLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), bufferLogger(&buf))

	L(ctx).Info("from ctx")

	assert.Equal(t, "from ctx", lastEntry(t, &buf)["msg"])
}
