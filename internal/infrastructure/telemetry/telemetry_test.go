package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestStartSpan(t *testing.T) {
	sr := setupTestTracer(t)

	ctx, span := StartSpan(context.Background(), "event.OrderPlaced", attribute.String("seller_id", "s-1"))
	assert.NotEmpty(t, TraceID(ctx))
	RecordError(span, nil)
	RecordError(span, errors.New("handler failed"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "event.OrderPlaced", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String("seller_id", "s-1"))
	assert.Len(t, ended[0].Events(), 1)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}

func TestDisabledProviders(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	cfg := Config{Enabled: false, ServiceName: "swiftsupply-test"}

	tp, err := NewTracerProvider(ctx, cfg, logger)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	tp.EnableSpanProfiles()
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, cfg, logger)
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))

	lp, err := NewLoggerProvider(ctx, cfg, logger)
	require.NoError(t, err)
	assert.False(t, lp.Core("svc", zapcore.InfoLevel).Enabled(zapcore.ErrorLevel))
	assert.NoError(t, lp.Shutdown(ctx))

	p, err := NewProfiler(ProfilerConfig{}, logger)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddress(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "svc"}, zap.NewNop())
	assert.Error(t, err)
	_, err = NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, zap.NewNop())
	assert.Error(t, err)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestLevelFilterCore(t *testing.T) {
	core := &levelFilterCore{Core: zapcore.NewNopCore(), minLevel: zapcore.WarnLevel}
	assert.False(t, core.Enabled(zapcore.InfoLevel))
	with := core.With([]zapcore.Field{zap.String("k", "v")})
	assert.False(t, with.Enabled(zapcore.InfoLevel))
}

func TestRegisterDBTracing(t *testing.T) {
	sr := setupTestTracer(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: false}, zap.NewNop()))
	require.NoError(t, db.Exec("SELECT 1").Error)
	assert.Empty(t, sr.Ended(), "disabled tracing records nothing")

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, zap.NewNop()))

	ctx, parent := StartSpan(context.Background(), "request")
	require.NoError(t, db.WithContext(ctx).Exec("SELECT 1").Error)
	parent.End()

	var names []string
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "request")
	assert.Greater(t, len(names), 1, "query span recorded under the request span")
}

func setupTestMeter(t *testing.T) (*MarketplaceMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMarketplaceMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	s, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range s.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMarketplaceMetrics_Handle(t *testing.T) {
	ctx := context.Background()
	m, reader := setupTestMeter(t)

	buyer := &identity.User{Email: "b@example.com", Role: identity.RoleBuyer}
	buyer.ID = uuid.New()
	product := &catalog.Product{Name: "Bolts", Stock: 0}
	product.ID = uuid.New()

	events := []shared.DomainEvent{
		identity.NewUserRegisteredEvent(buyer),
		identity.NewUserVerifiedEvent(buyer),
		&trade.OrderPlacedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(trade.EventTypeOrderPlaced, "Order", uuid.New()),
			TotalAmount:     decimal.RequireFromString("2500.50"),
		},
		&trade.OrderStatusChangedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(trade.EventTypeOrderStatusChanged, "Order", uuid.New()),
			To:              trade.OrderStatusConfirmed,
		},
		catalog.NewProductStockChangedEvent(product, 5),
		&engagement.InquiryReceivedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(engagement.EventTypeInquiryReceived, "Inquiry", uuid.New()),
		},
	}
	for _, e := range events {
		require.NoError(t, m.Handle(ctx, e))
	}

	data := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, data["swiftsupply.users.registered"]))
	assert.Equal(t, int64(1), sumOf(t, data["swiftsupply.users.verified"]))
	assert.Equal(t, int64(1), sumOf(t, data["swiftsupply.orders.placed"]))
	assert.Equal(t, int64(1), sumOf(t, data["swiftsupply.orders.status_changes"]))
	assert.Equal(t, int64(1), sumOf(t, data["swiftsupply.inventory.stock_changes"]))
	assert.Equal(t, int64(1), sumOf(t, data["swiftsupply.inventory.out_of_stock"]))
	assert.Equal(t, int64(1), sumOf(t, data["swiftsupply.engagement.events"]))

	hist, ok := data["swiftsupply.orders.value"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.InDelta(t, 2500.50, hist.DataPoints[0].Sum, 0.001)
}

func TestMarketplaceMetrics_EventTypes(t *testing.T) {
	m, _ := setupTestMeter(t)
	assert.Contains(t, m.EventTypes(), trade.EventTypeOrderPlaced)
	assert.Contains(t, m.EventTypes(), catalog.EventTypeProductViewed)
}
