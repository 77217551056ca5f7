package telemetry

import (
	"context"
	"fmt"

	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys
var (
	AttrRole      = attribute.Key("role")
	AttrStatus    = attribute.Key("status")
	AttrDirection = attribute.Key("direction")
	AttrEventType = attribute.Key("event_type")
)

// MarketplaceMetrics turns marketplace events into OTLP metrics. It is an
// event handler, so it records only what committed successfully.
type MarketplaceMetrics struct {
	signups       metric.Int64Counter
	verifications metric.Int64Counter
	ordersPlaced  metric.Int64Counter
	orderValue    metric.Float64Histogram
	orderStatus   metric.Int64Counter
	stockChanges  metric.Int64Counter
	outOfStock    metric.Int64Counter
	engagement    metric.Int64Counter
}

// NewMarketplaceMetrics registers the instruments on meter
func NewMarketplaceMetrics(meter metric.Meter) (*MarketplaceMetrics, error) {
	m := &MarketplaceMetrics{}
	var err error
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.signups, "swiftsupply.users.registered", "Accounts created"},
		{&m.verifications, "swiftsupply.users.verified", "Accounts that completed email verification"},
		{&m.ordersPlaced, "swiftsupply.orders.placed", "Orders placed by buyers"},
		{&m.orderStatus, "swiftsupply.orders.status_changes", "Order status transitions"},
		{&m.stockChanges, "swiftsupply.inventory.stock_changes", "Product stock changes"},
		{&m.outOfStock, "swiftsupply.inventory.out_of_stock", "Stock changes that emptied a product"},
		{&m.engagement, "swiftsupply.engagement.events", "Views, inquiries, messages and reviews received by sellers"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, fmt.Errorf("failed to create counter %s: %w", c.name, err)
		}
	}
	m.orderValue, err = meter.Float64Histogram("swiftsupply.orders.value",
		metric.WithDescription("Total amount of placed orders"),
		metric.WithExplicitBucketBoundaries(100, 1000, 10000, 100000, 1000000, 10000000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram swiftsupply.orders.value: %w", err)
	}
	return m, nil
}

// EventTypes returns the event types this handler is interested in
func (m *MarketplaceMetrics) EventTypes() []string {
	return []string{
		identity.EventTypeUserRegistered,
		identity.EventTypeUserVerified,
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderStatusChanged,
		catalog.EventTypeProductStockChanged,
		catalog.EventTypeProductViewed,
		engagement.EventTypeInquiryReceived,
		engagement.EventTypeMessageReceived,
		engagement.EventTypeReviewReceived,
	}
}

// Handle records the event's measurements
func (m *MarketplaceMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *identity.UserRegisteredEvent:
		m.signups.Add(ctx, 1, metric.WithAttributes(AttrRole.String(string(e.Role))))
	case *identity.UserVerifiedEvent:
		m.verifications.Add(ctx, 1, metric.WithAttributes(AttrRole.String(string(e.Role))))
	case *trade.OrderPlacedEvent:
		m.ordersPlaced.Add(ctx, 1)
		m.orderValue.Record(ctx, e.TotalAmount.InexactFloat64())
	case *trade.OrderStatusChangedEvent:
		m.orderStatus.Add(ctx, 1, metric.WithAttributes(AttrStatus.String(string(e.To))))
	case *catalog.ProductStockChangedEvent:
		direction := "up"
		if e.NewStock < e.OldStock {
			direction = "down"
		}
		m.stockChanges.Add(ctx, 1, metric.WithAttributes(AttrDirection.String(direction)))
		if e.NewStock == 0 && e.OldStock > 0 {
			m.outOfStock.Add(ctx, 1)
		}
	default:
		m.engagement.Add(ctx, 1, metric.WithAttributes(AttrEventType.String(event.EventType())))
	}
	return nil
}

var _ shared.EventHandler = (*MarketplaceMetrics)(nil)
