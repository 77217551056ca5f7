package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// MockStockAlertNotifier is a mock notifier for testing
type MockStockAlertNotifier struct {
	mu     sync.Mutex
	alerts []StockAlert
}

func NewMockStockAlertNotifier() *MockStockAlertNotifier {
	return &MockStockAlertNotifier{
		alerts: make([]StockAlert, 0),
	}
}

func (n *MockStockAlertNotifier) SendAlert(ctx context.Context, alert StockAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *MockStockAlertNotifier) GetAlerts() []StockAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]StockAlert, len(n.alerts))
	copy(result, n.alerts)
	return result
}

func (n *MockStockAlertNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = make([]StockAlert, 0)
}

func stockChange(t *testing.T, from, to int) *catalog.ProductStockChangedEvent {
	t.Helper()
	p, err := catalog.NewProduct(catalog.NewProductInput{
		SellerID: uuid.New(),
		Name:     "Bolts",
		Price:    decimal.NewFromInt(2),
		Stock:    from,
	})
	require.NoError(t, err)
	p.ClearDomainEvents()
	_, err = p.SetStock(to)
	require.NoError(t, err)
	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	return events[0].(*catalog.ProductStockChangedEvent)
}

func TestStockAlertHandler_Handle(t *testing.T) {
	logger := zaptest.NewLogger(t)
	notifier := NewMockStockAlertNotifier()
	handler := NewStockAlertHandler(logger).WithNotifier(notifier)
	ctx := context.Background()

	t.Run("entering the low band alerts", func(t *testing.T) {
		notifier.Reset()
		event := stockChange(t, 40, 6)

		require.NoError(t, handler.Handle(ctx, event))

		alerts := notifier.GetAlerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, AlertTypeLowStock, alerts[0].AlertType)
		assert.Equal(t, event.SellerID.String(), alerts[0].SellerID)
		assert.Equal(t, event.AggregateID().String(), alerts[0].ProductID)
		assert.Equal(t, 6, alerts[0].NewStock)
		assert.Equal(t, catalog.LowStockThreshold, alerts[0].Threshold)
	})

	t.Run("running out alerts", func(t *testing.T) {
		notifier.Reset()
		require.NoError(t, handler.Handle(ctx, stockChange(t, 4, 0)))

		alerts := notifier.GetAlerts()
		require.Len(t, alerts, 1)
		assert.Equal(t, AlertTypeOutOfStock, alerts[0].AlertType)
	})

	t.Run("moves inside the low band stay quiet", func(t *testing.T) {
		notifier.Reset()
		require.NoError(t, handler.Handle(ctx, stockChange(t, 8, 3)))
		require.NoError(t, handler.Handle(ctx, stockChange(t, 3, 50)))
		assert.Empty(t, notifier.GetAlerts())
	})

	t.Run("returns error for wrong event type", func(t *testing.T) {
		wrongEvent := &catalog.ProductDeactivatedEvent{}
		wrongEvent.Type = catalog.EventTypeProductDeactivated

		err := handler.Handle(ctx, wrongEvent)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected event type")
	})
}

func TestStockAlertHandler_EventTypes(t *testing.T) {
	handler := NewStockAlertHandler(zap.NewNop())

	eventTypes := handler.EventTypes()
	assert.Equal(t, []string{catalog.EventTypeProductStockChanged}, eventTypes)
}

func TestLoggingStockAlertNotifier_SendAlert(t *testing.T) {
	notifier := NewLoggingStockAlertNotifier(zaptest.NewLogger(t))

	err := notifier.SendAlert(context.Background(), StockAlert{
		SellerID:  uuid.New().String(),
		ProductID: uuid.New().String(),
		NewStock:  0,
		AlertType: AlertTypeOutOfStock,
	})
	assert.NoError(t, err)
}
