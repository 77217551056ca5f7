package inventory

import (
	"context"
	"fmt"

	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Alert types
const (
	AlertTypeLowStock   = "low_stock"
	AlertTypeOutOfStock = "out_of_stock"
)

// StockAlertNotifier is the interface for sending stock alerts
type StockAlertNotifier interface {
	// SendAlert sends a stock alert notification
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a product whose stock dropped into the low or empty band
type StockAlert struct {
	SellerID  string `json:"seller_id"`
	ProductID string `json:"product_id"`
	OldStock  int    `json:"old_stock"`
	NewStock  int    `json:"new_stock"`
	Threshold int    `json:"threshold"`
	AlertType string `json:"alert_type"`
}

// StockAlertHandler handles ProductStockChanged events and raises an alert
// when a product crosses into the low stock band or runs out
type StockAlertHandler struct {
	logger    *zap.Logger
	notifier  StockAlertNotifier
	threshold int
}

// NewStockAlertHandler creates a new handler for stock change events
func NewStockAlertHandler(logger *zap.Logger) *StockAlertHandler {
	return &StockAlertHandler{
		logger:    logger,
		threshold: catalog.LowStockThreshold,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockAlertHandler) WithNotifier(notifier StockAlertNotifier) *StockAlertHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockAlertHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductStockChanged}
}

// Handle processes a ProductStockChangedEvent
func (h *StockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*catalog.ProductStockChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", catalog.EventTypeProductStockChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			catalog.EventTypeProductStockChanged, event.EventType())
	}

	alertType, raise := h.classify(changed.OldStock, changed.NewStock)
	if !raise {
		return nil
	}

	alert := StockAlert{
		SellerID:  changed.SellerID.String(),
		ProductID: changed.AggregateID().String(),
		OldStock:  changed.OldStock,
		NewStock:  changed.NewStock,
		Threshold: h.threshold,
		AlertType: alertType,
	}

	h.logger.Warn("stock below threshold detected",
		zap.String("seller_id", alert.SellerID),
		zap.String("product_id", alert.ProductID),
		zap.Int("old_stock", alert.OldStock),
		zap.Int("new_stock", alert.NewStock),
	)

	if h.notifier != nil {
		// Notification failure does not fail the stock change
		if err := h.notifier.SendAlert(ctx, alert); err != nil {
			h.logger.Error("failed to send stock alert notification",
				zap.String("product_id", alert.ProductID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// classify reports the alert raised by a stock move. Only moves that enter a
// worse band alert, so repeated updates inside the low band stay quiet.
func (h *StockAlertHandler) classify(oldStock, newStock int) (string, bool) {
	switch {
	case newStock == 0 && oldStock > 0:
		return AlertTypeOutOfStock, true
	case newStock > 0 && newStock <= h.threshold && oldStock > h.threshold:
		return AlertTypeLowStock, true
	}
	return "", false
}

var _ shared.EventHandler = (*StockAlertHandler)(nil)

// LoggingStockAlertNotifier is a notifier that only logs alerts
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(ctx context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("seller_id", alert.SellerID),
		zap.String("product_id", alert.ProductID),
		zap.Int("new_stock", alert.NewStock),
		zap.Int("threshold", alert.Threshold),
	)
	return nil
}
