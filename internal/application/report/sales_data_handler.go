package report

import (
	"context"
	"fmt"

	"github.com/swiftsupply/backend/internal/domain/report"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// SalesDataHandler adds placed orders to the seller's daily sales rollup
type SalesDataHandler struct {
	sales  report.SalesDataRepository
	logger *zap.Logger
}

// NewSalesDataHandler creates a new SalesDataHandler
func NewSalesDataHandler(sales report.SalesDataRepository, logger *zap.Logger) *SalesDataHandler {
	return &SalesDataHandler{sales: sales, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *SalesDataHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced}
}

// Handle upserts the day of the order with its total and one order
func (h *SalesDataHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*trade.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s", trade.EventTypeOrderPlaced, event.EventType())
	}

	day := report.DayOf(placed.OccurredAt())
	if err := h.sales.AddSale(ctx, placed.SellerID, day, placed.TotalAmount, 1); err != nil {
		h.logger.Error("Failed to update sales data",
			zap.String("order_number", placed.OrderNumber),
			zap.String("seller_id", placed.SellerID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*SalesDataHandler)(nil)
