package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/report"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ActivityHandler writes the seller activity feed from marketplace events
type ActivityHandler struct {
	activities report.ActivityRepository
	logger     *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activities report.ActivityRepository, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *ActivityHandler) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		engagement.EventTypeInquiryReceived,
		engagement.EventTypeReviewReceived,
		engagement.EventTypeMessageReceived,
		catalog.EventTypeProductViewed,
	}
}

// Handle records one activity for the event's seller
func (h *ActivityHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	activity, err := h.toActivity(event)
	if err != nil {
		return err
	}
	if activity == nil {
		return nil
	}
	if err := h.activities.Create(ctx, activity); err != nil {
		h.logger.Error("Failed to record activity",
			zap.String("event_type", event.EventType()),
			zap.String("seller_id", activity.SellerID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *ActivityHandler) toActivity(event shared.DomainEvent) (*report.Activity, error) {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		id := e.AggregateID()
		return report.NewActivity(e.SellerID, report.ActivityOrder,
			fmt.Sprintf("New order %s", e.OrderNumber),
			fmt.Sprintf("%s placed an order of %d items worth %s", displayName(e.BuyerName), e.ItemCount, e.TotalAmount.StringFixed(2)),
			report.RelatedEntity{ID: &id, Name: e.OrderNumber, Type: report.EntityOrder},
		)
	case *engagement.InquiryReceivedEvent:
		related := report.RelatedEntity{ID: buyerRef(e.BuyerID), Name: e.BuyerName, Type: report.EntityBuyer}
		if e.ProductID != nil {
			related = report.RelatedEntity{ID: e.ProductID, Type: report.EntityProduct}
		}
		return report.NewActivity(e.SellerID, report.ActivityInquiry,
			fmt.Sprintf("New inquiry: %s", e.Subject),
			fmt.Sprintf("%s sent you an inquiry", displayName(e.BuyerName)),
			related,
		)
	case *engagement.ReviewReceivedEvent:
		return report.NewActivity(e.SellerID, report.ActivityReview,
			fmt.Sprintf("New %d-star review", e.Rating),
			fmt.Sprintf("%s reviewed your store", displayName(e.BuyerName)),
			report.RelatedEntity{ID: buyerRef(e.BuyerID), Name: e.BuyerName, Type: report.EntityBuyer},
		)
	case *engagement.MessageReceivedEvent:
		return report.NewActivity(e.SellerID, report.ActivityMessage,
			"New message",
			fmt.Sprintf("%s sent you a message", displayName(e.SenderName)),
			report.RelatedEntity{ID: buyerRef(e.SenderID), Name: e.SenderName, Type: report.EntityBuyer},
		)
	case *catalog.ProductViewedEvent:
		id := e.AggregateID()
		return report.NewActivity(e.SellerID, report.ActivityView,
			fmt.Sprintf("%s was viewed", e.ProductName),
			fmt.Sprintf("%s viewed your product", displayName(e.ViewerName)),
			report.RelatedEntity{ID: &id, Name: e.ProductName, Type: report.EntityProduct},
		)
	}
	h.logger.Debug("Ignoring event without activity", zap.String("event_type", event.EventType()))
	return nil, nil
}

func displayName(name string) string {
	if name == "" {
		return "A buyer"
	}
	return name
}

func buyerRef(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

var _ shared.EventHandler = (*ActivityHandler)(nil)
