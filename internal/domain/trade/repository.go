package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// OrderRepository defines persistence for orders and their items
type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	// UpdateStatus saves the status guarded by the loaded version
	UpdateStatus(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, page shared.Pagination) ([]*Order, int64, error)
	RecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*Order, error)
	// CountBySellerBetween counts orders created in [from, to)
	CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error)
	// HasCompletedOrder reports whether buyer has a completed order at seller (optionally a specific one)
	HasCompletedOrder(ctx context.Context, buyerID, sellerID uuid.UUID, orderID *uuid.UUID) (bool, error)
}
