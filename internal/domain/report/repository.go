package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ActivityRepository persists the seller activity feed
type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*Activity, error)
}

// SalesDataRepository persists the daily revenue rollup
type SalesDataRepository interface {
	// AddSale atomically adds revenue and orders to the seller's row for day
	AddSale(ctx context.Context, sellerID uuid.UUID, day time.Time, revenue decimal.Decimal, orders int) error
	// ListBetween returns rows with day in [from, to] ascending
	ListBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) ([]SalesData, error)
	// RevenueBetween sums revenue for days in [from, to)
	RevenueBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}
