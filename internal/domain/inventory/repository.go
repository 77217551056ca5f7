package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LogRepository persists the stock ledger
type LogRepository interface {
	Append(ctx context.Context, logs ...*Log) error
	// ListBySeller returns the newest rows first, optionally for one product
	ListBySeller(ctx context.Context, sellerID uuid.UUID, productID *uuid.UUID, limit int) ([]LogEntry, error)
	// NetChangeBySellerBetween sums Change for rows in [from, to)
	NetChangeBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error)
	// Summary computes stock position counts for the seller's active products
	Summary(ctx context.Context, sellerID uuid.UUID) (Summary, error)
}
