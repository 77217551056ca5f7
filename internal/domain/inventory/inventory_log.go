package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// Standard reasons written by the system
const (
	ReasonManualUpdate  = "Manual update"
	ReasonProductUpdate = "Product update"
)

// Log is one append-only row of the stock ledger.
// Change is the signed delta (new - old) applied to the product's stock.
type Log struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Change    int
	Reason    string
	Timestamp time.Time
}

// NewLog creates a ledger row. A zero change records a stock count that
// confirmed the current level.
func NewLog(productID uuid.UUID, change int, reason string) (*Log, error) {
	if productID == uuid.Nil {
		return nil, shared.InvalidInput("Inventory log requires a product")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = ReasonManualUpdate
	}
	return &Log{
		ID:        uuid.New(),
		ProductID: productID,
		Change:    change,
		Reason:    reason,
		Timestamp: time.Now(),
	}, nil
}

// IsIncrease reports whether the row added stock
func (l *Log) IsIncrease() bool {
	return l.Change > 0
}

// OrderConfirmedReason is the ledger reason for the stock deducted by an order
func OrderConfirmedReason(orderNumber string) string {
	return "Order " + orderNumber + " confirmed"
}

// OrderCancelledReason is the ledger reason for the stock restored by a cancelled order
func OrderCancelledReason(orderNumber string) string {
	return "Order " + orderNumber + " cancelled"
}

// LogEntry is the read model of a ledger row joined with its product
type LogEntry struct {
	Log
	ProductName string
}

// Summary aggregates a seller's stock position
type Summary struct {
	TotalProducts int64
	InStock       int64
	LowStock      int64
	OutOfStock    int64
	TotalValue    float64
}
