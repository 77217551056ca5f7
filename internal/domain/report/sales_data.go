package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesData is the per-day revenue rollup of a seller.
// (SellerID, Date) is unique and rows are upserted additively.
type SalesData struct {
	SellerID   uuid.UUID
	Date       time.Time
	Revenue    decimal.Decimal
	OrderCount int
}

// DayOf truncates t to its UTC calendar day
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
