package inventory

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/inventory"
)

// Query defaults
const (
	DefaultLogLimit       = 50
	DefaultAlertThreshold = catalog.LowStockThreshold
)

// Reasons a stock update entry was skipped
const (
	SkipNotFound      = "not_found"
	SkipInvalidStock  = "invalid_stock"
	SkipMissingFields = "missing_fields"
)

// StockUpdateItem sets the stock of one product. ProductID is bound as text
// so a malformed id skips its entry instead of failing the batch.
type StockUpdateItem struct {
	ProductID string     `json:"productId"`
	Stock     *int       `json:"stock"`
	Reason    string     `json:"reason"`
}

// StockUpdateRequest is a batch of absolute stock levels
type StockUpdateRequest struct {
	Updates []StockUpdateItem `json:"updates"`
}

// UpdatedProduct is a product whose stock was written
type UpdatedProduct struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	OldStock int       `json:"oldStock"`
	NewStock int       `json:"newStock"`
	Change   int       `json:"change"`
}

// SkippedUpdate is an entry that was not applied and why
type SkippedUpdate struct {
	ProductID string `json:"productId,omitempty"`
	Reason    string `json:"reason"`
}

// StockUpdateResult reports a batch stock update
type StockUpdateResult struct {
	Message         string           `json:"message"`
	UpdatedProducts []UpdatedProduct `json:"updatedProducts"`
	Skipped         []SkippedUpdate  `json:"skipped"`
}

func newStockUpdateResult(updated []UpdatedProduct, skipped []SkippedUpdate) *StockUpdateResult {
	return &StockUpdateResult{
		Message:         fmt.Sprintf("Updated stock for %d products", len(updated)),
		UpdatedProducts: updated,
		Skipped:         skipped,
	}
}

// SummaryResponse is the stock position of a seller
type SummaryResponse struct {
	TotalProducts int64   `json:"totalProducts"`
	InStock       int64   `json:"inStock"`
	LowStock      int64   `json:"lowStock"`
	OutOfStock    int64   `json:"outOfStock"`
	TotalValue    float64 `json:"totalValue"`
}

func toSummaryResponse(s inventory.Summary) SummaryResponse {
	return SummaryResponse{
		TotalProducts: s.TotalProducts,
		InStock:       s.InStock,
		LowStock:      s.LowStock,
		OutOfStock:    s.OutOfStock,
		TotalValue:    math.Round(s.TotalValue*100) / 100,
	}
}

// AlertResponse is one low stock alert
type AlertResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SKU         *string   `json:"sku"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"minStock"`
	AlertLevel  string    `json:"alertLevel"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func toAlertResponse(p *catalog.Product, threshold int) AlertResponse {
	return AlertResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Stock:       p.Stock,
		MinStock:    threshold,
		AlertLevel:  string(catalog.AlertLevelFor(p.Stock)),
		LastUpdated: p.UpdatedAt,
	}
}

// LogResponse is one stock ledger row
type LogResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Change      int       `json:"change"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
}

func toLogResponses(entries []inventory.LogEntry) []LogResponse {
	out := make([]LogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogResponse{
			ID:          e.ID,
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Change:      e.Change,
			Reason:      e.Reason,
			Timestamp:   e.Timestamp,
		})
	}
	return out
}

// LogQuery filters the stock ledger
type LogQuery struct {
	Limit     int
	ProductID *uuid.UUID
}
