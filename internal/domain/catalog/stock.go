package catalog

// StockStatus is the derived availability label of a product
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in-stock"
	StockStatusLowStock   StockStatus = "low-stock"
	StockStatusOutOfStock StockStatus = "out-of-stock"
)

// Stock thresholds used by every listing, summary and alert.
const (
	// LowStockThreshold is the highest stock level still counted as low
	LowStockThreshold = 10
	// DefaultMinStock is the reorder level reported to sellers
	DefaultMinStock = 10
)

// StockStatusFor classifies a stock level: 0 is out of stock, 1..10 is low, above 10 is in stock
func StockStatusFor(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockStatusOutOfStock
	case stock <= LowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// AlertLevel is the severity of a low stock alert
type AlertLevel string

const (
	AlertLevelCritical AlertLevel = "critical"
	AlertLevelWarning  AlertLevel = "warning"
	AlertLevelLow      AlertLevel = "low"
)

// AlertLevelFor returns critical for empty stock, warning up to 5 units and low otherwise
func AlertLevelFor(stock int) AlertLevel {
	switch {
	case stock <= 0:
		return AlertLevelCritical
	case stock <= 5:
		return AlertLevelWarning
	default:
		return AlertLevelLow
	}
}
