package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInventoryLogRepository implements the stock ledger using GORM
type GormInventoryLogRepository struct {
	db *gorm.DB
}

// NewGormInventoryLogRepository creates a new GormInventoryLogRepository
func NewGormInventoryLogRepository(db *gorm.DB) *GormInventoryLogRepository {
	return &GormInventoryLogRepository{db: db}
}

// Append writes ledger rows; it never updates existing ones
func (r *GormInventoryLogRepository) Append(ctx context.Context, logs ...*inventory.Log) error {
	if len(logs) == 0 {
		return nil
	}
	rows := make([]*models.InventoryLogModel, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, models.InventoryLogModelFromDomain(l))
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListBySeller returns the seller's newest ledger rows with product names
func (r *GormInventoryLogRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, productID *uuid.UUID, limit int) ([]inventory.LogEntry, error) {
	query := r.db.WithContext(ctx).
		Table("inventory_logs").
		Select("inventory_logs.*, products.name AS product_name").
		Joins("JOIN products ON products.id = inventory_logs.product_id").
		Where("products.seller_id = ?", sellerID)
	if productID != nil {
		query = query.Where("inventory_logs.product_id = ?", *productID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []struct {
		models.InventoryLogModel
		ProductName string
	}
	if err := query.Order("inventory_logs.timestamp DESC, inventory_logs.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]inventory.LogEntry, 0, len(rows))
	for i := range rows {
		out = append(out, inventory.LogEntry{Log: rows[i].ToDomain(), ProductName: rows[i].ProductName})
	}
	return out, nil
}

// NetChangeBySellerBetween sums the ledger deltas of the seller's products in [from, to)
func (r *GormInventoryLogRepository) NetChangeBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	var net int64
	err := r.db.WithContext(ctx).
		Table("inventory_logs").
		Select("COALESCE(SUM(inventory_logs.change), 0)").
		Joins("JOIN products ON products.id = inventory_logs.product_id").
		Where("products.seller_id = ?", sellerID).
		Where("inventory_logs.timestamp >= ? AND inventory_logs.timestamp < ?", from, to).
		Scan(&net).Error
	return net, err
}

// Summary computes stock position counts for the seller's active products
func (r *GormInventoryLogRepository) Summary(ctx context.Context, sellerID uuid.UUID) (inventory.Summary, error) {
	var row struct {
		TotalProducts int64
		InStock       int64
		LowStock      int64
		OutOfStock    int64
		TotalValue    float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select(`COUNT(*) AS total_products,
			COALESCE(SUM(CASE WHEN stock > ? THEN 1 ELSE 0 END), 0) AS in_stock,
			COALESCE(SUM(CASE WHEN stock > 0 AND stock <= ? THEN 1 ELSE 0 END), 0) AS low_stock,
			COALESCE(SUM(CASE WHEN stock <= 0 THEN 1 ELSE 0 END), 0) AS out_of_stock,
			COALESCE(SUM(price * stock), 0) AS total_value`,
			catalog.LowStockThreshold, catalog.LowStockThreshold).
		Where("seller_id = ? AND is_active = ?", sellerID, true).
		Scan(&row).Error
	if err != nil {
		return inventory.Summary{}, err
	}
	return inventory.Summary{
		TotalProducts: row.TotalProducts,
		InStock:       row.InStock,
		LowStock:      row.LowStock,
		OutOfStock:    row.OutOfStock,
		TotalValue:    roundTo(row.TotalValue, 2),
	}, nil
}

// Ensure GormInventoryLogRepository implements LogRepository
var _ inventory.LogRepository = (*GormInventoryLogRepository)(nil)
