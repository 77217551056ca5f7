package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create stores an order together with its items
func (r *GormOrderRepository) Create(ctx context.Context, o *trade.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateStatus saves the status guarded by the loaded version.
// The aggregate already carries the incremented version.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, o *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version-1).
		UpdateColumns(map[string]any{
			"status":     o.Status,
			"version":    o.Version,
			"updated_at": o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds an order by ID with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.withItems(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// ListByBuyer returns a page of the buyer's orders, newest first
func (r *GormOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, page shared.Pagination) ([]*trade.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("buyer_id = ?", buyerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.OrderModel
	if err := r.withItems(ctx).
		Where("buyer_id = ?", buyerID).
		Order("order_date DESC, id").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainOrders(rows), total, nil
}

// RecentBySeller returns the seller's latest orders
func (r *GormOrderRepository) RecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*trade.Order, error) {
	var rows []models.OrderModel
	if err := r.withItems(ctx).
		Where("seller_id = ?", sellerID).
		Order("order_date DESC, id").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// CountBySellerBetween counts orders created in [from, to)
func (r *GormOrderRepository) CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("seller_id = ? AND order_date >= ? AND order_date < ?", sellerID, from, to).
		Count(&count).Error
	return count, err
}

// HasCompletedOrder reports whether buyer has a completed order at seller,
// restricted to orderID when given
func (r *GormOrderRepository) HasCompletedOrder(ctx context.Context, buyerID, sellerID uuid.UUID, orderID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("buyer_id = ? AND seller_id = ? AND status = ?", buyerID, sellerID, trade.OrderStatusCompleted)
	if orderID != nil {
		query = query.Where("id = ?", *orderID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.created_at, order_items.id")
	})
}

func toDomainOrders(rows []models.OrderModel) []*trade.Order {
	out := make([]*trade.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
