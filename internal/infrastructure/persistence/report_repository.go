package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/report"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends one activity to the seller feed
func (r *GormActivityRepository) Create(ctx context.Context, a *report.Activity) error {
	return r.db.WithContext(ctx).Create(models.ActivityModelFromDomain(a)).Error
}

// ListBySeller returns the newest activities first
func (r *GormActivityRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*report.Activity, error) {
	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).Order("created_at DESC, id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.ActivityModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*report.Activity, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// GormSalesDataRepository implements SalesDataRepository using GORM
type GormSalesDataRepository struct {
	db *gorm.DB
}

// NewGormSalesDataRepository creates a new GormSalesDataRepository
func NewGormSalesDataRepository(db *gorm.DB) *GormSalesDataRepository {
	return &GormSalesDataRepository{db: db}
}

// AddSale adds revenue and orders to the seller's row for day with a single upsert
func (r *GormSalesDataRepository) AddSale(ctx context.Context, sellerID uuid.UUID, day time.Time, revenue decimal.Decimal, orders int) error {
	row := models.SalesDataModel{
		ID:         uuid.New(),
		SellerID:   sellerID,
		Date:       report.DayOf(day),
		Revenue:    revenue.Round(2),
		OrderCount: orders,
		CreatedAt:  time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "seller_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]any{
				"revenue":     gorm.Expr("sales_data.revenue + excluded.revenue"),
				"order_count": gorm.Expr("sales_data.order_count + excluded.order_count"),
			}),
		}).
		Create(&row).Error
}

// ListBetween returns rows with day in [from, to] ascending
func (r *GormSalesDataRepository) ListBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) ([]report.SalesData, error) {
	var rows []models.SalesDataModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND date >= ? AND date <= ?", sellerID, report.DayOf(from), report.DayOf(to)).
		Order("date").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]report.SalesData, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// RevenueBetween sums revenue for days in [from, to)
func (r *GormSalesDataRepository) RevenueBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.SalesDataModel{}).
		Select("COALESCE(SUM(revenue), 0) AS total").
		Where("seller_id = ? AND date >= ? AND date < ?", sellerID, report.DayOf(from), report.DayOf(to)).
		Scan(&row).Error
	return row.Total, err
}

// Ensure the repositories implement their domain interfaces
var (
	_ report.ActivityRepository  = (*GormActivityRepository)(nil)
	_ report.SalesDataRepository = (*GormSalesDataRepository)(nil)
)
