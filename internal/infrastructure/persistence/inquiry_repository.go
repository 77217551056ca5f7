package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInquiryRepository implements InquiryRepository using GORM
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewGormInquiryRepository creates a new GormInquiryRepository
func NewGormInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

// Create stores a new inquiry
func (r *GormInquiryRepository) Create(ctx context.Context, i *engagement.Inquiry) error {
	var model models.InquiryModel
	model.FromDomain(i)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update saves status, read flag and response of an inquiry
func (r *GormInquiryRepository) Update(ctx context.Context, i *engagement.Inquiry) error {
	var model models.InquiryModel
	model.FromDomain(i)
	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindBySellerAndID returns the inquiry only when addressed to the seller
func (r *GormInquiryRepository) FindBySellerAndID(ctx context.Context, sellerID, id uuid.UUID) (*engagement.Inquiry, error) {
	var model models.InquiryModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&model).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return model.ToDomain(), nil
}

// List returns the seller's inquiries newest first, joined with buyer and product names
func (r *GormInquiryRepository) List(ctx context.Context, filter engagement.InquiryFilter) ([]engagement.InquiryListing, error) {
	query := r.db.WithContext(ctx).
		Table("inquiries").
		Select(`inquiries.*,
			TRIM(COALESCE(users.first_name, '') || ' ' || COALESCE(users.last_name, '')) AS buyer_name,
			COALESCE(users.email, '') AS buyer_email,
			COALESCE(products.name, '') AS product_name`).
		Joins("LEFT JOIN users ON users.id = inquiries.buyer_id").
		Joins("LEFT JOIN products ON products.id = inquiries.product_id").
		Where("inquiries.seller_id = ?", filter.SellerID)
	if filter.Status != nil {
		query = query.Where("inquiries.status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []struct {
		models.InquiryModel
		BuyerName   string
		BuyerEmail  string
		ProductName string
	}
	if err := query.Order("inquiries.created_at DESC, inquiries.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]engagement.InquiryListing, 0, len(rows))
	for i := range rows {
		out = append(out, engagement.InquiryListing{
			Inquiry:     rows[i].InquiryModel.ToDomain(),
			BuyerName:   rows[i].BuyerName,
			BuyerEmail:  rows[i].BuyerEmail,
			ProductName: rows[i].ProductName,
		})
	}
	return out, nil
}

// CountBySellerBetween counts inquiries received in [from, to)
func (r *GormInquiryRepository) CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InquiryModel{}).
		Where("seller_id = ? AND created_at >= ? AND created_at < ?", sellerID, from, to).
		Count(&count).Error
	return count, err
}

// GormSupplierReviewRepository implements SupplierReviewRepository using GORM
type GormSupplierReviewRepository struct {
	db *gorm.DB
}

// NewGormSupplierReviewRepository creates a new GormSupplierReviewRepository
func NewGormSupplierReviewRepository(db *gorm.DB) *GormSupplierReviewRepository {
	return &GormSupplierReviewRepository{db: db}
}

// Create stores a seller review
func (r *GormSupplierReviewRepository) Create(ctx context.Context, review *engagement.SupplierReview) error {
	var model models.SupplierReviewModel
	model.FromDomain(review)
	return r.db.WithContext(ctx).Create(&model).Error
}

// RecentBySeller returns the seller's latest reviews
func (r *GormSupplierReviewRepository) RecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*engagement.SupplierReview, error) {
	var rows []models.SupplierReviewModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC, id").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*engagement.SupplierReview, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}

// GormProductViewRepository implements ProductViewRepository using GORM
type GormProductViewRepository struct {
	db *gorm.DB
}

// NewGormProductViewRepository creates a new GormProductViewRepository
func NewGormProductViewRepository(db *gorm.DB) *GormProductViewRepository {
	return &GormProductViewRepository{db: db}
}

// Create records one product view
func (r *GormProductViewRepository) Create(ctx context.Context, v *engagement.ProductView) error {
	return r.db.WithContext(ctx).Create(models.ProductViewModelFromDomain(v)).Error
}

// CountBySellerBetween counts views of the seller's products in [from, to)
func (r *GormProductViewRepository) CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductViewModel{}).
		Joins("JOIN products ON products.id = product_views.product_id").
		Where("products.seller_id = ?", sellerID).
		Where("product_views.viewed_at >= ? AND product_views.viewed_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// Ensure the repositories implement their domain interfaces
var (
	_ engagement.InquiryRepository        = (*GormInquiryRepository)(nil)
	_ engagement.SupplierReviewRepository = (*GormSupplierReviewRepository)(nil)
	_ engagement.ProductViewRepository    = (*GormProductViewRepository)(nil)
)
