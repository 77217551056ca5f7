package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReviewRepository implements the catalog ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// CreateReview stores a product review
func (r *GormReviewRepository) CreateReview(ctx context.Context, review *catalog.ProductReview) error {
	var model models.ProductReviewModel
	model.FromDomain(review)
	return r.db.WithContext(ctx).Create(&model).Error
}

const refreshRatingSQL = `UPDATE products SET
	rating = COALESCE((SELECT ROUND(AVG(rating), 1) FROM product_reviews WHERE product_id = ?), 0),
	review_count = (SELECT COUNT(*) FROM product_reviews WHERE product_id = ?)
WHERE id = ?`

// RefreshRating recomputes rating and review_count from the stored reviews in one statement
func (r *GormReviewRepository) RefreshRating(ctx context.Context, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(refreshRatingSQL, productID, productID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddFavorite saves a product for a user; saving twice is a no-op
func (r *GormReviewRepository) AddFavorite(ctx context.Context, f *catalog.Favorite) error {
	model := models.FavoriteModel{ID: f.ID, UserID: f.UserID, ProductID: f.ProductID, AddedAt: f.AddedAt}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

// RemoveFavorite deletes a saved product
func (r *GormReviewRepository) RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.FavoriteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ListFavoriteProductIDs returns the user's saved products, most recent first
func (r *GormReviewRepository) ListFavoriteProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := r.db.WithContext(ctx).
		Model(&models.FavoriteModel{}).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Pluck("product_id", &ids).Error
	return ids, err
}

// Ensure GormReviewRepository implements ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
