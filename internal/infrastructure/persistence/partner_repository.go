package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBuyerProfileRepository implements BuyerProfileRepository using GORM
type GormBuyerProfileRepository struct {
	db *gorm.DB
}

// NewGormBuyerProfileRepository creates a new GormBuyerProfileRepository
func NewGormBuyerProfileRepository(db *gorm.DB) *GormBuyerProfileRepository {
	return &GormBuyerProfileRepository{db: db}
}

// Create stores the profile and its preferred categories
func (r *GormBuyerProfileRepository) Create(ctx context.Context, profile *partner.BuyerProfile) error {
	var model models.BuyerProfileModel
	model.FromDomain(profile)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		if len(profile.PreferredCategoryIDs) == 0 {
			return nil
		}
		links := make([]models.BuyerPreferredCategoryModel, 0, len(profile.PreferredCategoryIDs))
		for _, id := range profile.PreferredCategoryIDs {
			links = append(links, models.BuyerPreferredCategoryModel{BuyerProfileID: profile.ID, CategoryID: id})
		}
		return tx.Create(&links).Error
	})
}

// FindByUserID finds the buyer profile of a user
func (r *GormBuyerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.BuyerProfile, error) {
	var model models.BuyerProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	profile := model.ToDomain()

	if err := r.db.WithContext(ctx).
		Model(&models.BuyerPreferredCategoryModel{}).
		Where("buyer_profile_id = ?", model.ID).
		Pluck("category_id", &profile.PreferredCategoryIDs).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteByUserID removes the user's buyer profile, if any
func (r *GormBuyerProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.BuyerProfileModel{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("buyer_profile_id IN (?)", sub).Delete(&models.BuyerPreferredCategoryModel{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.BuyerProfileModel{}).Error
	})
}

// ExistsByCompanyReg reports whether any profile holds the registration
func (r *GormBuyerProfileRepository) ExistsByCompanyReg(ctx context.Context, companyReg string, verifiedOnly bool) (bool, error) {
	if companyReg == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.BuyerProfileModel{}).
		Where("buyer_profiles.company_reg = ?", companyReg)
	if verifiedOnly {
		query = query.
			Joins("JOIN users ON users.id = buyer_profiles.user_id").
			Where("users.is_verified = ?", true)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// GormSellerProfileRepository implements SellerProfileRepository using GORM
type GormSellerProfileRepository struct {
	db *gorm.DB
}

// NewGormSellerProfileRepository creates a new GormSellerProfileRepository
func NewGormSellerProfileRepository(db *gorm.DB) *GormSellerProfileRepository {
	return &GormSellerProfileRepository{db: db}
}

// Create stores the profile and its product type links
func (r *GormSellerProfileRepository) Create(ctx context.Context, profile *partner.SellerProfile) error {
	var model models.SellerProfileModel
	model.FromDomain(profile)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return replaceSellerProductTypes(tx, profile)
	})
}

// Update saves the profile and replaces its product type links
func (r *GormSellerProfileRepository) Update(ctx context.Context, profile *partner.SellerProfile) error {
	var model models.SellerProfileModel
	model.FromDomain(profile)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(&model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return replaceSellerProductTypes(tx, profile)
	})
}

func replaceSellerProductTypes(tx *gorm.DB, profile *partner.SellerProfile) error {
	if err := tx.Where("seller_profile_id = ?", profile.ID).Delete(&models.SellerProductTypeModel{}).Error; err != nil {
		return err
	}
	if len(profile.ProductTypeIDs) == 0 {
		return nil
	}
	links := make([]models.SellerProductTypeModel, 0, len(profile.ProductTypeIDs))
	for _, id := range profile.ProductTypeIDs {
		links = append(links, models.SellerProductTypeModel{SellerProfileID: profile.ID, ProductTypeID: id})
	}
	return tx.Create(&links).Error
}

// FindByID finds a seller profile by ID
func (r *GormSellerProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.SellerProfile, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUserID finds the seller profile of a user
func (r *GormSellerProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*partner.SellerProfile, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *GormSellerProfileRepository) findOne(ctx context.Context, query string, args ...any) (*partner.SellerProfile, error) {
	var model models.SellerProfileModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	profile := model.ToDomain()
	if err := r.db.WithContext(ctx).
		Model(&models.SellerProductTypeModel{}).
		Where("seller_profile_id = ?", model.ID).
		Pluck("product_type_id", &profile.ProductTypeIDs).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteByUserID removes the user's seller profile, if any
func (r *GormSellerProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.SellerProfileModel{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("seller_profile_id IN (?)", sub).Delete(&models.SellerProductTypeModel{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.SellerProfileModel{}).Error
	})
}

// ExistsByStoreReg reports whether any seller profile holds the registration
func (r *GormSellerProfileRepository) ExistsByStoreReg(ctx context.Context, storeReg string, verifiedOnly bool) (bool, error) {
	if storeReg == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.SellerProfileModel{}).
		Where("seller_profiles.store_reg = ?", storeReg)
	if verifiedOnly {
		query = query.
			Joins("JOIN users ON users.id = seller_profiles.user_id").
			Where("users.is_verified = ?", true)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// List returns a page of seller profiles, newest first
func (r *GormSellerProfileRepository) List(ctx context.Context, page shared.Pagination) ([]*partner.SellerProfile, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.SellerProfileModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SellerProfileModel
	if err := query.
		Order("created_at DESC, id").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	profiles := make([]*partner.SellerProfile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, rows[i].ToDomain())
	}
	return profiles, total, nil
}

// Stats computes the derived counters of one seller
func (r *GormSellerProfileRepository) Stats(ctx context.Context, sellerID uuid.UUID) (partner.SellerStats, error) {
	stats, err := r.StatsFor(ctx, []uuid.UUID{sellerID})
	if err != nil {
		return partner.SellerStats{}, err
	}
	return stats[sellerID], nil
}

type sellerCount struct {
	SellerID uuid.UUID
	N        int64
}

type sellerRating struct {
	SellerID uuid.UUID
	Avg      float64
	N        int64
}

// StatsFor computes derived counters for several sellers with one grouped
// query per counter.
func (r *GormSellerProfileRepository) StatsFor(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]partner.SellerStats, error) {
	out := make(map[uuid.UUID]partner.SellerStats, len(sellerIDs))
	if len(sellerIDs) == 0 {
		return out, nil
	}
	for _, id := range sellerIDs {
		out[id] = partner.SellerStats{}
	}
	db := r.db.WithContext(ctx)

	counters := []struct {
		query   *gorm.DB
		groupBy string
		apply   func(s *partner.SellerStats, n int64)
	}{
		{
			query: db.Model(&models.ProductModel{}).
				Select("seller_id, COUNT(*) AS n").
				Where("seller_id IN ? AND is_active = ?", sellerIDs, true),
			apply: func(s *partner.SellerStats, n int64) { s.TotalProducts = n },
		},
		{
			query: db.Model(&models.ProductModel{}).
				Select("seller_id, COALESCE(SUM(view_count), 0) AS n").
				Where("seller_id IN ?", sellerIDs),
			apply: func(s *partner.SellerStats, n int64) { s.ProductViews = n },
		},
		{
			query: db.Model(&models.ProductModel{}).
				Select("seller_id, COUNT(*) AS n").
				Where("seller_id IN ? AND is_active = ? AND stock <= ?", sellerIDs, true, catalog.LowStockThreshold),
			apply: func(s *partner.SellerStats, n int64) { s.LowStockAlerts = n },
		},
		{
			query: db.Model(&models.OrderModel{}).
				Select("seller_id, COUNT(*) AS n").
				Where("seller_id IN ?", sellerIDs),
			apply: func(s *partner.SellerStats, n int64) { s.TotalOrders = n },
		},
		{
			query: db.Model(&models.OrderModel{}).
				Select("seller_id, COUNT(*) AS n").
				Where("seller_id IN ? AND status = ?", sellerIDs, trade.OrderStatusPending),
			apply: func(s *partner.SellerStats, n int64) { s.PendingOrders = n },
		},
		{
			query: db.Model(&models.InquiryModel{}).
				Select("seller_id, COUNT(*) AS n").
				Where("seller_id IN ?", sellerIDs),
			apply: func(s *partner.SellerStats, n int64) { s.TotalInquiries = n },
		},
		{
			query: db.Table("chat_messages").
				Select("chat_rooms.seller_id AS seller_id, COUNT(*) AS n").
				Joins("JOIN chat_rooms ON chat_rooms.id = chat_messages.chat_room_id").
				Where("chat_rooms.seller_id IN ?", sellerIDs).
				Where("chat_messages.sender_id <> chat_rooms.seller_user_id").
				Where("chat_messages.is_read = ?", false),
			groupBy: "chat_rooms.seller_id",
			apply: func(s *partner.SellerStats, n int64) { s.UnreadMessages = n },
		},
	}

	for _, c := range counters {
		var rows []sellerCount
		groupBy := c.groupBy
		if groupBy == "" {
			groupBy = "seller_id"
		}
		if err := c.query.Group(groupBy).Scan(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			s := out[row.SellerID]
			c.apply(&s, row.N)
			out[row.SellerID] = s
		}
	}

	var ratings []sellerRating
	if err := db.Model(&models.SupplierReviewModel{}).
		Select("seller_id, AVG(rating) AS avg, COUNT(*) AS n").
		Where("seller_id IN ?", sellerIDs).
		Group("seller_id").
		Scan(&ratings).Error; err != nil {
		return nil, err
	}
	for _, row := range ratings {
		s := out[row.SellerID]
		s.Rating = roundTo(row.Avg, 1)
		s.TotalReviews = row.N
		out[row.SellerID] = s
	}

	return out, nil
}

// Ensure the repositories implement their domain interfaces
var (
	_ partner.BuyerProfileRepository  = (*GormBuyerProfileRepository)(nil)
	_ partner.SellerProfileRepository = (*GormSellerProfileRepository)(nil)
)
