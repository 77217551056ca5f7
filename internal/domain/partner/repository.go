package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// BuyerProfileRepository defines persistence for buyer profiles
type BuyerProfileRepository interface {
	Create(ctx context.Context, profile *BuyerProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*BuyerProfile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	// ExistsByCompanyReg reports whether any profile holds the registration.
	// When verifiedOnly is set, only profiles of verified users count.
	ExistsByCompanyReg(ctx context.Context, companyReg string, verifiedOnly bool) (bool, error)
}

// SellerProfileRepository defines persistence for seller profiles
type SellerProfileRepository interface {
	Create(ctx context.Context, profile *SellerProfile) error
	Update(ctx context.Context, profile *SellerProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*SellerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*SellerProfile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	ExistsByStoreReg(ctx context.Context, storeReg string, verifiedOnly bool) (bool, error)
	// List returns a page of seller profiles, newest first
	List(ctx context.Context, page shared.Pagination) ([]*SellerProfile, int64, error)
	// Stats computes the derived counters of one seller
	Stats(ctx context.Context, sellerID uuid.UUID) (SellerStats, error)
	// StatsFor computes derived counters for several sellers at once
	StatsFor(ctx context.Context, sellerIDs []uuid.UUID) (map[uuid.UUID]SellerStats, error)
}
