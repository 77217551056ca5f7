package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// Access errors returned to supplier routes
var (
	ErrSupplierNotFound = shared.NotFound("Supplier not found")
	ErrNotSupplierOwner = shared.Forbidden("Unauthorized access")
	ErrSellerUnverified = shared.Forbidden("Please verify your account first.")
)

// SellerAccess resolves the seller profile an authenticated user acts as
type SellerAccess struct {
	sellers partner.SellerProfileRepository
}

// NewSellerAccess creates a SellerAccess
func NewSellerAccess(sellers partner.SellerProfileRepository) *SellerAccess {
	return &SellerAccess{sellers: sellers}
}

// VerifiedSeller returns the user's seller profile, which must carry the verified badge
func (a *SellerAccess) VerifiedSeller(ctx context.Context, userID uuid.UUID) (*partner.SellerProfile, error) {
	profile, err := a.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrNotSupplierOwner
		}
		return nil, err
	}
	if !profile.IsVerified {
		return nil, ErrSellerUnverified
	}
	return profile, nil
}

// OwnedSeller loads a seller profile by id and checks that userID owns it
func (a *SellerAccess) OwnedSeller(ctx context.Context, userID, sellerID uuid.UUID) (*partner.SellerProfile, error) {
	profile, err := a.Seller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != userID {
		return nil, ErrNotSupplierOwner
	}
	return profile, nil
}

// Seller loads a seller profile by id
func (a *SellerAccess) Seller(ctx context.Context, sellerID uuid.UUID) (*partner.SellerProfile, error) {
	profile, err := a.sellers.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return profile, nil
}
