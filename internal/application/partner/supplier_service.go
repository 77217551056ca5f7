package partner

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Profile update errors
var (
	ErrStoreRegTaken = shared.InvalidInput("Store registration already exists")
	ErrEmailTaken    = shared.InvalidInput("Email already registered and verified.")
)

// SupplierService serves the supplier directory and the seller's own profile
type SupplierService struct {
	sellers  partner.SellerProfileRepository
	users    identity.UserRepository
	taxonomy catalog.TaxonomyRepository
	reviews  engagement.SupplierReviewRepository
	access   *SellerAccess
	txScope  txn.TransactionScope
	logger   *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	sellers partner.SellerProfileRepository,
	users identity.UserRepository,
	taxonomy catalog.TaxonomyRepository,
	reviews engagement.SupplierReviewRepository,
	txScope txn.TransactionScope,
	logger *zap.Logger,
) *SupplierService {
	return &SupplierService{
		sellers:  sellers,
		users:    users,
		taxonomy: taxonomy,
		reviews:  reviews,
		access:   NewSellerAccess(sellers),
		txScope:  txScope,
		logger:   logger,
	}
}

// List returns a page of the supplier directory
func (s *SupplierService) List(ctx context.Context, q SupplierListQuery) (*SupplierListResponse, error) {
	page := shared.NewPagination(q.Page, q.PerPage, DefaultSupplierPageSize)

	profiles, total, err := s.sellers.List(ctx, page)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	stats, err := s.sellers.StatsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	names, err := s.taxonomyNames(ctx, profiles...)
	if err != nil {
		return nil, err
	}

	suppliers := make([]SupplierResponse, 0, len(profiles))
	for _, p := range profiles {
		user, err := s.owner(ctx, p)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, toSupplierResponse(p, user, stats[p.ID], names[p.ID]))
	}

	return &SupplierListResponse{
		Suppliers: suppliers,
		Pagination: PaginationInfo{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: shared.TotalPages(total, page.Limit),
		},
	}, nil
}

// Get returns one supplier with its most recent reviews
func (s *SupplierService) Get(ctx context.Context, sellerID uuid.UUID) (*SupplierDetailResponse, error) {
	profile, err := s.access.Seller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.project(ctx, profile)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.RecentBySeller(ctx, profile.ID, RecentReviewsLimit)
	if err != nil {
		return nil, err
	}
	return &SupplierDetailResponse{
		SupplierResponse: *supplier,
		Reviews:          toSupplierReviewResponses(reviews),
	}, nil
}

// UpdateProfile applies a partial storefront update to a seller the user owns
func (s *SupplierService) UpdateProfile(ctx context.Context, userID, sellerID uuid.UUID, req UpdateProfileRequest) (*SupplierResponse, error) {
	profile, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}

	profile.ApplyUpdate(partner.ProfileUpdate{
		StoreName:      req.StoreName,
		Description:    req.Description,
		StoreAddress:   req.StoreAddress,
		BusinessType:   req.BusinessType,
		LogoURL:        req.LogoURL,
		CoverImageURL:  req.CoverImageURL,
		Certifications: req.Certifications,
	})
	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		return repos.SellerProfiles().Update(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Seller profile updated", zap.String("seller_id", profile.ID.String()))
	return s.project(ctx, profile)
}

// BusinessProfile returns the business profile of a seller the user owns
func (s *SupplierService) BusinessProfile(ctx context.Context, userID, sellerID uuid.UUID) (*BusinessProfileResponse, error) {
	profile, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	return s.businessProfile(ctx, profile)
}

// UpdateBusinessProfile updates the business profile and the owner's contact details together
func (s *SupplierService) UpdateBusinessProfile(ctx context.Context, userID, sellerID uuid.UUID, req UpdateBusinessProfileRequest) (*BusinessProfileResponse, error) {
	profile, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		user, err := repos.Users().FindByID(ctx, profile.UserID)
		if err != nil {
			return err
		}

		if req.Email != nil {
			email, err := identity.NormalizeEmail(*req.Email)
			if err != nil {
				return err
			}
			if email != user.Email {
				taken, err := repos.Users().ExistsVerifiedByEmail(ctx, email)
				if err != nil {
					return err
				}
				if taken {
					return ErrEmailTaken
				}
			}
		}
		if err := user.UpdateContactDetails(identity.ContactUpdate{
			ContactPerson: req.ContactPerson,
			Email:         req.Email,
			Phone:         req.Phone,
		}); err != nil {
			return err
		}

		if req.BusinessRegistration != nil {
			storeReg := strings.TrimSpace(*req.BusinessRegistration)
			if storeReg != "" && storeReg != profile.StoreReg {
				taken, err := repos.SellerProfiles().ExistsByStoreReg(ctx, storeReg, false)
				if err != nil {
					return err
				}
				if taken {
					return ErrStoreRegTaken
				}
			}
		}
		profile.ApplyUpdate(partner.ProfileUpdate{
			StoreName:      req.BusinessName,
			StoreReg:       req.BusinessRegistration,
			Description:    req.Description,
			StoreAddress:   req.Address,
			BusinessType:   req.BusinessType,
			LogoURL:        req.LogoURL,
			CoverImageURL:  req.CoverImageURL,
			Certifications: req.Certifications,
		})

		if req.ProductTypes != nil {
			types, err := repos.Taxonomy().FindProductTypesByNames(ctx, req.ProductTypes)
			if err != nil {
				return err
			}
			ids := make([]uuid.UUID, len(types))
			for i, pt := range types {
				ids[i] = pt.ID
			}
			profile.SetProductTypes(ids)
		}

		if err := repos.Users().Update(ctx, user); err != nil {
			return err
		}
		return repos.SellerProfiles().Update(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Business profile updated", zap.String("seller_id", profile.ID.String()))
	return s.businessProfile(ctx, profile)
}

// VerificationStatus returns the badges held by a seller
func (s *SupplierService) VerificationStatus(ctx context.Context, sellerID uuid.UUID) (*VerificationStatusResponse, error) {
	profile, err := s.access.Seller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	status := toVerificationStatus(profile)
	return &status, nil
}

func (s *SupplierService) project(ctx context.Context, profile *partner.SellerProfile) (*SupplierResponse, error) {
	stats, err := s.sellers.Stats(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	names, err := s.taxonomyNames(ctx, profile)
	if err != nil {
		return nil, err
	}
	user, err := s.owner(ctx, profile)
	if err != nil {
		return nil, err
	}
	resp := toSupplierResponse(profile, user, stats, names[profile.ID])
	return &resp, nil
}

func (s *SupplierService) businessProfile(ctx context.Context, profile *partner.SellerProfile) (*BusinessProfileResponse, error) {
	stats, err := s.sellers.Stats(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	names, err := s.taxonomyNames(ctx, profile)
	if err != nil {
		return nil, err
	}
	user, err := s.owner(ctx, profile)
	if err != nil {
		return nil, err
	}
	resp := toBusinessProfileResponse(profile, user, stats, names[profile.ID])
	return &resp, nil
}

// owner loads the user behind a profile. A missing user yields nil so the profile still renders.
func (s *SupplierService) owner(ctx context.Context, profile *partner.SellerProfile) (*identity.User, error) {
	user, err := s.users.FindByID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Seller profile without user", zap.String("seller_id", profile.ID.String()))
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// taxonomyNames resolves product type and category names for several profiles with two lookups
func (s *SupplierService) taxonomyNames(ctx context.Context, profiles ...*partner.SellerProfile) (map[uuid.UUID]taxonomyNames, error) {
	result := make(map[uuid.UUID]taxonomyNames, len(profiles))

	var ids []uuid.UUID
	for _, p := range profiles {
		ids = append(ids, p.ProductTypeIDs...)
	}
	if len(ids) == 0 {
		for _, p := range profiles {
			result[p.ID] = resolveTaxonomyNames(nil, nil)
		}
		return result, nil
	}

	types, err := s.taxonomy.FindProductTypesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.ProductType, len(types))
	for _, pt := range types {
		byID[pt.ID] = pt
	}

	categories, err := s.taxonomy.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	for _, p := range profiles {
		owned := make([]*catalog.ProductType, 0, len(p.ProductTypeIDs))
		for _, id := range p.ProductTypeIDs {
			if pt, ok := byID[id]; ok {
				owned = append(owned, pt)
			}
		}
		result[p.ID] = resolveTaxonomyNames(owned, categoryNames)
	}
	return result, nil
}
