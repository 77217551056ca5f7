package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// BusinessType describes how a seller operates
type BusinessType string

const (
	BusinessTypeManufacturer   BusinessType = "MANUFACTURER"
	BusinessTypeTradingCompany BusinessType = "TRADING COMPANY"
	BusinessTypeSupplier       BusinessType = "SUPPLIER"
	BusinessTypeDistributor    BusinessType = "DISTRIBUTOR"
)

// ParseBusinessType accepts either the enum value or its name form
// ("TRADING_COMPANY", "trading company").
func ParseBusinessType(s string) (BusinessType, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "_", " ")
	switch BusinessType(v) {
	case BusinessTypeManufacturer, BusinessTypeTradingCompany, BusinessTypeSupplier, BusinessTypeDistributor:
		return BusinessType(v), true
	}
	return "", false
}

// VerificationLevel is the badge shown for a seller
type VerificationLevel string

const (
	VerificationLevelBasic    VerificationLevel = "basic"
	VerificationLevelVerified VerificationLevel = "verified"
	VerificationLevelGold     VerificationLevel = "gold"
	VerificationLevelPremium  VerificationLevel = "premium"
)

// SellerProfile is the selling-side profile of a user.
// Activity counters (products, orders, reviews, views...) are not stored here;
// they are computed from the owning tables when the profile is read, see SellerStats.
type SellerProfile struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID
	StoreName      string
	StoreReg       string
	StoreAddress   string
	Description    string
	BusinessType   BusinessType
	LogoURL        string
	CoverImageURL  string
	IsVerified     bool
	IsGoldSupplier bool
	IsPremium      bool
	SuccessRate    float64
	Certifications []string
	ProductTypeIDs []uuid.UUID
	LastActive     time.Time
}

// NewSellerProfile creates a seller profile for a user
func NewSellerProfile(userID uuid.UUID, storeName, storeReg, storeAddress string) (*SellerProfile, error) {
	storeReg = strings.TrimSpace(storeReg)
	if storeReg == "" {
		return nil, shared.InvalidInput("storeReg is required for sellers")
	}
	now := time.Now()
	return &SellerProfile{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		StoreName:         strings.TrimSpace(storeName),
		StoreReg:          storeReg,
		StoreAddress:      strings.TrimSpace(storeAddress),
		BusinessType:      BusinessTypeSupplier,
		Certifications:    make([]string, 0),
		ProductTypeIDs:    make([]uuid.UUID, 0),
		LastActive:        now,
	}, nil
}

// ProfileUpdate carries optional profile changes. Nil fields are left untouched.
type ProfileUpdate struct {
	StoreName      *string
	StoreReg       *string
	Description    *string
	StoreAddress   *string
	BusinessType   *string
	LogoURL        *string
	CoverImageURL  *string
	Certifications []string
}

// ApplyUpdate applies a partial profile update. Unknown business types are ignored.
func (s *SellerProfile) ApplyUpdate(u ProfileUpdate) {
	if u.StoreName != nil {
		s.StoreName = strings.TrimSpace(*u.StoreName)
	}
	if u.StoreReg != nil && strings.TrimSpace(*u.StoreReg) != "" {
		s.StoreReg = strings.TrimSpace(*u.StoreReg)
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.StoreAddress != nil {
		s.StoreAddress = strings.TrimSpace(*u.StoreAddress)
	}
	if u.BusinessType != nil {
		if bt, ok := ParseBusinessType(*u.BusinessType); ok {
			s.BusinessType = bt
		}
	}
	if u.LogoURL != nil {
		s.LogoURL = *u.LogoURL
	}
	if u.CoverImageURL != nil {
		s.CoverImageURL = *u.CoverImageURL
	}
	if u.Certifications != nil {
		s.Certifications = append([]string(nil), u.Certifications...)
	}
	s.Touch()
}

// SetProductTypes replaces the product types the seller deals in
func (s *SellerProfile) SetProductTypes(ids []uuid.UUID) {
	s.ProductTypeIDs = dedupeIDs(ids)
	s.Touch()
}

// MarkActive records seller activity
func (s *SellerProfile) MarkActive(at time.Time) {
	s.LastActive = at
}

// VerificationLevel returns the highest badge held: premium > gold > verified > basic
func (s *SellerProfile) VerificationLevel() VerificationLevel {
	switch {
	case s.IsPremium:
		return VerificationLevelPremium
	case s.IsGoldSupplier:
		return VerificationLevelGold
	case s.IsVerified:
		return VerificationLevelVerified
	default:
		return VerificationLevelBasic
	}
}

// VerificationDate is the date the profile counts as verified from, if any
func (s *SellerProfile) VerificationDate() *time.Time {
	if !s.IsVerified {
		return nil
	}
	t := s.CreatedAt
	return &t
}


// SellerStats are the derived counters of a seller, computed on read
type SellerStats struct {
	TotalProducts  int64
	TotalOrders    int64
	PendingOrders  int64
	TotalInquiries int64
	ProductViews   int64
	UnreadMessages int64
	LowStockAlerts int64
	Rating         float64
	TotalReviews   int64
}
