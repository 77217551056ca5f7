package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// BuyerType distinguishes retail buyers from wholesalers
type BuyerType string

const (
	BuyerTypeRetailer  BuyerType = "RETAILER"
	BuyerTypeWholesale BuyerType = "WHOLESALE"
)

// ParseBuyerType parses a case-insensitive buyer type
func ParseBuyerType(s string) (BuyerType, error) {
	switch BuyerType(strings.ToUpper(strings.TrimSpace(s))) {
	case BuyerTypeRetailer:
		return BuyerTypeRetailer, nil
	case BuyerTypeWholesale:
		return BuyerTypeWholesale, nil
	}
	return "", shared.InvalidInput("userType must be RETAILER or WHOLESALE")
}

// BuyerProfile holds the company details of a buyer account
type BuyerProfile struct {
	shared.BaseEntity
	UserID               uuid.UUID
	BuyerType            BuyerType
	CompanyName          string
	CompanyReg           string
	CompanyAddress       string
	PreferredCategoryIDs []uuid.UUID
}

// NewBuyerProfile creates a buyer profile for a user
func NewBuyerProfile(userID uuid.UUID, buyerType BuyerType, companyName, companyReg, companyAddress string) (*BuyerProfile, error) {
	companyReg = strings.TrimSpace(companyReg)
	if companyReg == "" {
		return nil, shared.InvalidInput("companyReg is required for buyers")
	}
	return &BuyerProfile{
		BaseEntity:     shared.NewBaseEntity(),
		UserID:         userID,
		BuyerType:      buyerType,
		CompanyName:    strings.TrimSpace(companyName),
		CompanyReg:     companyReg,
		CompanyAddress: strings.TrimSpace(companyAddress),
	}, nil
}

// SetPreferredCategories replaces the preferred category set
func (p *BuyerProfile) SetPreferredCategories(ids []uuid.UUID) {
	p.PreferredCategoryIDs = dedupeIDs(ids)
	p.Touch()
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
