package partner

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/partner"
)

// DefaultSupplierPageSize is the page size of the public supplier directory
const DefaultSupplierPageSize = 12

// RecentReviewsLimit is the number of reviews embedded in a supplier detail
const RecentReviewsLimit = 10

// dateLayout is the day-precision form used for supplier dates
const dateLayout = "2006-01-02"

// ContactInfo is the contact block of a supplier
type ContactInfo struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// SupplierResponse is the public projection of a seller profile
type SupplierResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Logo           string      `json:"logo"`
	CoverImage     string      `json:"coverImage"`
	Location       string      `json:"location"`
	Contact        ContactInfo `json:"contact"`
	Rating         float64     `json:"rating"`
	TotalReviews   int64       `json:"totalReviews"`
	Verified       bool        `json:"verified"`
	ProductTypes   []string    `json:"productTypes"`
	Categories     []string    `json:"categories"`
	BusinessType   string      `json:"businessType"`
	Certifications []string    `json:"certifications"`
	IsGoldSupplier bool        `json:"isGoldSupplier"`
	IsPremium      bool        `json:"isPremium"`
	TotalProducts  int64       `json:"totalProducts"`
	TotalOrders    int64       `json:"totalOrders"`
	SuccessRate    float64     `json:"successRate"`
	CreatedAt      *string     `json:"createdAt"`
	LastActive     *string     `json:"lastActive"`
}

// SupplierReviewResponse is a review embedded in the supplier detail
type SupplierReviewResponse struct {
	ID              uuid.UUID       `json:"id"`
	BuyerName       string          `json:"buyerName"`
	BuyerCountry    string          `json:"buyerCountry"`
	Rating          int             `json:"rating"`
	Comment         string          `json:"comment"`
	OrderValue      decimal.Decimal `json:"orderValue"`
	ProductCategory string          `json:"productCategory"`
	Date            time.Time       `json:"date"`
	Verified        bool            `json:"verified"`
}

// SupplierDetailResponse is a supplier with its latest reviews
type SupplierDetailResponse struct {
	SupplierResponse
	Reviews []SupplierReviewResponse `json:"reviews"`
}

// PaginationInfo describes the page of a supplier listing
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// SupplierListResponse is one page of the supplier directory
type SupplierListResponse struct {
	Suppliers  []SupplierResponse `json:"suppliers"`
	Pagination PaginationInfo     `json:"pagination"`
}

// SupplierListQuery holds the directory query parameters
type SupplierListQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// UpdateProfileRequest is a partial seller profile update
type UpdateProfileRequest struct {
	StoreName      *string  `json:"storeName"`
	Description    *string  `json:"description"`
	StoreAddress   *string  `json:"storeAddress"`
	BusinessType   *string  `json:"businessType"`
	LogoURL        *string  `json:"logoUrl"`
	CoverImageURL  *string  `json:"coverImageUrl"`
	Certifications []string `json:"certifications"`
}

// BusinessProfileResponse is the seller-facing business profile
type BusinessProfileResponse struct {
	ID                   uuid.UUID  `json:"id"`
	BusinessName         string     `json:"businessName"`
	BusinessRegistration string     `json:"businessRegistration"`
	Address              string     `json:"address"`
	ContactPerson        string     `json:"contactPerson"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone"`
	Description          string     `json:"description"`
	Certifications       []string   `json:"certifications"`
	IsVerified           bool       `json:"isVerified"`
	Rating               float64    `json:"rating"`
	TotalReviews         int64      `json:"totalReviews"`
	JoinedDate           *time.Time `json:"joinedDate"`
	BusinessType         string     `json:"businessType"`
	LogoURL              string     `json:"logoUrl"`
	CoverImageURL        string     `json:"coverImageUrl"`
	IsGoldSupplier       bool       `json:"isGoldSupplier"`
	IsPremium            bool       `json:"isPremium"`
	ProductTypes         []string   `json:"productTypes"`
	Categories           []string   `json:"categories"`
}

// UpdateBusinessProfileRequest is a partial business profile update
type UpdateBusinessProfileRequest struct {
	ContactPerson        *string  `json:"contactPerson"`
	Email                *string  `json:"email"`
	Phone                *string  `json:"phone"`
	BusinessName         *string  `json:"businessName"`
	BusinessRegistration *string  `json:"businessRegistration"`
	Address              *string  `json:"address"`
	Description          *string  `json:"description"`
	Certifications       []string `json:"certifications"`
	BusinessType         *string  `json:"businessType"`
	LogoURL              *string  `json:"logoUrl"`
	CoverImageURL        *string  `json:"coverImageUrl"`
	// ProductTypes replaces the product types by name; unknown names are dropped
	ProductTypes []string `json:"productTypes"`
}

// VerificationStatusResponse describes the badges of a seller
type VerificationStatusResponse struct {
	SupplierID        uuid.UUID  `json:"supplierId"`
	IsVerified        bool       `json:"isVerified"`
	IsGoldSupplier    bool       `json:"isGoldSupplier"`
	IsPremium         bool       `json:"isPremium"`
	VerificationDate  *time.Time `json:"verificationDate"`
	Certifications    []string   `json:"certifications"`
	VerificationLevel string     `json:"verificationLevel"`
}

// taxonomyNames are the product type and category names a seller deals in
type taxonomyNames struct {
	productTypes []string
	categories   []string
}

// resolveTaxonomyNames maps product types to their names and the distinct names of their categories
func resolveTaxonomyNames(types []*catalog.ProductType, categories map[uuid.UUID]string) taxonomyNames {
	names := taxonomyNames{productTypes: make([]string, 0, len(types)), categories: make([]string, 0)}
	seen := make(map[string]bool)
	for _, pt := range types {
		names.productTypes = append(names.productTypes, pt.Name)
		if c, ok := categories[pt.CategoryID]; ok && !seen[c] {
			seen[c] = true
			names.categories = append(names.categories, c)
		}
	}
	sort.Strings(names.categories)
	return names
}

func toSupplierResponse(s *partner.SellerProfile, user *identity.User, stats partner.SellerStats, names taxonomyNames) SupplierResponse {
	resp := SupplierResponse{
		ID:             s.ID,
		Name:           s.StoreName,
		Description:    s.Description,
		Logo:           s.LogoURL,
		CoverImage:     s.CoverImageURL,
		Location:       s.StoreAddress,
		Rating:         round2(stats.Rating),
		TotalReviews:   stats.TotalReviews,
		Verified:       s.IsVerified,
		ProductTypes:   names.productTypes,
		Categories:     names.categories,
		BusinessType:   businessTypeLabel(s.BusinessType),
		Certifications: nonNil(s.Certifications),
		IsGoldSupplier: s.IsGoldSupplier,
		IsPremium:      s.IsPremium,
		TotalProducts:  stats.TotalProducts,
		TotalOrders:    stats.TotalOrders,
		SuccessRate:    round2(s.SuccessRate),
		CreatedAt:      formatDate(s.CreatedAt),
		LastActive:     formatDate(s.LastActive),
	}
	if user != nil {
		resp.Contact = ContactInfo{Email: optional(user.Email), Phone: optional(user.Contact)}
	}
	return resp
}

func toBusinessProfileResponse(s *partner.SellerProfile, user *identity.User, stats partner.SellerStats, names taxonomyNames) BusinessProfileResponse {
	resp := BusinessProfileResponse{
		ID:                   s.ID,
		BusinessName:         s.StoreName,
		BusinessRegistration: s.StoreReg,
		Address:              s.StoreAddress,
		Description:          s.Description,
		Certifications:       nonNil(s.Certifications),
		IsVerified:           s.IsVerified,
		Rating:               round2(stats.Rating),
		TotalReviews:         stats.TotalReviews,
		BusinessType:         string(s.BusinessType),
		LogoURL:              s.LogoURL,
		CoverImageURL:        s.CoverImageURL,
		IsGoldSupplier:       s.IsGoldSupplier,
		IsPremium:            s.IsPremium,
		ProductTypes:         names.productTypes,
		Categories:           names.categories,
	}
	if !s.CreatedAt.IsZero() {
		joined := s.CreatedAt
		resp.JoinedDate = &joined
	}
	if user != nil {
		resp.ContactPerson = user.FullName()
		resp.Email = user.Email
		resp.Phone = user.Contact
	}
	return resp
}

func toSupplierReviewResponses(reviews []*engagement.SupplierReview) []SupplierReviewResponse {
	out := make([]SupplierReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, SupplierReviewResponse{
			ID:              r.ID,
			BuyerName:       r.BuyerName,
			BuyerCountry:    r.BuyerCountry,
			Rating:          r.Rating,
			Comment:         r.Comment,
			OrderValue:      r.OrderValue,
			ProductCategory: r.ProductCategory,
			Date:            r.CreatedAt,
			Verified:        r.IsVerified,
		})
	}
	return out
}

func toVerificationStatus(s *partner.SellerProfile) VerificationStatusResponse {
	return VerificationStatusResponse{
		SupplierID:        s.ID,
		IsVerified:        s.IsVerified,
		IsGoldSupplier:    s.IsGoldSupplier,
		IsPremium:         s.IsPremium,
		VerificationDate:  s.VerificationDate(),
		Certifications:    nonNil(s.Certifications),
		VerificationLevel: string(s.VerificationLevel()),
	}
}

func businessTypeLabel(bt partner.BusinessType) string {
	if bt == "" {
		return "Supplier"
	}
	return string(bt)
}

func formatDate(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
