package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/catalog"
)

// NamedItem is the short {id, name} form of a taxonomy entry
type NamedItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TaxonomyResponse is a category, product type or brand with its description
type TaxonomyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// SupplierBrief is the seller block embedded in a product
type SupplierBrief struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Rating   float64   `json:"rating"`
	Location string    `json:"location"`
	Verified bool      `json:"verified"`
}

// ProductResponse is the public product projection
type ProductResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	OriginalPrice  *decimal.Decimal `json:"originalPrice"`
	Images         []string         `json:"images"`
	Category       string           `json:"category"`
	ProductType    string           `json:"productType"`
	Brand          string           `json:"brand"`
	Supplier       *SupplierBrief   `json:"supplier"`
	Specifications map[string]any   `json:"specifications"`
	Rating         float64          `json:"rating"`
	Reviews        int              `json:"reviews"`
	MinOrderQty    int              `json:"minOrderQty"`
	InStock        bool             `json:"inStock"`
	IsNew          bool             `json:"isNew"`
	IsTrending     bool             `json:"isTrending"`
	Tags           []string         `json:"tags"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// InventoryProductResponse is the product projection with the seller-facing stock fields
type InventoryProductResponse struct {
	ProductResponse
	SKU         *string         `json:"sku"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Status      string          `json:"status"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Views       int             `json:"views"`
	Inquiries   int             `json:"inquiries"`
	Orders      int             `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ProductListResponse is a page of public products
type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// InventoryListResponse is a page of the seller's inventory
type InventoryListResponse struct {
	Products   []InventoryProductResponse `json:"products"`
	Total      int64                      `json:"total"`
	TotalPages int                        `json:"totalPages"`
	Page       int                        `json:"page"`
	Limit      int                        `json:"limit"`
}

// ProductListQuery holds the public listing parameters
type ProductListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Category string `form:"category"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
}

// Specifications accepts either a JSON object or a string holding one.
// Anything unparsable decodes to an empty object.
type Specifications map[string]any

// UnmarshalJSON implements json.Unmarshaler
func (s *Specifications) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err == nil {
		*s = obj
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if err := json.Unmarshal([]byte(str), &obj); err == nil {
			*s = obj
			return nil
		}
	}
	*s = map[string]any{}
	return nil
}

// CreateProductRequest is the body of a new seller product.
// Required fields are pointers so that absence can be reported by name.
type CreateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	Stock          *int             `json:"stock"`
	OriginalPrice  *decimal.Decimal `json:"originalPrice"`
	MinOrderQty    int              `json:"minOrderQty"`
	SKU            string           `json:"sku"`
	Category       string           `json:"category"`
	ProductType    string           `json:"productType"`
	Brand          string           `json:"brand"`
	Specifications Specifications   `json:"specifications"`
	Images         []string         `json:"images"`
	Tags           []string         `json:"tags"`
	IsNew          bool             `json:"isNew"`
	IsTrending     bool             `json:"isTrending"`
}

// UpdateProductRequest is a partial product update; absent fields are left untouched
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	OriginalPrice  *decimal.Decimal `json:"originalPrice"`
	Stock          *int             `json:"stock"`
	MinOrderQty    *int             `json:"minOrderQty"`
	Category       *string          `json:"category"`
	ProductType    *string          `json:"productType"`
	Brand          *string          `json:"brand"`
	Specifications Specifications   `json:"specifications"`
	Images         *[]string        `json:"images"`
	Tags           *[]string        `json:"tags"`
	IsNew          *bool            `json:"isNew"`
	IsTrending     *bool            `json:"isTrending"`
}

// CreateReviewRequest is a buyer's product review
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewResponse is the stored product review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadImageResult is the public URL of a stored image
type UploadImageResult struct {
	URL string `json:"url"`
}

// ViewContext describes who is viewing a product
type ViewContext struct {
	UserID    *uuid.UUID
	IP        string
	UserAgent string
}

// ToProductResponse converts a listing to the public projection
func ToProductResponse(l *catalog.ProductListing) ProductResponse {
	p := l.Product
	resp := ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Images:         p.ImageURLs(),
		Category:       l.CategoryName,
		ProductType:    l.ProductTypeName,
		Brand:          l.BrandName,
		Specifications: p.Specifications,
		Rating:         p.Rating,
		Reviews:        p.ReviewCount,
		MinOrderQty:    p.MinOrderQty,
		InStock:        p.InStock,
		IsNew:          p.IsNew,
		IsTrending:     p.IsTrending,
		Tags:           p.Tags,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if resp.Specifications == nil {
		resp.Specifications = map[string]any{}
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if l.Seller != nil {
		resp.Supplier = &SupplierBrief{
			ID:       l.Seller.ID,
			Name:     l.Seller.StoreName,
			Rating:   l.Seller.Rating,
			Location: l.Seller.Location,
			Verified: l.Seller.IsVerified,
		}
	}
	return resp
}

// ToProductResponses converts a slice of listings
func ToProductResponses(listings []*catalog.ProductListing) []ProductResponse {
	out := make([]ProductResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, ToProductResponse(l))
	}
	return out
}

// ToInventoryProductResponse converts a listing to the seller inventory projection
func ToInventoryProductResponse(l *catalog.ProductListing) InventoryProductResponse {
	p := l.Product
	return InventoryProductResponse{
		ProductResponse: ToProductResponse(l),
		SKU:             p.SKU,
		Stock:           p.Stock,
		MinStock:        catalog.DefaultMinStock,
		Status:          string(p.StockStatus()),
		LastUpdated:     p.UpdatedAt,
		Views:           p.ViewCount,
		Inquiries:       p.InquiryCount,
		Orders:          p.OrderCount,
		Revenue:         p.Revenue(),
	}
}

func toTaxonomyResponse(id uuid.UUID, name, description string) TaxonomyResponse {
	return TaxonomyResponse{ID: id, Name: name, Description: description}
}
