package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// SellerSummary is the seller block embedded in a product listing
type SellerSummary struct {
	ID         uuid.UUID
	StoreName  string
	Location   string
	IsVerified bool
	Rating     float64
}

// ProductListing is a product joined with the names of its references
type ProductListing struct {
	*Product
	CategoryName    string
	ProductTypeName string
	BrandName       string
	Seller          *SellerSummary
}

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Pagination
	SellerID     *uuid.UUID
	CategoryName string
	Search       string
	ActiveOnly   bool
	// MaxStock keeps products with stock strictly below the value when > 0
	MaxStock int
	// OrderBy is a whitelisted sort key, see persistence sort validation
	OrderBy string
}

// TaxonomyRepository persists categories, product types, brands and tags
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	FindCategoryByName(ctx context.Context, name string) (*Category, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	SaveCategory(ctx context.Context, c *Category) error

	ListProductTypes(ctx context.Context) ([]*ProductType, error)
	ListProductTypesByCategory(ctx context.Context, categoryID uuid.UUID) ([]*ProductType, error)
	FindProductTypeByName(ctx context.Context, name string) (*ProductType, error)
	FindProductTypesByNames(ctx context.Context, names []string) ([]*ProductType, error)
	FindProductTypesByIDs(ctx context.Context, ids []uuid.UUID) ([]*ProductType, error)
	// GetOrCreateProductType returns the named type inside the category, creating it when absent
	GetOrCreateProductType(ctx context.Context, name string, categoryID uuid.UUID) (*ProductType, error)
	SaveProductType(ctx context.Context, pt *ProductType) error

	ListBrandsByProductType(ctx context.Context, productTypeID uuid.UUID) ([]*Brand, error)
	// GetOrCreateBrand returns the named brand, creating it when absent
	GetOrCreateBrand(ctx context.Context, name string) (*Brand, error)
	LinkBrandToProductType(ctx context.Context, brandID, productTypeID uuid.UUID) error
}

// ProductRepository persists products with their images, tags and attributes
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	// Update saves scalar fields and replaces images, tags and attributes
	Update(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindBySellerAndID returns the product only when owned by the seller
	FindBySellerAndID(ctx context.Context, sellerID, id uuid.UUID) (*Product, error)
	FindByIDsForSeller(ctx context.Context, sellerID uuid.UUID, ids []uuid.UUID) ([]*Product, error)
	FindListing(ctx context.Context, id uuid.UUID) (*ProductListing, error)
	FindListingsByIDs(ctx context.Context, ids []uuid.UUID) ([]*ProductListing, error)
	List(ctx context.Context, filter ProductFilter) ([]*ProductListing, int64, error)
	Related(ctx context.Context, p *Product, limit int) ([]*ProductListing, error)
	TopEngaged(ctx context.Context, sellerID uuid.UUID, limit int) ([]*Product, error)

	// Counter updates are single atomic statements (col = col + n)
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
	IncrementInquiryCount(ctx context.Context, id uuid.UUID) error
	IncrementOrderCount(ctx context.Context, id uuid.UUID, n int) error
	// DeductStock decrements stock only when enough is available and reports whether it did
	DeductStock(ctx context.Context, id uuid.UUID, qty int) (bool, error)
	RestoreStock(ctx context.Context, id uuid.UUID, qty int) error
	// SaveStock writes an absolute stock level and the derived in_stock flag
	SaveStock(ctx context.Context, p *Product) error
}

// ReviewRepository persists product reviews and favorites
type ReviewRepository interface {
	CreateReview(ctx context.Context, r *ProductReview) error
	// RefreshRating recomputes product rating and review_count from its reviews
	RefreshRating(ctx context.Context, productID uuid.UUID) error

	AddFavorite(ctx context.Context, f *Favorite) error
	RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error
	ListFavoriteProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
