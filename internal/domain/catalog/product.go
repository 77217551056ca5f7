package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// MaxProductImages is the maximum number of images per product
const MaxProductImages = 5

// ErrTooManyImages is returned when more than MaxProductImages are attached
var ErrTooManyImages = shared.InvalidInput("Maximum 5 images are allowed.")

// ProductImage is one image of a product. The first image is the primary one.
type ProductImage struct {
	ID        uuid.UUID
	URL       string
	IsPrimary bool
	Position  int
	CreatedAt time.Time
}

// ProductAttribute is a free key/value attribute row
type ProductAttribute struct {
	Key   string
	Value string
}

// Product is the aggregate root of the catalog.
// Stock is never negative and InStock always equals Stock > 0.
type Product struct {
	shared.BaseAggregateRoot
	SellerID       uuid.UUID
	CategoryID     *uuid.UUID
	ProductTypeID  *uuid.UUID
	BrandID        *uuid.UUID
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Stock          int
	MinOrderQty    int
	SKU            *string
	InStock        bool
	IsNew          bool
	IsTrending     bool
	IsActive       bool
	Rating         float64
	ReviewCount    int
	ViewCount      int
	InquiryCount   int
	OrderCount     int
	Specifications map[string]any
	Images         []ProductImage
	Tags           []string
	Attributes     []ProductAttribute
}

// NewProductInput carries the fields of a new product
type NewProductInput struct {
	SellerID       uuid.UUID
	CategoryID     *uuid.UUID
	ProductTypeID  *uuid.UUID
	BrandID        *uuid.UUID
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Stock          int
	MinOrderQty    int
	SKU            string
	IsNew          bool
	IsTrending     bool
	Specifications map[string]any
	Images         []string
	Tags           []string
	Attributes     []ProductAttribute
}

// NewProduct creates an active product for a seller
func NewProduct(in NewProductInput) (*Product, error) {
	if in.SellerID == uuid.Nil {
		return nil, shared.InvalidInput("Product requires a seller")
	}
	if err := validateProductName(in.Name); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if err := validateStock(in.Stock); err != nil {
		return nil, err
	}
	minQty := in.MinOrderQty
	if minQty == 0 {
		minQty = 1
	}
	if minQty < 1 {
		return nil, shared.InvalidInput("Minimum order quantity must be at least 1")
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          in.SellerID,
		CategoryID:        in.CategoryID,
		ProductTypeID:     in.ProductTypeID,
		BrandID:           in.BrandID,
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		Price:             in.Price.Round(2),
		OriginalPrice:     roundPtr(in.OriginalPrice),
		MinOrderQty:       minQty,
		SKU:               normalizeSKU(in.SKU),
		IsNew:             in.IsNew,
		IsTrending:        in.IsTrending,
		IsActive:          true,
		Specifications:    normalizeSpecs(in.Specifications),
		Tags:              NormalizeTags(in.Tags),
		Attributes:        in.Attributes,
	}
	p.Stock = in.Stock
	p.InStock = in.Stock > 0
	if _, err := p.SetImages(in.Images); err != nil {
		return nil, err
	}

	p.AddDomainEvent(NewProductCreatedEvent(p))

	return p, nil
}

// ProductUpdate carries a partial product update. Nil fields are left untouched.
// Reference fields (category, type, brand) are resolved by the caller.
type ProductUpdate struct {
	Name           *string
	Description    *string
	Price          *decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Stock          *int
	MinOrderQty    *int
	IsNew          *bool
	IsTrending     *bool
	Specifications map[string]any
	Images         []string
	ReplaceImages  bool
	Tags           []string
	ReplaceTags    bool
	CategoryID     *uuid.UUID
	ProductTypeID  *uuid.UUID
	BrandID        *uuid.UUID
}

// ProductChanges describes side effects of an update that the caller must persist
type ProductChanges struct {
	OldStock      int
	StockChange   int
	RemovedImages []string
}

// ApplyUpdate applies a partial update and reports stock and image side effects
func (p *Product) ApplyUpdate(u ProductUpdate) (ProductChanges, error) {
	changes := ProductChanges{OldStock: p.Stock}

	if u.Name != nil {
		if err := validateProductName(*u.Name); err != nil {
			return changes, err
		}
	}
	if u.Price != nil {
		if err := validatePrice(*u.Price); err != nil {
			return changes, err
		}
	}
	if u.Stock != nil {
		if err := validateStock(*u.Stock); err != nil {
			return changes, err
		}
	}
	if u.MinOrderQty != nil && *u.MinOrderQty < 1 {
		return changes, shared.InvalidInput("Minimum order quantity must be at least 1")
	}
	if u.ReplaceImages && len(u.Images) > MaxProductImages {
		return changes, ErrTooManyImages
	}

	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = u.Price.Round(2)
	}
	if u.OriginalPrice != nil {
		p.OriginalPrice = roundPtr(u.OriginalPrice)
	}
	if u.MinOrderQty != nil {
		p.MinOrderQty = *u.MinOrderQty
	}
	if u.IsNew != nil {
		p.IsNew = *u.IsNew
	}
	if u.IsTrending != nil {
		p.IsTrending = *u.IsTrending
	}
	if u.Specifications != nil {
		p.Specifications = normalizeSpecs(u.Specifications)
	}
	if u.CategoryID != nil {
		p.CategoryID = u.CategoryID
	}
	if u.ProductTypeID != nil {
		p.ProductTypeID = u.ProductTypeID
	}
	if u.BrandID != nil {
		p.BrandID = u.BrandID
	}
	if u.ReplaceTags {
		p.Tags = NormalizeTags(u.Tags)
	}
	if u.ReplaceImages {
		removed, err := p.SetImages(u.Images)
		if err != nil {
			return changes, err
		}
		changes.RemovedImages = removed
	}
	if u.Stock != nil {
		changes.StockChange = p.setStock(*u.Stock)
	}

	p.Touch()
	return changes, nil
}

// SetStock sets an absolute stock level and returns new minus old
func (p *Product) SetStock(stock int) (int, error) {
	if err := validateStock(stock); err != nil {
		return 0, err
	}
	change := p.setStock(stock)
	if change != 0 {
		p.Touch()
	}
	return change, nil
}

// AdjustStock changes stock by delta, refusing to go below zero
func (p *Product) AdjustStock(delta int) error {
	if p.Stock+delta < 0 {
		return shared.ErrInsufficientStock
	}
	p.setStock(p.Stock + delta)
	p.Touch()
	return nil
}

func (p *Product) setStock(stock int) int {
	old := p.Stock
	p.Stock = stock
	p.InStock = stock > 0
	if old != stock {
		p.AddDomainEvent(NewProductStockChangedEvent(p, old))
	}
	return stock - old
}

// SetImages replaces the image list in order. Images whose URL survives keep
// their identity; the URLs no longer referenced are returned.
func (p *Product) SetImages(urls []string) ([]string, error) {
	if len(urls) > MaxProductImages {
		return nil, ErrTooManyImages
	}

	existing := make(map[string]ProductImage, len(p.Images))
	for _, img := range p.Images {
		existing[img.URL] = img
	}

	images := make([]ProductImage, 0, len(urls))
	kept := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if _, dup := kept[url]; dup {
			continue
		}
		kept[url] = struct{}{}

		img, ok := existing[url]
		if !ok {
			img = ProductImage{ID: uuid.New(), URL: url, CreatedAt: time.Now()}
		}
		img.Position = len(images)
		img.IsPrimary = len(images) == 0
		images = append(images, img)
	}

	var removed []string
	for _, img := range p.Images {
		if _, ok := kept[img.URL]; !ok {
			removed = append(removed, img.URL)
		}
	}

	p.Images = images
	return removed, nil
}

// ImageURLs returns the image URLs in display order
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// PrimaryImage returns the primary image URL or ""
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	return ""
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.Touch()
	p.AddDomainEvent(NewProductDeactivatedEvent(p))
}

// StockStatus returns the derived availability label
func (p *Product) StockStatus() StockStatus {
	return StockStatusFor(p.Stock)
}

// Revenue is the estimated revenue shown on the inventory listing
func (p *Product) Revenue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.OrderCount))).Round(2)
}

// EngagementScore is the sum of views, inquiries and orders
func (p *Product) EngagementScore() int {
	return p.ViewCount + p.InquiryCount + p.OrderCount
}

// BelongsTo reports whether the product is owned by the seller
func (p *Product) BelongsTo(sellerID uuid.UUID) bool {
	return p.SellerID == sellerID
}


func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.InvalidInput("Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.InvalidInput("Product name cannot exceed 255 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.InvalidInput("Price cannot be negative")
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return shared.InvalidInput("Stock cannot be negative")
	}
	return nil
}

func normalizeSKU(sku string) *string {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil
	}
	return &sku
}

func normalizeSpecs(specs map[string]any) map[string]any {
	if specs == nil {
		return map[string]any{}
	}
	return specs
}

func roundPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}
