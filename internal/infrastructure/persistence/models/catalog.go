package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Description = c.Description
}

// ProductTypeModel is the persistence model for the ProductType domain entity.
type ProductTypeModel struct {
	BaseModel
	Name        string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductTypeModel) TableName() string {
	return "product_types"
}

// ToDomain converts the persistence model to a domain ProductType entity.
func (m *ProductTypeModel) ToDomain() *catalog.ProductType {
	return &catalog.ProductType{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		CategoryID:  m.CategoryID,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain ProductType entity.
func (m *ProductTypeModel) FromDomain(pt *catalog.ProductType) {
	m.FromDomainBaseEntity(pt.BaseEntity)
	m.Name = pt.Name
	m.CategoryID = pt.CategoryID
	m.Description = pt.Description
}

// BrandModel is the persistence model for the Brand domain entity.
type BrandModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	LogoURL     string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the persistence model to a domain Brand entity.
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		LogoURL:     m.LogoURL,
	}
}

// FromDomain populates the persistence model from a domain Brand entity.
func (m *BrandModel) FromDomain(b *catalog.Brand) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.Description = b.Description
	m.LogoURL = b.LogoURL
}

// BrandProductTypeModel links brands to product types.
type BrandProductTypeModel struct {
	BrandID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductTypeID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (BrandProductTypeModel) TableName() string {
	return "brand_product_types"
}

// TagModel is the persistence model for product tags.
type TagModel struct {
	BaseModel
	Name string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ProductTagModel links products to tags.
type ProductTagModel struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (ProductTagModel) TableName() string {
	return "product_tags"
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	SellerID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	CategoryID         *uuid.UUID       `gorm:"type:uuid;index"`
	ProductTypeID      *uuid.UUID       `gorm:"type:uuid;index"`
	BrandID            *uuid.UUID       `gorm:"type:uuid;index"`
	Name               string           `gorm:"type:varchar(255);not null"`
	Description        string           `gorm:"type:text"`
	Price              decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	OriginalPrice      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Stock              int              `gorm:"not null;default:0"`
	MinOrderQty        int              `gorm:"not null;default:1"`
	SKU                *string          `gorm:"column:sku;type:varchar(100);uniqueIndex"`
	InStock            bool             `gorm:"not null;default:false"`
	IsNew              bool             `gorm:"not null;default:false"`
	IsTrending         bool             `gorm:"not null;default:false"`
	IsActive           bool             `gorm:"not null;default:true;index"`
	Rating             float64          `gorm:"not null;default:0"`
	ReviewCount        int              `gorm:"not null;default:0"`
	ViewCount          int              `gorm:"not null;default:0"`
	InquiryCount       int              `gorm:"not null;default:0"`
	OrderCount         int              `gorm:"not null;default:0"`
	SpecificationsJSON string           `gorm:"column:specifications;type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Note: Images, Tags and Attributes must be loaded separately by the repository.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		SellerID:          m.SellerID,
		CategoryID:        m.CategoryID,
		ProductTypeID:     m.ProductTypeID,
		BrandID:           m.BrandID,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		OriginalPrice:     m.OriginalPrice,
		Stock:             m.Stock,
		MinOrderQty:       m.MinOrderQty,
		SKU:               m.SKU,
		InStock:           m.InStock,
		IsNew:             m.IsNew,
		IsTrending:        m.IsTrending,
		IsActive:          m.IsActive,
		Rating:            m.Rating,
		ReviewCount:       m.ReviewCount,
		ViewCount:         m.ViewCount,
		InquiryCount:      m.InquiryCount,
		OrderCount:        m.OrderCount,
		Specifications:    make(map[string]any),
		Images:            make([]catalog.ProductImage, 0),
		Tags:              make([]string, 0),
		Attributes:        make([]catalog.ProductAttribute, 0),
	}
	unmarshalJSON(m.SpecificationsJSON, &p.Specifications, "specifications")
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.SellerID = p.SellerID
	m.CategoryID = p.CategoryID
	m.ProductTypeID = p.ProductTypeID
	m.BrandID = p.BrandID
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.OriginalPrice = p.OriginalPrice
	m.Stock = p.Stock
	m.MinOrderQty = p.MinOrderQty
	m.SKU = p.SKU
	m.InStock = p.InStock
	m.IsNew = p.IsNew
	m.IsTrending = p.IsTrending
	m.IsActive = p.IsActive
	m.Rating = p.Rating
	m.ReviewCount = p.ReviewCount
	m.ViewCount = p.ViewCount
	m.InquiryCount = p.InquiryCount
	m.OrderCount = p.OrderCount
	if p.Specifications == nil {
		m.SpecificationsJSON = "{}"
	} else {
		m.SpecificationsJSON = marshalJSON(p.Specifications, "{}")
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductImageModel is the persistence model for product images.
type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"column:image_url;type:varchar(255);not null"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Position  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the persistence model to a domain ProductImage value.
func (m *ProductImageModel) ToDomain() catalog.ProductImage {
	return catalog.ProductImage{
		ID:        m.ID,
		URL:       m.URL,
		IsPrimary: m.IsPrimary,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
	}
}

// ProductImageModelFromDomain creates the persistence model of one product image.
func ProductImageModelFromDomain(productID uuid.UUID, img catalog.ProductImage) *ProductImageModel {
	return &ProductImageModel{
		ID:        img.ID,
		ProductID: productID,
		URL:       img.URL,
		IsPrimary: img.IsPrimary,
		Position:  img.Position,
		CreatedAt: img.CreatedAt,
	}
}

// ProductAttributeModel is the persistence model for product key/value attributes.
type ProductAttributeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Key       string    `gorm:"column:attr_key;type:varchar(100);not null"`
	Value     string    `gorm:"column:attr_value;type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ProductAttributeModel) TableName() string {
	return "product_attributes"
}

// ProductReviewModel is the persistence model for the ProductReview domain entity.
type ProductReviewModel struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductReviewModel) TableName() string {
	return "product_reviews"
}

// FromDomain populates the persistence model from a domain ProductReview entity.
func (m *ProductReviewModel) FromDomain(r *catalog.ProductReview) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProductID = r.ProductID
	m.BuyerID = r.BuyerID
	m.Rating = r.Rating
	m.Comment = r.Comment
}

// ToDomain converts the persistence model to a domain ProductReview entity.
func (m *ProductReviewModel) ToDomain() *catalog.ProductReview {
	return &catalog.ProductReview{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ProductID:  m.ProductID,
		BuyerID:    m.BuyerID,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
}

// FavoriteModel is the persistence model for saved products.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_product,priority:2"`
	AddedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FavoriteModel) TableName() string {
	return "favorites"
}
