package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/partner"
)

// BuyerProfileModel is the persistence model for the BuyerProfile domain entity.
type BuyerProfileModel struct {
	BaseModel
	UserID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	BuyerType      partner.BuyerType `gorm:"type:varchar(20);not null"`
	CompanyName    string            `gorm:"type:varchar(120)"`
	CompanyReg     string            `gorm:"type:varchar(120);not null;uniqueIndex"`
	CompanyAddress string            `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (BuyerProfileModel) TableName() string {
	return "buyer_profiles"
}

// ToDomain converts the persistence model to a domain BuyerProfile entity.
// Note: PreferredCategoryIDs must be loaded separately by the repository.
func (m *BuyerProfileModel) ToDomain() *partner.BuyerProfile {
	return &partner.BuyerProfile{
		BaseEntity:           m.BaseModel.ToDomain(),
		UserID:               m.UserID,
		BuyerType:            m.BuyerType,
		CompanyName:          m.CompanyName,
		CompanyReg:           m.CompanyReg,
		CompanyAddress:       m.CompanyAddress,
		PreferredCategoryIDs: make([]uuid.UUID, 0),
	}
}

// FromDomain populates the persistence model from a domain BuyerProfile entity.
func (m *BuyerProfileModel) FromDomain(p *partner.BuyerProfile) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.UserID = p.UserID
	m.BuyerType = p.BuyerType
	m.CompanyName = p.CompanyName
	m.CompanyReg = p.CompanyReg
	m.CompanyAddress = p.CompanyAddress
}

// BuyerPreferredCategoryModel links buyer profiles to categories.
type BuyerPreferredCategoryModel struct {
	BuyerProfileID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (BuyerPreferredCategoryModel) TableName() string {
	return "buyer_preferred_categories"
}

// SellerProfileModel is the persistence model for the SellerProfile domain entity.
// Dashboard counters are not stored; they are aggregated on read.
type SellerProfileModel struct {
	AggregateModel
	UserID             uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	StoreName          string               `gorm:"type:varchar(120)"`
	StoreReg           string               `gorm:"type:varchar(120);not null;uniqueIndex"`
	StoreAddress       string               `gorm:"type:varchar(255)"`
	Description        string               `gorm:"type:text"`
	BusinessType       partner.BusinessType `gorm:"type:varchar(30);not null;default:'SUPPLIER'"`
	LogoURL            string               `gorm:"type:varchar(255)"`
	CoverImageURL      string               `gorm:"type:varchar(255)"`
	IsVerified         bool                 `gorm:"not null;default:false"`
	IsGoldSupplier     bool                 `gorm:"not null;default:false"`
	IsPremium          bool                 `gorm:"not null;default:false"`
	SuccessRate        float64              `gorm:"not null;default:0"`
	CertificationsJSON string               `gorm:"column:certifications;type:jsonb;default:'[]'"`
	LastActive         time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SellerProfileModel) TableName() string {
	return "seller_profiles"
}

// ToDomain converts the persistence model to a domain SellerProfile entity.
// Note: ProductTypeIDs must be loaded separately by the repository.
func (m *SellerProfileModel) ToDomain() *partner.SellerProfile {
	p := &partner.SellerProfile{
		BaseAggregateRoot: m.ToAggregateRoot(),
		UserID:            m.UserID,
		StoreName:         m.StoreName,
		StoreReg:          m.StoreReg,
		StoreAddress:      m.StoreAddress,
		Description:       m.Description,
		BusinessType:      m.BusinessType,
		LogoURL:           m.LogoURL,
		CoverImageURL:     m.CoverImageURL,
		IsVerified:        m.IsVerified,
		IsGoldSupplier:    m.IsGoldSupplier,
		IsPremium:         m.IsPremium,
		SuccessRate:       m.SuccessRate,
		Certifications:    make([]string, 0),
		ProductTypeIDs:    make([]uuid.UUID, 0),
		LastActive:        m.LastActive,
	}
	unmarshalJSON(m.CertificationsJSON, &p.Certifications, "certifications")
	return p
}

// FromDomain populates the persistence model from a domain SellerProfile entity.
func (m *SellerProfileModel) FromDomain(p *partner.SellerProfile) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.UserID = p.UserID
	m.StoreName = p.StoreName
	m.StoreReg = p.StoreReg
	m.StoreAddress = p.StoreAddress
	m.Description = p.Description
	m.BusinessType = p.BusinessType
	m.LogoURL = p.LogoURL
	m.CoverImageURL = p.CoverImageURL
	m.IsVerified = p.IsVerified
	m.IsGoldSupplier = p.IsGoldSupplier
	m.IsPremium = p.IsPremium
	m.SuccessRate = p.SuccessRate
	if p.Certifications == nil {
		m.CertificationsJSON = "[]"
	} else {
		m.CertificationsJSON = marshalJSON(p.Certifications, "[]")
	}
	m.LastActive = p.LastActive
}

// SellerProductTypeModel links seller profiles to the product types they offer.
type SellerProductTypeModel struct {
	SellerProfileID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductTypeID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (SellerProductTypeModel) TableName() string {
	return "seller_product_types"
}
