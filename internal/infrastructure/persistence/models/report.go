package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/report"
)

// ActivityModel is the persistence model for seller activity feed entries.
type ActivityModel struct {
	ID                uuid.UUID           `gorm:"type:uuid;primary_key"`
	SellerID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	ActivityType      report.ActivityType `gorm:"type:varchar(20);not null"`
	Title             string              `gorm:"type:varchar(255);not null"`
	Description       string              `gorm:"type:text"`
	RelatedEntityID   *uuid.UUID          `gorm:"type:uuid"`
	RelatedEntityName string              `gorm:"type:varchar(255)"`
	RelatedEntityType string              `gorm:"type:varchar(50)"`
	CreatedAt         time.Time           `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the persistence model to a domain Activity.
func (m *ActivityModel) ToDomain() *report.Activity {
	return &report.Activity{
		ID:          m.ID,
		SellerID:    m.SellerID,
		Type:        m.ActivityType,
		Title:       m.Title,
		Description: m.Description,
		Related: report.RelatedEntity{
			ID:   m.RelatedEntityID,
			Name: m.RelatedEntityName,
			Type: m.RelatedEntityType,
		},
		CreatedAt: m.CreatedAt,
	}
}

// ActivityModelFromDomain creates a new persistence model from a domain Activity.
func ActivityModelFromDomain(a *report.Activity) *ActivityModel {
	return &ActivityModel{
		ID:                a.ID,
		SellerID:          a.SellerID,
		ActivityType:      a.Type,
		Title:             a.Title,
		Description:       a.Description,
		RelatedEntityID:   a.Related.ID,
		RelatedEntityName: a.Related.Name,
		RelatedEntityType: a.Related.Type,
		CreatedAt:         a.CreatedAt,
	}
}

// SalesDataModel is the persistence model for the daily revenue rollup.
type SalesDataModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	SellerID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_sales_data_seller_date,priority:1"`
	Date       time.Time       `gorm:"type:date;not null;uniqueIndex:idx_sales_data_seller_date,priority:2"`
	Revenue    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	OrderCount int             `gorm:"not null;default:0"`
	CreatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesDataModel) TableName() string {
	return "sales_data"
}

// ToDomain converts the persistence model to a domain SalesData row.
func (m *SalesDataModel) ToDomain() report.SalesData {
	return report.SalesData{
		SellerID:   m.SellerID,
		Date:       m.Date,
		Revenue:    m.Revenue,
		OrderCount: m.OrderCount,
	}
}
