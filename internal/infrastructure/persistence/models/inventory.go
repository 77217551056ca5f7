package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/inventory"
)

// InventoryLogModel is the persistence model for the append-only stock ledger.
type InventoryLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Change    int       `gorm:"column:change;not null"`
	Reason    string    `gorm:"type:varchar(255)"`
	Timestamp time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InventoryLogModel) TableName() string {
	return "inventory_logs"
}

// ToDomain converts the persistence model to a domain Log.
func (m *InventoryLogModel) ToDomain() inventory.Log {
	return inventory.Log{
		ID:        m.ID,
		ProductID: m.ProductID,
		Change:    m.Change,
		Reason:    m.Reason,
		Timestamp: m.Timestamp,
	}
}

// InventoryLogModelFromDomain creates a new persistence model from a domain Log.
func InventoryLogModelFromDomain(l *inventory.Log) *InventoryLogModel {
	return &InventoryLogModel{
		ID:        l.ID,
		ProductID: l.ProductID,
		Change:    l.Change,
		Reason:    l.Reason,
		Timestamp: l.Timestamp,
	}
}
