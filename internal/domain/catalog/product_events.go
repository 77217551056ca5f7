package catalog

import (
	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductStockChanged = "ProductStockChanged"
	EventTypeProductDeactivated  = "ProductDeactivated"
	EventTypeProductViewed       = "ProductViewed"
)

// ProductCreatedEvent is published when a seller lists a new product
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Name     string    `json:"name"`
	Stock    int       `json:"stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		SellerID:        p.SellerID,
		Name:            p.Name,
		Stock:           p.Stock,
	}
}

// ProductStockChangedEvent is published when the stock level of a product changes
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	OldStock int       `json:"old_stock"`
	NewStock int       `json:"new_stock"`
}

// NewProductStockChangedEvent creates a new ProductStockChangedEvent
func NewProductStockChangedEvent(p *Product, oldStock int) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, AggregateTypeProduct, p.ID),
		SellerID:        p.SellerID,
		OldStock:        oldStock,
		NewStock:        p.Stock,
	}
}

// ProductDeactivatedEvent is published when a product is soft-deleted
type ProductDeactivatedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
}

// NewProductDeactivatedEvent creates a new ProductDeactivatedEvent
func NewProductDeactivatedEvent(p *Product) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeactivated, AggregateTypeProduct, p.ID),
		SellerID:        p.SellerID,
	}
}

// ProductViewedEvent is published when a product detail page is opened
type ProductViewedEvent struct {
	shared.BaseDomainEvent
	SellerID    uuid.UUID  `json:"seller_id"`
	ProductName string     `json:"product_name"`
	ViewerID    *uuid.UUID `json:"viewer_id,omitempty"`
	ViewerName  string     `json:"viewer_name,omitempty"`
}

// NewProductViewedEvent creates a new ProductViewedEvent
func NewProductViewedEvent(p *Product, viewerID *uuid.UUID, viewerName string) *ProductViewedEvent {
	return &ProductViewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductViewed, AggregateTypeProduct, p.ID),
		SellerID:        p.SellerID,
		ProductName:     p.Name,
		ViewerID:        viewerID,
		ViewerName:      viewerName,
	}
}
