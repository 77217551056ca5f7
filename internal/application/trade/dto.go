package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/trade"
)

// DefaultOrderPageSize is the page size of the buyer's order history
const DefaultOrderPageSize = 20

// OrderItemRequest is one requested line
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest is a buyer's order at one seller
type CreateOrderRequest struct {
	SellerID uuid.UUID          `json:"sellerId" binding:"required"`
	Items    []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes    string             `json:"notes"`
}

// UpdateOrderStatusRequest moves an order along its lifecycle
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

// OrderItemResponse is one line of an order
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// OrderResponse is the projection of an order
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	BuyerID     uuid.UUID           `json:"buyerId"`
	BuyerName   string              `json:"buyerName"`
	SellerID    uuid.UUID           `json:"sellerId"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Status      string              `json:"status"`
	OrderDate   time.Time           `json:"orderDate"`
	Notes       string              `json:"notes"`
}

// OrderListResponse is one page of orders
type OrderListResponse struct {
	Orders     []OrderResponse `json:"orders"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"totalPages"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
}

// ToOrderResponse converts an order with the buyer's display name
func ToOrderResponse(o *trade.Order, buyerName string) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		BuyerID:     o.BuyerID,
		BuyerName:   buyerName,
		SellerID:    o.SellerID,
		Items:       items,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OrderDate:   o.OrderDate,
		Notes:       o.Notes,
	}
}

// InvoiceParty is the seller or buyer block of an invoice
type InvoiceParty struct {
	Name         string
	Company      string
	Address      string
	Registration string
	Email        string
	Phone        string
}

// InvoiceLine is one printed line of an invoice
type InvoiceLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// InvoiceData is everything an invoice template prints
type InvoiceData struct {
	OrderNumber string
	OrderDate   time.Time
	Status      string
	Seller      InvoiceParty
	Buyer       InvoiceParty
	Lines       []InvoiceLine
	TotalAmount decimal.Decimal
	Notes       string
	GeneratedAt time.Time
}

// InvoiceFormat selects the invoice document type
type InvoiceFormat string

const (
	InvoiceFormatHTML InvoiceFormat = "html"
	InvoiceFormatPDF  InvoiceFormat = "pdf"
)

// Invoice is a rendered invoice document
type Invoice struct {
	Filename    string
	ContentType string
	Content     []byte
}
