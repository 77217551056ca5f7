package trade

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// Invoice errors
var (
	ErrPDFUnavailable = shared.InvalidState("PDF invoices are not available")
	ErrInvoiceFormat  = shared.InvalidInput("Invalid invoice format")
)

// InvoiceRenderer turns invoice data into documents
type InvoiceRenderer interface {
	RenderHTML(ctx context.Context, data *InvoiceData) ([]byte, error)
	RenderPDF(ctx context.Context, data *InvoiceData) ([]byte, error)
	// PDFEnabled reports whether RenderPDF can be used
	PDFEnabled() bool
}

// InvoiceService renders invoices for the parties of an order
type InvoiceService struct {
	access   SellerResolver
	users    identity.UserRepository
	buyers   partner.BuyerProfileRepository
	orders   trade.OrderRepository
	renderer InvoiceRenderer
	logger   *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	access SellerResolver,
	users identity.UserRepository,
	buyers partner.BuyerProfileRepository,
	orders trade.OrderRepository,
	renderer InvoiceRenderer,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		access:   access,
		users:    users,
		buyers:   buyers,
		orders:   orders,
		renderer: renderer,
		logger:   logger,
	}
}

// Render produces the invoice of a seller's order for the order's buyer or the seller's owner
func (s *InvoiceService) Render(ctx context.Context, userID, sellerID, orderID uuid.UUID, format string) (*Invoice, error) {
	f := InvoiceFormat(strings.ToLower(strings.TrimSpace(format)))
	if f == "" {
		f = InvoiceFormatHTML
	}
	if f != InvoiceFormatHTML && f != InvoiceFormatPDF {
		return nil, ErrInvoiceFormat
	}
	if f == InvoiceFormatPDF && !s.renderer.PDFEnabled() {
		return nil, ErrPDFUnavailable
	}

	seller, err := s.access.Seller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.SellerID != seller.ID {
		return nil, ErrOrderNotFound
	}
	if !order.IsBuyer(userID) && seller.UserID != userID {
		return nil, ErrNotOrderParty
	}

	data, err := s.invoiceData(ctx, seller, order)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{Filename: "invoice-" + order.OrderNumber}
	switch f {
	case InvoiceFormatPDF:
		inv.Content, err = s.renderer.RenderPDF(ctx, data)
		inv.ContentType = "application/pdf"
		inv.Filename += ".pdf"
	default:
		inv.Content, err = s.renderer.RenderHTML(ctx, data)
		inv.ContentType = "text/html; charset=utf-8"
		inv.Filename += ".html"
	}
	if err != nil {
		s.logger.Error("Failed to render invoice",
			zap.String("order_number", order.OrderNumber),
			zap.String("format", string(f)),
			zap.Error(err),
		)
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) invoiceData(ctx context.Context, seller *partner.SellerProfile, order *trade.Order) (*InvoiceData, error) {
	data := &InvoiceData{
		OrderNumber: order.OrderNumber,
		OrderDate:   order.OrderDate,
		Status:      string(order.Status),
		Seller: InvoiceParty{
			Company:      seller.StoreName,
			Address:      seller.StoreAddress,
			Registration: seller.StoreReg,
		},
		TotalAmount: order.TotalAmount,
		Notes:       order.Notes,
		GeneratedAt: time.Now(),
	}

	if owner, err := s.user(ctx, seller.UserID); err != nil {
		return nil, err
	} else if owner != nil {
		data.Seller.Name = owner.FullName()
		data.Seller.Email = owner.Email
		data.Seller.Phone = owner.Contact
	}

	buyer, err := s.user(ctx, order.BuyerID)
	if err != nil {
		return nil, err
	}
	if buyer != nil {
		data.Buyer.Name = buyer.FullName()
		data.Buyer.Email = buyer.Email
		data.Buyer.Phone = buyer.Contact
	}
	profile, err := s.buyers.FindByUserID(ctx, order.BuyerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if profile != nil {
		data.Buyer.Company = profile.CompanyName
		data.Buyer.Address = profile.CompanyAddress
		data.Buyer.Registration = profile.CompanyReg
	}

	data.Lines = make([]InvoiceLine, 0, len(order.Items))
	for _, item := range order.Items {
		data.Lines = append(data.Lines, InvoiceLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return data, nil
}

func (s *InvoiceService) user(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}
