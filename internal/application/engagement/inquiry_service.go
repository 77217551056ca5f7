package engagement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/application/txn"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Engagement errors
var (
	ErrInquiryNotFound = shared.NotFound("Inquiry not found")
	ErrProductNotFound = shared.NotFound("Product not found")
	ErrBuyersOnly      = shared.Forbidden("Only buyers can perform this action")
	ErrUserNotFound    = shared.Unauthorized("User not found")
)

// InquirySentMessage acknowledges a stored inquiry
const InquirySentMessage = "Inquiry sent successfully"

// SellerResolver resolves seller profiles for engagement routes
type SellerResolver interface {
	Seller(ctx context.Context, sellerID uuid.UUID) (*partner.SellerProfile, error)
	OwnedSeller(ctx context.Context, userID, sellerID uuid.UUID) (*partner.SellerProfile, error)
}

// InquiryService handles buyer inquiries and the seller's inbox
type InquiryService struct {
	access    SellerResolver
	users     identity.UserRepository
	products  catalog.ProductRepository
	inquiries engagement.InquiryRepository
	txScope   txn.TransactionScope
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewInquiryService creates a new InquiryService
func NewInquiryService(
	access SellerResolver,
	users identity.UserRepository,
	products catalog.ProductRepository,
	inquiries engagement.InquiryRepository,
	txScope txn.TransactionScope,
	events shared.EventPublisher,
	logger *zap.Logger,
) *InquiryService {
	return &InquiryService{
		access:    access,
		users:     users,
		products:  products,
		inquiries: inquiries,
		txScope:   txScope,
		events:    events,
		logger:    logger,
	}
}

// Contact stores a buyer's inquiry to a seller. A product, when given, must
// belong to the seller and has its inquiry counter bumped.
func (s *InquiryService) Contact(ctx context.Context, buyerID, sellerID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	buyer, err := buyerUser(ctx, s.users, buyerID)
	if err != nil {
		return nil, err
	}
	seller, err := s.access.Seller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	inquiry, err := engagement.NewInquiry(buyer.ID, seller.ID, req.ProductID, req.Subject, req.Message, buyer.FullName())
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos txn.Repositories) error {
		if req.ProductID != nil {
			if _, err := repos.Products().FindBySellerAndID(ctx, seller.ID, *req.ProductID); err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return ErrProductNotFound
				}
				return err
			}
		}
		if err := repos.Inquiries().Create(ctx, inquiry); err != nil {
			return err
		}
		if req.ProductID != nil {
			return repos.Products().IncrementInquiryCount(ctx, *req.ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.logger, inquiry.GetDomainEvents())
	inquiry.ClearDomainEvents()

	s.logger.Info("Inquiry received",
		zap.String("inquiry_id", inquiry.ID.String()),
		zap.String("seller_id", seller.ID.String()),
	)
	return &ContactResponse{Message: InquirySentMessage, InquiryID: inquiry.ID}, nil
}

// List returns the seller's inquiries newest first, optionally filtered by status
func (s *InquiryService) List(ctx context.Context, userID, sellerID uuid.UUID, q InquiryQuery) ([]InquiryResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	filter := engagement.InquiryFilter{
		SellerID: seller.ID,
		Limit:    shared.NewPagination(1, q.Limit, DefaultInquiryLimit).Limit,
	}
	if q.Status != "" {
		status, err := engagement.ParseInquiryStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	listings, err := s.inquiries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]InquiryResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toInquiryResponse(l))
	}
	return out, nil
}

// Respond records the seller's answer and marks the inquiry RESPONDED
func (s *InquiryService) Respond(ctx context.Context, userID, sellerID, inquiryID uuid.UUID, req RespondInquiryRequest) (*InquiryResponse, error) {
	return s.modify(ctx, userID, sellerID, inquiryID, func(i *engagement.Inquiry) error {
		return i.Respond(req.Response)
	})
}

// Close moves the inquiry to CLOSED
func (s *InquiryService) Close(ctx context.Context, userID, sellerID, inquiryID uuid.UUID) (*InquiryResponse, error) {
	return s.modify(ctx, userID, sellerID, inquiryID, func(i *engagement.Inquiry) error {
		return i.Close()
	})
}

// MarkRead flags the inquiry as read
func (s *InquiryService) MarkRead(ctx context.Context, userID, sellerID, inquiryID uuid.UUID) (*InquiryResponse, error) {
	return s.modify(ctx, userID, sellerID, inquiryID, func(i *engagement.Inquiry) error {
		i.MarkRead()
		return nil
	})
}

func (s *InquiryService) modify(ctx context.Context, userID, sellerID, inquiryID uuid.UUID, fn func(*engagement.Inquiry) error) (*InquiryResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	inquiry, err := s.inquiries.FindBySellerAndID(ctx, seller.ID, inquiryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	if err := fn(inquiry); err != nil {
		return nil, err
	}
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, err
	}

	listing := engagement.InquiryListing{Inquiry: inquiry}
	if buyer, err := s.users.FindByID(ctx, inquiry.BuyerID); err == nil {
		listing.BuyerName = buyer.FullName()
		listing.BuyerEmail = buyer.Email
	}
	resp := toInquiryResponse(listing)
	return &resp, nil
}

// buyerUser loads the caller and requires the buyer role
func buyerUser(ctx context.Context, users identity.UserRepository, id uuid.UUID) (*identity.User, error) {
	user, err := users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != identity.RoleBuyer {
		return nil, ErrBuyersOnly
	}
	return user, nil
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Error("Failed to publish engagement events", zap.Error(err))
	}
}
