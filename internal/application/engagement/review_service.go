package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// SupplierReviewService records buyer ratings of sellers
type SupplierReviewService struct {
	access  SellerResolver
	users   identity.UserRepository
	orders  trade.OrderRepository
	reviews engagement.SupplierReviewRepository
	events  shared.EventPublisher
	logger  *zap.Logger
}

// NewSupplierReviewService creates a new SupplierReviewService
func NewSupplierReviewService(
	access SellerResolver,
	users identity.UserRepository,
	orders trade.OrderRepository,
	reviews engagement.SupplierReviewRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *SupplierReviewService {
	return &SupplierReviewService{
		access:  access,
		users:   users,
		orders:  orders,
		reviews: reviews,
		events:  events,
		logger:  logger,
	}
}

// Add stores a review. It is verified when the buyer has a completed order at
// the seller, restricted to the referenced order when one is given.
func (s *SupplierReviewService) Add(ctx context.Context, buyerID, sellerID uuid.UUID, req CreateSupplierReviewRequest) (*SupplierReviewResponse, error) {
	buyer, err := buyerUser(ctx, s.users, buyerID)
	if err != nil {
		return nil, err
	}
	seller, err := s.access.Seller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	verified, err := s.orders.HasCompletedOrder(ctx, buyer.ID, seller.ID, req.OrderID)
	if err != nil {
		return nil, err
	}

	review, err := engagement.NewSupplierReview(engagement.SupplierReviewInput{
		SellerID:        seller.ID,
		BuyerID:         buyer.ID,
		OrderID:         req.OrderID,
		Rating:          req.Rating,
		Comment:         req.Comment,
		BuyerName:       buyer.FullName(),
		BuyerCountry:    req.BuyerCountry,
		OrderValue:      req.OrderValue,
		ProductCategory: req.ProductCategory,
	}, verified)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	publish(ctx, s.events, s.logger, review.GetDomainEvents())
	review.ClearDomainEvents()

	resp := toSupplierReviewResponse(review)
	return &resp, nil
}
