package engagement

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// SupplierReview is a buyer's rating of a seller
type SupplierReview struct {
	shared.BaseAggregateRoot
	SellerID        uuid.UUID
	BuyerID         uuid.UUID
	OrderID         *uuid.UUID
	Rating          int
	Comment         string
	BuyerName       string
	BuyerCountry    string
	OrderValue      decimal.Decimal
	ProductCategory string
	IsVerified      bool
}

// SupplierReviewInput holds the fields a buyer submits
type SupplierReviewInput struct {
	SellerID        uuid.UUID
	BuyerID         uuid.UUID
	OrderID         *uuid.UUID
	Rating          int
	Comment         string
	BuyerName       string
	BuyerCountry    string
	OrderValue      decimal.Decimal
	ProductCategory string
}

// NewSupplierReview validates the rating and records ReviewReceived.
// verified is true when the review is backed by a completed order.
func NewSupplierReview(in SupplierReviewInput, verified bool) (*SupplierReview, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, shared.InvalidInput("Rating must be between 1 and 5")
	}
	r := &SupplierReview{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          in.SellerID,
		BuyerID:           in.BuyerID,
		OrderID:           in.OrderID,
		Rating:            in.Rating,
		Comment:           strings.TrimSpace(in.Comment),
		BuyerName:         strings.TrimSpace(in.BuyerName),
		BuyerCountry:      strings.TrimSpace(in.BuyerCountry),
		OrderValue:        in.OrderValue,
		ProductCategory:   strings.TrimSpace(in.ProductCategory),
		IsVerified:        verified,
	}
	r.AddDomainEvent(NewReviewReceivedEvent(r))
	return r, nil
}
