package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// ProductReview is a buyer's rating of a product
type ProductReview struct {
	shared.BaseEntity
	ProductID uuid.UUID
	BuyerID   uuid.UUID
	Rating    int
	Comment   string
}

// NewProductReview creates a review with a rating between 1 and 5
func NewProductReview(productID, buyerID uuid.UUID, rating int, comment string) (*ProductReview, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.InvalidInput("Rating must be between 1 and 5")
	}
	return &ProductReview{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		BuyerID:    buyerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}, nil
}

// Favorite marks a product as saved by a user
type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	AddedAt   time.Time
}

// NewFavorite creates a favorite
func NewFavorite(userID, productID uuid.UUID) *Favorite {
	return &Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}
}
