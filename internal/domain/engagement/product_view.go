package engagement

import (
	"time"

	"github.com/google/uuid"
)

// ProductView records one product page view
type ProductView struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    *uuid.UUID
	IPAddress string
	UserAgent string
	ViewedAt  time.Time
}

// NewProductView creates a view record; userID is nil for anonymous visitors
func NewProductView(productID uuid.UUID, userID *uuid.UUID, ip, userAgent string) *ProductView {
	if len(ip) > 45 {
		ip = ip[:45]
	}
	return &ProductView{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		IPAddress: ip,
		UserAgent: userAgent,
		ViewedAt:  time.Now(),
	}
}
