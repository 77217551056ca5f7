package report

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// ActivityType classifies an entry of the seller activity feed
type ActivityType string

const (
	ActivityInquiry ActivityType = "INQUIRY"
	ActivityOrder   ActivityType = "ORDER"
	ActivityView    ActivityType = "VIEW"
	ActivityMessage ActivityType = "MESSAGE"
	ActivityReview  ActivityType = "REVIEW"
)

// Related entity types
const (
	EntityProduct = "product"
	EntityBuyer   = "buyer"
	EntityOrder   = "order"
)

// RelatedEntity points at the record an activity is about
type RelatedEntity struct {
	ID   *uuid.UUID
	Name string
	Type string
}

// Activity is one entry of a seller's activity feed
type Activity struct {
	ID          uuid.UUID
	SellerID    uuid.UUID
	Type        ActivityType
	Title       string
	Description string
	Related     RelatedEntity
	CreatedAt   time.Time
}

// NewActivity creates a feed entry
func NewActivity(sellerID uuid.UUID, t ActivityType, title, description string, related RelatedEntity) (*Activity, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.InvalidInput("Activity title is required")
	}
	if len(title) > 255 {
		title = title[:255]
	}
	return &Activity{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Type:        t,
		Title:       title,
		Description: description,
		Related:     related,
		CreatedAt:   time.Now(),
	}, nil
}
