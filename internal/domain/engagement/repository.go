package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InquiryListing is an inquiry joined with buyer and product names
type InquiryListing struct {
	*Inquiry
	BuyerName   string
	BuyerEmail  string
	ProductName string
}

// InquiryFilter scopes the seller's inquiry list
type InquiryFilter struct {
	SellerID uuid.UUID
	Status   *InquiryStatus
	Limit    int
}

// InquiryRepository persists inquiries
type InquiryRepository interface {
	Create(ctx context.Context, i *Inquiry) error
	Update(ctx context.Context, i *Inquiry) error
	FindBySellerAndID(ctx context.Context, sellerID, id uuid.UUID) (*Inquiry, error)
	List(ctx context.Context, filter InquiryFilter) ([]InquiryListing, error)
	CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error)
}

// SupplierReviewRepository persists seller reviews
type SupplierReviewRepository interface {
	Create(ctx context.Context, r *SupplierReview) error
	RecentBySeller(ctx context.Context, sellerID uuid.UUID, limit int) ([]*SupplierReview, error)
}

// ChatRoomListing is a room with the counterpart names and unread count for the viewer
type ChatRoomListing struct {
	*ChatRoom
	BuyerName   string
	StoreName   string
	ProductName string
	UnreadCount int64
	LastMessage string
}

// ChatRepository persists chat rooms and messages
type ChatRepository interface {
	// FindRoom looks up the room of the (buyer, seller, product) triple
	FindRoom(ctx context.Context, buyerID, sellerID uuid.UUID, productID *uuid.UUID) (*ChatRoom, error)
	// CreateRoom returns shared.ErrAlreadyExists when the triple already has a room
	CreateRoom(ctx context.Context, room *ChatRoom) error
	FindRoomByID(ctx context.Context, id uuid.UUID) (*ChatRoom, error)
	ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]ChatRoomListing, error)
	// AddMessage stores the message and bumps the room's last_message_at
	AddMessage(ctx context.Context, room *ChatRoom, msg *ChatMessage) error
	ListMessages(ctx context.Context, roomID uuid.UUID, limit int) ([]*ChatMessage, error)
	// MarkRead flags messages not sent by readerID as read and returns how many changed
	MarkRead(ctx context.Context, roomID, readerID uuid.UUID, at time.Time) (int64, error)
	// CountReceivedBySellerBetween counts messages sent to the seller in [from, to)
	CountReceivedBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error)
}

// ProductViewRepository persists product views
type ProductViewRepository interface {
	Create(ctx context.Context, v *ProductView) error
	CountBySellerBetween(ctx context.Context, sellerID uuid.UUID, from, to time.Time) (int64, error)
}
