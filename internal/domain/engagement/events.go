package engagement

import (
	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeInquiry        = "Inquiry"
	AggregateTypeSupplierReview = "SupplierReview"
	AggregateTypeChatRoom       = "ChatRoom"
)

// Event type constants
const (
	EventTypeInquiryReceived = "InquiryReceived"
	EventTypeReviewReceived  = "ReviewReceived"
	EventTypeMessageReceived = "MessageReceived"
)

// InquiryReceivedEvent is published when a buyer contacts a seller
type InquiryReceivedEvent struct {
	shared.BaseDomainEvent
	SellerID  uuid.UUID  `json:"seller_id"`
	BuyerID   uuid.UUID  `json:"buyer_id"`
	BuyerName string     `json:"buyer_name"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	Subject   string     `json:"subject"`
}

// NewInquiryReceivedEvent creates a new InquiryReceivedEvent
func NewInquiryReceivedEvent(i *Inquiry, buyerName string) *InquiryReceivedEvent {
	return &InquiryReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInquiryReceived, AggregateTypeInquiry, i.ID),
		SellerID:        i.SellerID,
		BuyerID:         i.BuyerID,
		BuyerName:       buyerName,
		ProductID:       i.ProductID,
		Subject:         i.Subject,
	}
}

// ReviewReceivedEvent is published when a buyer reviews a seller
type ReviewReceivedEvent struct {
	shared.BaseDomainEvent
	SellerID  uuid.UUID `json:"seller_id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	BuyerName string    `json:"buyer_name"`
	Rating    int       `json:"rating"`
}

// NewReviewReceivedEvent creates a new ReviewReceivedEvent
func NewReviewReceivedEvent(r *SupplierReview) *ReviewReceivedEvent {
	return &ReviewReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewReceived, AggregateTypeSupplierReview, r.ID),
		SellerID:        r.SellerID,
		BuyerID:         r.BuyerID,
		BuyerName:       r.BuyerName,
		Rating:          r.Rating,
	}
}

// MessageReceivedEvent is published when a buyer writes to a seller
type MessageReceivedEvent struct {
	shared.BaseDomainEvent
	SellerID   uuid.UUID `json:"seller_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	MessageID  uuid.UUID `json:"message_id"`
}

// NewMessageReceivedEvent creates a new MessageReceivedEvent
func NewMessageReceivedEvent(room *ChatRoom, msg *ChatMessage, senderName string) *MessageReceivedEvent {
	return &MessageReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessageReceived, AggregateTypeChatRoom, room.ID),
		SellerID:        room.SellerID,
		SenderID:        msg.SenderID,
		SenderName:      senderName,
		MessageID:       msg.ID,
	}
}
