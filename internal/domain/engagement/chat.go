package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// MessageType classifies a chat message
type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeFile   MessageType = "file"
	MessageTypeSystem MessageType = "system"
)

// ParseMessageType defaults to text and rejects unknown values
func ParseMessageType(s string) (MessageType, error) {
	mt := MessageType(strings.ToLower(strings.TrimSpace(s)))
	switch mt {
	case "":
		return MessageTypeText, nil
	case MessageTypeText, MessageTypeImage, MessageTypeFile, MessageTypeSystem:
		return mt, nil
	}
	return "", shared.InvalidInput("Invalid message type")
}

// ChatRoom is the conversation between one buyer and one seller,
// optionally about one product. The (buyer, seller, product) triple is unique.
type ChatRoom struct {
	shared.BaseEntity
	BuyerID       uuid.UUID
	SellerID      uuid.UUID
	SellerUserID  uuid.UUID
	ProductID     *uuid.UUID
	IsActive      bool
	LastMessageAt time.Time
}

// NewChatRoom opens an active room
func NewChatRoom(buyerID, sellerID, sellerUserID uuid.UUID, productID *uuid.UUID) (*ChatRoom, error) {
	if buyerID == sellerUserID {
		return nil, shared.InvalidInput("Cannot open a chat with yourself")
	}
	base := shared.NewBaseEntity()
	return &ChatRoom{
		BaseEntity:    base,
		BuyerID:       buyerID,
		SellerID:      sellerID,
		SellerUserID:  sellerUserID,
		ProductID:     productID,
		IsActive:      true,
		LastMessageAt: base.CreatedAt,
	}, nil
}

// HasParticipant reports whether the user is the buyer or the seller's user
func (r *ChatRoom) HasParticipant(userID uuid.UUID) bool {
	return r.BuyerID == userID || r.SellerUserID == userID
}

// Post creates a message from sender and bumps LastMessageAt
func (r *ChatRoom) Post(senderID uuid.UUID, content string, mt MessageType, att *Attachment) (*ChatMessage, error) {
	if !r.HasParticipant(senderID) {
		return nil, shared.Forbidden("You are not a participant of this chat")
	}
	if !r.IsActive {
		return nil, shared.InvalidState("Chat room is closed")
	}
	content = strings.TrimSpace(content)
	if content == "" && att == nil {
		return nil, shared.InvalidInput("Message content is required")
	}
	msg := &ChatMessage{
		BaseEntity:  shared.NewBaseEntity(),
		ChatRoomID:  r.ID,
		SenderID:    senderID,
		Content:     content,
		MessageType: mt,
	}
	if att != nil {
		msg.Attachment = *att
	}
	r.LastMessageAt = msg.CreatedAt
	r.UpdatedAt = msg.CreatedAt
	return msg, nil
}

// Attachment describes a file linked to a message
type Attachment struct {
	URL  string
	Name string
	Type string
}

// ChatMessage is one message in a room
type ChatMessage struct {
	shared.BaseEntity
	ChatRoomID  uuid.UUID
	SenderID    uuid.UUID
	Content     string
	MessageType MessageType
	IsRead      bool
	ReadAt      *time.Time
	Attachment  Attachment
}
