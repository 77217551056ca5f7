package engagement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/engagement"
)

// List sizes
const (
	DefaultInquiryLimit = 20
	DefaultMessageLimit = 50
)

// ContactRequest is a buyer's message to a seller
type ContactRequest struct {
	Subject   string     `json:"subject"`
	Message   string     `json:"message"`
	ProductID *uuid.UUID `json:"productId"`
}

// ContactResponse acknowledges a stored inquiry
type ContactResponse struct {
	Message   string    `json:"message"`
	InquiryID uuid.UUID `json:"inquiryId"`
}

// InquiryQuery filters the seller's inquiry list
type InquiryQuery struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
}

// RespondInquiryRequest carries the seller's answer
type RespondInquiryRequest struct {
	Response string `json:"response" binding:"required"`
}

// InquiryResponse is the seller-side projection of an inquiry
type InquiryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Subject     string     `json:"subject"`
	Message     string     `json:"message"`
	Status      string     `json:"status"`
	IsRead      bool       `json:"isRead"`
	Response    *string    `json:"response"`
	BuyerName   string     `json:"buyerName"`
	BuyerEmail  *string    `json:"buyerEmail"`
	ProductName *string    `json:"productName"`
	CreatedAt   time.Time  `json:"createdAt"`
	RespondedAt *time.Time `json:"respondedAt"`
}

func toInquiryResponse(l engagement.InquiryListing) InquiryResponse {
	name := l.BuyerName
	if name == "" {
		name = "Unknown"
	}
	return InquiryResponse{
		ID:          l.ID,
		Subject:     l.Subject,
		Message:     l.Message,
		Status:      string(l.Status),
		IsRead:      l.IsRead,
		Response:    optional(l.Response),
		BuyerName:   name,
		BuyerEmail:  optional(l.BuyerEmail),
		ProductName: optional(l.ProductName),
		CreatedAt:   l.CreatedAt,
		RespondedAt: l.RespondedAt,
	}
}

// CreateSupplierReviewRequest is a buyer's rating of a seller
type CreateSupplierReviewRequest struct {
	OrderID         *uuid.UUID      `json:"orderId"`
	Rating          int             `json:"rating" binding:"required,min=1,max=5"`
	Comment         string          `json:"comment"`
	BuyerCountry    string          `json:"buyerCountry"`
	OrderValue      decimal.Decimal `json:"orderValue"`
	ProductCategory string          `json:"productCategory"`
}

// SupplierReviewResponse is a stored seller review
type SupplierReviewResponse struct {
	ID              uuid.UUID       `json:"id"`
	SellerID        uuid.UUID       `json:"sellerId"`
	OrderID         *uuid.UUID      `json:"orderId"`
	Rating          int             `json:"rating"`
	Comment         string          `json:"comment"`
	BuyerName       string          `json:"buyerName"`
	BuyerCountry    string          `json:"buyerCountry"`
	OrderValue      decimal.Decimal `json:"orderValue"`
	ProductCategory string          `json:"productCategory"`
	IsVerified      bool            `json:"isVerified"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func toSupplierReviewResponse(r *engagement.SupplierReview) SupplierReviewResponse {
	return SupplierReviewResponse{
		ID:              r.ID,
		SellerID:        r.SellerID,
		OrderID:         r.OrderID,
		Rating:          r.Rating,
		Comment:         r.Comment,
		BuyerName:       r.BuyerName,
		BuyerCountry:    r.BuyerCountry,
		OrderValue:      r.OrderValue,
		ProductCategory: r.ProductCategory,
		IsVerified:      r.IsVerified,
		CreatedAt:       r.CreatedAt,
	}
}

// OpenRoomRequest opens (or reopens) the buyer's room with a seller
type OpenRoomRequest struct {
	SellerID  uuid.UUID  `json:"sellerId" binding:"required"`
	ProductID *uuid.UUID `json:"productId"`
}

// PostMessageRequest is one chat message
type PostMessageRequest struct {
	Content        string `json:"content"`
	MessageType    string `json:"messageType"`
	AttachmentURL  string `json:"attachmentUrl"`
	AttachmentName string `json:"attachmentName"`
	AttachmentType string `json:"attachmentType"`
}

func (r PostMessageRequest) attachment() *engagement.Attachment {
	if r.AttachmentURL == "" {
		return nil
	}
	return &engagement.Attachment{URL: r.AttachmentURL, Name: r.AttachmentName, Type: r.AttachmentType}
}

// ChatRoomResponse is a room as seen by one participant
type ChatRoomResponse struct {
	ID            uuid.UUID  `json:"id"`
	BuyerID       uuid.UUID  `json:"buyerId"`
	BuyerName     string     `json:"buyerName,omitempty"`
	SellerID      uuid.UUID  `json:"sellerId"`
	StoreName     string     `json:"storeName,omitempty"`
	ProductID     *uuid.UUID `json:"productId"`
	ProductName   string     `json:"productName,omitempty"`
	IsActive      bool       `json:"isActive"`
	LastMessage   string     `json:"lastMessage,omitempty"`
	LastMessageAt time.Time  `json:"lastMessageAt"`
	UnreadCount   int64      `json:"unreadCount"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toChatRoomResponse(r *engagement.ChatRoom) ChatRoomResponse {
	return ChatRoomResponse{
		ID:            r.ID,
		BuyerID:       r.BuyerID,
		SellerID:      r.SellerID,
		ProductID:     r.ProductID,
		IsActive:      r.IsActive,
		LastMessageAt: r.LastMessageAt,
		CreatedAt:     r.CreatedAt,
	}
}

func toChatRoomListingResponse(l engagement.ChatRoomListing) ChatRoomResponse {
	resp := toChatRoomResponse(l.ChatRoom)
	resp.BuyerName = l.BuyerName
	resp.StoreName = l.StoreName
	resp.ProductName = l.ProductName
	resp.LastMessage = l.LastMessage
	resp.UnreadCount = l.UnreadCount
	return resp
}

// AttachmentResponse is the file linked to a message
type AttachmentResponse struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// ChatMessageResponse is one message of a room
type ChatMessageResponse struct {
	ID          uuid.UUID           `json:"id"`
	ChatRoomID  uuid.UUID           `json:"chatRoomId"`
	SenderID    uuid.UUID           `json:"senderId"`
	Content     string              `json:"content"`
	MessageType string              `json:"messageType"`
	IsRead      bool                `json:"isRead"`
	ReadAt      *time.Time          `json:"readAt"`
	Attachment  *AttachmentResponse `json:"attachment,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func toChatMessageResponse(m *engagement.ChatMessage) ChatMessageResponse {
	resp := ChatMessageResponse{
		ID:          m.ID,
		ChatRoomID:  m.ChatRoomID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		MessageType: string(m.MessageType),
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.Attachment.URL != "" {
		resp.Attachment = &AttachmentResponse{URL: m.Attachment.URL, Name: m.Attachment.Name, Type: m.Attachment.Type}
	}
	return resp
}

// MarkReadResponse reports how many messages were flagged read
type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
