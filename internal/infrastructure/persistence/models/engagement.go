package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// InquiryModel is the persistence model for the Inquiry aggregate.
type InquiryModel struct {
	AggregateModel
	BuyerID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	SellerID    uuid.UUID                `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID               `gorm:"type:uuid;index"`
	Subject     string                   `gorm:"type:varchar(255)"`
	Message     string                   `gorm:"type:text;not null"`
	Status      engagement.InquiryStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	IsRead      bool                     `gorm:"not null;default:false"`
	Response    string                   `gorm:"type:text"`
	RespondedAt *time.Time
}

// TableName returns the table name for GORM
func (InquiryModel) TableName() string {
	return "inquiries"
}

// ToDomain converts the persistence model to a domain Inquiry.
func (m *InquiryModel) ToDomain() *engagement.Inquiry {
	return &engagement.Inquiry{
		BaseAggregateRoot: m.ToAggregateRoot(),
		BuyerID:           m.BuyerID,
		SellerID:          m.SellerID,
		ProductID:         m.ProductID,
		Subject:           m.Subject,
		Message:           m.Message,
		Status:            m.Status,
		IsRead:            m.IsRead,
		Response:          m.Response,
		RespondedAt:       m.RespondedAt,
	}
}

// FromDomain populates the persistence model from a domain Inquiry.
func (m *InquiryModel) FromDomain(i *engagement.Inquiry) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.BuyerID = i.BuyerID
	m.SellerID = i.SellerID
	m.ProductID = i.ProductID
	m.Subject = i.Subject
	m.Message = i.Message
	m.Status = i.Status
	m.IsRead = i.IsRead
	m.Response = i.Response
	m.RespondedAt = i.RespondedAt
}

// SupplierReviewModel is the persistence model for seller reviews.
type SupplierReviewModel struct {
	AggregateModel
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID         *uuid.UUID      `gorm:"type:uuid"`
	Rating          int             `gorm:"not null"`
	Comment         string          `gorm:"type:text"`
	BuyerName       string          `gorm:"type:varchar(120)"`
	BuyerCountry    string          `gorm:"type:varchar(100)"`
	OrderValue      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ProductCategory string          `gorm:"type:varchar(120)"`
	IsVerified      bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SupplierReviewModel) TableName() string {
	return "supplier_reviews"
}

// ToDomain converts the persistence model to a domain SupplierReview.
func (m *SupplierReviewModel) ToDomain() *engagement.SupplierReview {
	return &engagement.SupplierReview{
		BaseAggregateRoot: m.ToAggregateRoot(),
		SellerID:          m.SellerID,
		BuyerID:           m.BuyerID,
		OrderID:           m.OrderID,
		Rating:            m.Rating,
		Comment:           m.Comment,
		BuyerName:         m.BuyerName,
		BuyerCountry:      m.BuyerCountry,
		OrderValue:        m.OrderValue,
		ProductCategory:   m.ProductCategory,
		IsVerified:        m.IsVerified,
	}
}

// FromDomain populates the persistence model from a domain SupplierReview.
func (m *SupplierReviewModel) FromDomain(r *engagement.SupplierReview) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.SellerID = r.SellerID
	m.BuyerID = r.BuyerID
	m.OrderID = r.OrderID
	m.Rating = r.Rating
	m.Comment = r.Comment
	m.BuyerName = r.BuyerName
	m.BuyerCountry = r.BuyerCountry
	m.OrderValue = r.OrderValue
	m.ProductCategory = r.ProductCategory
	m.IsVerified = r.IsVerified
}

// ChatRoomModel is the persistence model for chat rooms.
// product_id is nullable, so two partial unique indexes keep one room per triple.
type ChatRoomModel struct {
	BaseModel
	BuyerID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_chat_room_triple,priority:1,where:product_id IS NOT NULL;uniqueIndex:idx_chat_room_pair,priority:1,where:product_id IS NULL"`
	SellerID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_chat_room_triple,priority:2,where:product_id IS NOT NULL;uniqueIndex:idx_chat_room_pair,priority:2,where:product_id IS NULL"`
	SellerUserID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID     *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_chat_room_triple,priority:3,where:product_id IS NOT NULL"`
	IsActive      bool       `gorm:"not null;default:true"`
	LastMessageAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ChatRoomModel) TableName() string {
	return "chat_rooms"
}

// ToDomain converts the persistence model to a domain ChatRoom.
func (m *ChatRoomModel) ToDomain() *engagement.ChatRoom {
	return &engagement.ChatRoom{
		BaseEntity:    m.BaseModel.ToDomain(),
		BuyerID:       m.BuyerID,
		SellerID:      m.SellerID,
		SellerUserID:  m.SellerUserID,
		ProductID:     m.ProductID,
		IsActive:      m.IsActive,
		LastMessageAt: m.LastMessageAt,
	}
}

// FromDomain populates the persistence model from a domain ChatRoom.
func (m *ChatRoomModel) FromDomain(r *engagement.ChatRoom) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.BuyerID = r.BuyerID
	m.SellerID = r.SellerID
	m.SellerUserID = r.SellerUserID
	m.ProductID = r.ProductID
	m.IsActive = r.IsActive
	m.LastMessageAt = r.LastMessageAt
}

// ChatMessageModel is the persistence model for chat messages.
type ChatMessageModel struct {
	BaseModel
	ChatRoomID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	SenderID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	Content        string                 `gorm:"type:text;not null"`
	MessageType    engagement.MessageType `gorm:"type:varchar(50);not null;default:'text'"`
	IsRead         bool                   `gorm:"not null;default:false"`
	ReadAt         *time.Time
	AttachmentURL  string `gorm:"type:varchar(255)"`
	AttachmentName string `gorm:"type:varchar(255)"`
	AttachmentType string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts the persistence model to a domain ChatMessage.
func (m *ChatMessageModel) ToDomain() *engagement.ChatMessage {
	return &engagement.ChatMessage{
		BaseEntity:  shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ChatRoomID:  m.ChatRoomID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		MessageType: m.MessageType,
		IsRead:      m.IsRead,
		ReadAt:      m.ReadAt,
		Attachment: engagement.Attachment{
			URL:  m.AttachmentURL,
			Name: m.AttachmentName,
			Type: m.AttachmentType,
		},
	}
}

// FromDomain populates the persistence model from a domain ChatMessage.
func (m *ChatMessageModel) FromDomain(msg *engagement.ChatMessage) {
	m.FromDomainBaseEntity(msg.BaseEntity)
	m.ChatRoomID = msg.ChatRoomID
	m.SenderID = msg.SenderID
	m.Content = msg.Content
	m.MessageType = msg.MessageType
	m.IsRead = msg.IsRead
	m.ReadAt = msg.ReadAt
	m.AttachmentURL = msg.Attachment.URL
	m.AttachmentName = msg.Attachment.Name
	m.AttachmentType = msg.Attachment.Type
}

// ProductViewModel is the persistence model for product page views.
type ProductViewModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	IPAddress string     `gorm:"type:varchar(45)"`
	UserAgent string     `gorm:"type:text"`
	ViewedAt  time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProductViewModel) TableName() string {
	return "product_views"
}

// ProductViewModelFromDomain creates a new persistence model from a domain ProductView.
func ProductViewModelFromDomain(v *engagement.ProductView) *ProductViewModel {
	return &ProductViewModel{
		ID:        v.ID,
		ProductID: v.ProductID,
		UserID:    v.UserID,
		IPAddress: v.IPAddress,
		UserAgent: v.UserAgent,
		ViewedAt:  v.ViewedAt,
	}
}
