package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftsupply/backend/internal/domain/shared"
)

// DefaultInquirySubject is used when the buyer leaves the subject empty
const DefaultInquirySubject = "General Inquiry"

// InquiryStatus represents the lifecycle state of an inquiry
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "PENDING"
	InquiryStatusResponded InquiryStatus = "RESPONDED"
	InquiryStatusClosed    InquiryStatus = "CLOSED"
)

// ParseInquiryStatus parses a case-insensitive status
func ParseInquiryStatus(s string) (InquiryStatus, error) {
	st := InquiryStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusClosed:
		return st, nil
	}
	return "", shared.InvalidInput("Invalid status filter")
}

// Inquiry is a buyer-initiated message to a seller, optionally about one product
type Inquiry struct {
	shared.BaseAggregateRoot
	BuyerID     uuid.UUID
	SellerID    uuid.UUID
	ProductID   *uuid.UUID
	Subject     string
	Message     string
	Status      InquiryStatus
	IsRead      bool
	Response    string
	RespondedAt *time.Time
}

// NewInquiry creates a pending, unread inquiry
func NewInquiry(buyerID, sellerID uuid.UUID, productID *uuid.UUID, subject, message, buyerName string) (*Inquiry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, shared.InvalidInput("Message is required")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = DefaultInquirySubject
	}
	inq := &Inquiry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		SellerID:          sellerID,
		ProductID:         productID,
		Subject:           subject,
		Message:           message,
		Status:            InquiryStatusPending,
	}
	inq.AddDomainEvent(NewInquiryReceivedEvent(inq, buyerName))
	return inq, nil
}

// Respond records the seller's answer. Closed inquiries cannot be answered.
func (i *Inquiry) Respond(response string) error {
	response = strings.TrimSpace(response)
	if response == "" {
		return shared.InvalidInput("Response is required")
	}
	if i.Status == InquiryStatusClosed {
		return shared.InvalidState("Inquiry is closed")
	}
	now := time.Now()
	i.Response = response
	i.RespondedAt = &now
	i.Status = InquiryStatusResponded
	i.IsRead = true
	i.Touch()
	return nil
}

// Close moves the inquiry to CLOSED from any open state
func (i *Inquiry) Close() error {
	if i.Status == InquiryStatusClosed {
		return shared.InvalidState("Inquiry is already closed")
	}
	i.Status = InquiryStatusClosed
	i.Touch()
	return nil
}

// MarkRead flags the inquiry as read by the seller
func (i *Inquiry) MarkRead() {
	if i.IsRead {
		return
	}
	i.IsRead = true
	i.Touch()
}

