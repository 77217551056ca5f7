package engagement

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInquiry(t *testing.T) {
	t.Run("defaults subject and raises event", func(t *testing.T) {
		inq, err := NewInquiry(uuid.New(), uuid.New(), nil, " ", "Do you ship to Lagos?", "Ada")
		require.NoError(t, err)
		assert.Equal(t, DefaultInquirySubject, inq.Subject)
		assert.Equal(t, InquiryStatusPending, inq.Status)
		assert.False(t, inq.IsRead)

		events := inq.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInquiryReceived, events[0].EventType())
	})

	t.Run("requires a message", func(t *testing.T) {
		_, err := NewInquiry(uuid.New(), uuid.New(), nil, "Hi", "   ", "Ada")
		assert.Error(t, err)
	})
}

func TestInquiry_Lifecycle(t *testing.T) {
	t.Run("pending to responded to closed", func(t *testing.T) {
		inq, _ := NewInquiry(uuid.New(), uuid.New(), nil, "", "price?", "")
		require.NoError(t, inq.Respond("10 USD"))
		assert.Equal(t, InquiryStatusResponded, inq.Status)
		assert.NotNil(t, inq.RespondedAt)
		assert.True(t, inq.IsRead)

		require.NoError(t, inq.Close())
		assert.Equal(t, InquiryStatusClosed, inq.Status)
	})

	t.Run("pending can close directly", func(t *testing.T) {
		inq, _ := NewInquiry(uuid.New(), uuid.New(), nil, "", "price?", "")
		require.NoError(t, inq.Close())
		assert.Error(t, inq.Close())
		assert.Error(t, inq.Respond("late"))
	})

	t.Run("respond requires text", func(t *testing.T) {
		inq, _ := NewInquiry(uuid.New(), uuid.New(), nil, "", "price?", "")
		assert.Error(t, inq.Respond(""))
	})
}

func TestParseInquiryStatus(t *testing.T) {
	st, err := ParseInquiryStatus("responded")
	require.NoError(t, err)
	assert.Equal(t, InquiryStatusResponded, st)

	_, err = ParseInquiryStatus("open")
	assert.Error(t, err)
}

func TestNewSupplierReview(t *testing.T) {
	in := SupplierReviewInput{SellerID: uuid.New(), BuyerID: uuid.New(), Rating: 4, Comment: " good "}
	r, err := NewSupplierReview(in, true)
	require.NoError(t, err)
	assert.Equal(t, "good", r.Comment)
	assert.True(t, r.IsVerified)
	assert.Len(t, r.GetDomainEvents(), 1)

	in.Rating = 6
	_, err = NewSupplierReview(in, false)
	assert.Error(t, err)
}

func TestChatRoom(t *testing.T) {
	buyer, sellerUser := uuid.New(), uuid.New()
	room, err := NewChatRoom(buyer, uuid.New(), sellerUser, nil)
	require.NoError(t, err)

	t.Run("participants can post", func(t *testing.T) {
		msg, err := room.Post(buyer, "hello", MessageTypeText, nil)
		require.NoError(t, err)
		assert.Equal(t, room.ID, msg.ChatRoomID)
		assert.Equal(t, msg.CreatedAt, room.LastMessageAt)
	})

	t.Run("outsiders cannot post", func(t *testing.T) {
		_, err := room.Post(uuid.New(), "hello", MessageTypeText, nil)
		assert.Error(t, err)
	})

	t.Run("empty content needs an attachment", func(t *testing.T) {
		_, err := room.Post(sellerUser, "", MessageTypeText, nil)
		assert.Error(t, err)

		msg, err := room.Post(sellerUser, "", MessageTypeFile, &Attachment{URL: "/images/a.pdf", Name: "a.pdf"})
		require.NoError(t, err)
		assert.Equal(t, "a.pdf", msg.Attachment.Name)
	})

	t.Run("cannot chat with yourself", func(t *testing.T) {
		_, err := NewChatRoom(buyer, uuid.New(), buyer, nil)
		assert.Error(t, err)
	})
}

func TestParseMessageType(t *testing.T) {
	mt, err := ParseMessageType("")
	require.NoError(t, err)
	assert.Equal(t, MessageTypeText, mt)

	mt, err = ParseMessageType("IMAGE")
	require.NoError(t, err)
	assert.Equal(t, MessageTypeImage, mt)

	_, err = ParseMessageType("video")
	assert.Error(t, err)
}

func TestNewProductView(t *testing.T) {
	uid := uuid.New()
	v := NewProductView(uuid.New(), &uid, strings.Repeat("1", 60), "curl")
	assert.Len(t, v.IPAddress, 45)
	assert.Equal(t, &uid, v.UserID)
}
