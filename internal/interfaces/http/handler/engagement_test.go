package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	engagementapp "github.com/swiftsupply/backend/internal/application/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
)

type mockInquiryService struct {
	mock.Mock
}

func (m *mockInquiryService) Contact(ctx context.Context, buyerID, sellerID uuid.UUID, req engagementapp.ContactRequest) (*engagementapp.ContactResponse, error) {
	return mockResult[*engagementapp.ContactResponse](m.Called(ctx, buyerID, sellerID, req))
}

func (m *mockInquiryService) List(ctx context.Context, userID, sellerID uuid.UUID, q engagementapp.InquiryQuery) ([]engagementapp.InquiryResponse, error) {
	return mockResult[[]engagementapp.InquiryResponse](m.Called(ctx, userID, sellerID, q))
}

func (m *mockInquiryService) Respond(ctx context.Context, userID, sellerID, inquiryID uuid.UUID, req engagementapp.RespondInquiryRequest) (*engagementapp.InquiryResponse, error) {
	return mockResult[*engagementapp.InquiryResponse](m.Called(ctx, userID, sellerID, inquiryID, req))
}

func (m *mockInquiryService) Close(ctx context.Context, userID, sellerID, inquiryID uuid.UUID) (*engagementapp.InquiryResponse, error) {
	return mockResult[*engagementapp.InquiryResponse](m.Called(ctx, userID, sellerID, inquiryID))
}

func (m *mockInquiryService) MarkRead(ctx context.Context, userID, sellerID, inquiryID uuid.UUID) (*engagementapp.InquiryResponse, error) {
	return mockResult[*engagementapp.InquiryResponse](m.Called(ctx, userID, sellerID, inquiryID))
}

type mockSupplierReviewService struct {
	mock.Mock
}

func (m *mockSupplierReviewService) Add(ctx context.Context, buyerID, sellerID uuid.UUID, req engagementapp.CreateSupplierReviewRequest) (*engagementapp.SupplierReviewResponse, error) {
	return mockResult[*engagementapp.SupplierReviewResponse](m.Called(ctx, buyerID, sellerID, req))
}

type mockChatService struct {
	mock.Mock
}

func (m *mockChatService) OpenRoom(ctx context.Context, buyerID uuid.UUID, req engagementapp.OpenRoomRequest) (*engagementapp.ChatRoomResponse, bool, error) {
	args := m.Called(ctx, buyerID, req)
	room, _ := args.Get(0).(*engagementapp.ChatRoomResponse)
	return room, args.Bool(1), args.Error(2)
}

func (m *mockChatService) ListRooms(ctx context.Context, userID uuid.UUID) ([]engagementapp.ChatRoomResponse, error) {
	return mockResult[[]engagementapp.ChatRoomResponse](m.Called(ctx, userID))
}

func (m *mockChatService) Messages(ctx context.Context, userID, roomID uuid.UUID, limit int) ([]engagementapp.ChatMessageResponse, error) {
	return mockResult[[]engagementapp.ChatMessageResponse](m.Called(ctx, userID, roomID, limit))
}

func (m *mockChatService) Post(ctx context.Context, userID, roomID uuid.UUID, req engagementapp.PostMessageRequest) (*engagementapp.ChatMessageResponse, error) {
	return mockResult[*engagementapp.ChatMessageResponse](m.Called(ctx, userID, roomID, req))
}

func (m *mockChatService) MarkRead(ctx context.Context, userID, roomID uuid.UUID) (*engagementapp.MarkReadResponse, error) {
	return mockResult[*engagementapp.MarkReadResponse](m.Called(ctx, userID, roomID))
}

type engagementMocks struct {
	inquiries *mockInquiryService
	reviews   *mockSupplierReviewService
	chat      *mockChatService
}

func newEngagementRouter(userID uuid.UUID, role identity.Role) (*gin.Engine, engagementMocks) {
	m := engagementMocks{new(mockInquiryService), new(mockSupplierReviewService), new(mockChatService)}
	h := NewEngagementHandler(m.inquiries, m.reviews, m.chat)
	r := gin.New()
	r.Use(asUser(userID, role))
	r.POST("/suppliers/:id/contact", h.Contact)
	r.GET("/suppliers/:id/inquiries", h.ListInquiries)
	r.PUT("/suppliers/:id/inquiries/:inquiryId/respond", h.RespondInquiry)
	r.PUT("/suppliers/:id/inquiries/:inquiryId/close", h.CloseInquiry)
	r.PUT("/suppliers/:id/inquiries/:inquiryId/read", h.MarkInquiryRead)
	r.POST("/suppliers/:id/reviews", h.AddSupplierReview)
	r.POST("/chat/rooms", h.OpenRoom)
	r.GET("/chat/rooms", h.ListRooms)
	r.GET("/chat/rooms/:id/messages", h.Messages)
	r.POST("/chat/rooms/:id/messages", h.PostMessage)
	r.PUT("/chat/rooms/:id/read", h.MarkRoomRead)
	return r, m
}

func TestEngagementHandler_Contact(t *testing.T) {
	buyerID, sellerID, inquiryID := uuid.New(), uuid.New(), uuid.New()
	router, m := newEngagementRouter(buyerID, identity.RoleBuyer)
	m.inquiries.On("Contact", mock.Anything, buyerID, sellerID, engagementapp.ContactRequest{Message: "Bulk pricing?"}).
		Return(&engagementapp.ContactResponse{Message: "Inquiry sent successfully", InquiryID: inquiryID}, nil)

	rec := performRequest(router, http.MethodPost, "/suppliers/"+sellerID.String()+"/contact", map[string]any{"message": "Bulk pricing?"})

	require.Equal(t, http.StatusCreated, rec.Code)
	var out engagementapp.ContactResponse
	decodeData(t, rec, &out)
	assert.Equal(t, inquiryID, out.InquiryID)
}

func TestEngagementHandler_Inquiries(t *testing.T) {
	userID, sellerID, inquiryID := uuid.New(), uuid.New(), uuid.New()
	base := "/suppliers/" + sellerID.String() + "/inquiries"

	t.Run("list with status and default limit", func(t *testing.T) {
		router, m := newEngagementRouter(userID, identity.RoleSeller)
		m.inquiries.On("List", mock.Anything, userID, sellerID, engagementapp.InquiryQuery{Status: "pending", Limit: engagementapp.DefaultInquiryLimit}).
			Return([]engagementapp.InquiryResponse{{ID: inquiryID, Status: "pending"}}, nil)

		rec := performRequest(router, http.MethodGet, base+"?status=pending", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var out []engagementapp.InquiryResponse
		decodeData(t, rec, &out)
		require.Len(t, out, 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		router, m := newEngagementRouter(userID, identity.RoleSeller)
		m.inquiries.On("List", mock.Anything, userID, sellerID, mock.Anything).Return(nil, shared.InvalidInput("Invalid status filter"))

		rec := performRequest(router, http.MethodGet, base+"?status=archived", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("respond requires a response", func(t *testing.T) {
		router, m := newEngagementRouter(userID, identity.RoleSeller)
		rec := performRequest(router, http.MethodPut, base+"/"+inquiryID.String()+"/respond", map[string]any{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeErrorCode(t, rec))
		m.inquiries.AssertNotCalled(t, "Respond")
	})

	t.Run("respond close and read", func(t *testing.T) {
		router, m := newEngagementRouter(userID, identity.RoleSeller)
		m.inquiries.On("Respond", mock.Anything, userID, sellerID, inquiryID, engagementapp.RespondInquiryRequest{Response: "Yes"}).
			Return(&engagementapp.InquiryResponse{ID: inquiryID, Status: "responded"}, nil)
		m.inquiries.On("Close", mock.Anything, userID, sellerID, inquiryID).
			Return(&engagementapp.InquiryResponse{ID: inquiryID, Status: "closed"}, nil)
		m.inquiries.On("MarkRead", mock.Anything, userID, sellerID, inquiryID).
			Return(&engagementapp.InquiryResponse{ID: inquiryID}, nil)

		rec := performRequest(router, http.MethodPut, base+"/"+inquiryID.String()+"/respond", map[string]any{"response": "Yes"})
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = performRequest(router, http.MethodPut, base+"/"+inquiryID.String()+"/close", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		rec = performRequest(router, http.MethodPut, base+"/"+inquiryID.String()+"/read", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		m.inquiries.AssertExpectations(t)

		rec = performRequest(router, http.MethodPut, base+"/nope/close", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid inquiry ID")
	})
}

func TestEngagementHandler_AddSupplierReview(t *testing.T) {
	buyerID, sellerID := uuid.New(), uuid.New()

	router, m := newEngagementRouter(buyerID, identity.RoleBuyer)
	m.reviews.On("Add", mock.Anything, buyerID, sellerID, mock.MatchedBy(func(r engagementapp.CreateSupplierReviewRequest) bool {
		return r.Rating == 5
	})).Return(&engagementapp.SupplierReviewResponse{SellerID: sellerID, Rating: 5}, nil)

	rec := performRequest(router, http.MethodPost, "/suppliers/"+sellerID.String()+"/reviews", map[string]any{"rating": 5, "comment": "Fast"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(router, http.MethodPost, "/suppliers/"+sellerID.String()+"/reviews", map[string]any{"rating": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.reviews.AssertNumberOfCalls(t, "Add", 1)
}

func TestEngagementHandler_OpenRoom(t *testing.T) {
	buyerID, sellerID := uuid.New(), uuid.New()
	room := &engagementapp.ChatRoomResponse{ID: uuid.New(), BuyerID: buyerID, SellerID: sellerID}

	for created, want := range map[bool]int{true: http.StatusCreated, false: http.StatusOK} {
		router, m := newEngagementRouter(buyerID, identity.RoleBuyer)
		m.chat.On("OpenRoom", mock.Anything, buyerID, engagementapp.OpenRoomRequest{SellerID: sellerID}).Return(room, created, nil)

		rec := performRequest(router, http.MethodPost, "/chat/rooms", map[string]any{"sellerId": sellerID})

		require.Equal(t, want, rec.Code)
		var out engagementapp.ChatRoomResponse
		decodeData(t, rec, &out)
		assert.Equal(t, room.ID, out.ID)
	}

	router, _ := newEngagementRouter(buyerID, identity.RoleBuyer)
	rec := performRequest(router, http.MethodPost, "/chat/rooms", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEngagementHandler_ChatMessages(t *testing.T) {
	userID, roomID := uuid.New(), uuid.New()
	path := "/chat/rooms/" + roomID.String()

	router, m := newEngagementRouter(userID, identity.RoleSeller)
	m.chat.On("ListRooms", mock.Anything, userID).Return([]engagementapp.ChatRoomResponse{{ID: roomID}}, nil)
	m.chat.On("Messages", mock.Anything, userID, roomID, engagementapp.DefaultMessageLimit).Return([]engagementapp.ChatMessageResponse{}, nil)
	m.chat.On("Post", mock.Anything, userID, roomID, engagementapp.PostMessageRequest{Content: "Hello"}).
		Return(&engagementapp.ChatMessageResponse{ChatRoomID: roomID, SenderID: userID, Content: "Hello"}, nil)
	m.chat.On("MarkRead", mock.Anything, userID, roomID).Return(&engagementapp.MarkReadResponse{Updated: 3}, nil)

	rec := performRequest(router, http.MethodGet, "/chat/rooms", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(router, http.MethodGet, path+"/messages", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(router, http.MethodPost, path+"/messages", map[string]any{"content": "Hello"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var msg engagementapp.ChatMessageResponse
	decodeData(t, rec, &msg)
	assert.Equal(t, "Hello", msg.Content)

	rec = performRequest(router, http.MethodPut, path+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var read engagementapp.MarkReadResponse
	decodeData(t, rec, &read)
	assert.Equal(t, int64(3), read.Updated)
	m.chat.AssertExpectations(t)
}

func TestEngagementHandler_ChatNotParticipant(t *testing.T) {
	userID, roomID := uuid.New(), uuid.New()
	router, m := newEngagementRouter(userID, identity.RoleBuyer)
	m.chat.On("Messages", mock.Anything, userID, roomID, mock.Anything).Return(nil, shared.Forbidden("Access denied"))

	rec := performRequest(router, http.MethodGet, "/chat/rooms/"+roomID.String()+"/messages?limit=10", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
