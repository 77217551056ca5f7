package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	engagementapp "github.com/swiftsupply/backend/internal/application/engagement"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

// InquiryService handles buyer inquiries and the seller's answers
type InquiryService interface {
	Contact(ctx context.Context, buyerID, sellerID uuid.UUID, req engagementapp.ContactRequest) (*engagementapp.ContactResponse, error)
	List(ctx context.Context, userID, sellerID uuid.UUID, q engagementapp.InquiryQuery) ([]engagementapp.InquiryResponse, error)
	Respond(ctx context.Context, userID, sellerID, inquiryID uuid.UUID, req engagementapp.RespondInquiryRequest) (*engagementapp.InquiryResponse, error)
	Close(ctx context.Context, userID, sellerID, inquiryID uuid.UUID) (*engagementapp.InquiryResponse, error)
	MarkRead(ctx context.Context, userID, sellerID, inquiryID uuid.UUID) (*engagementapp.InquiryResponse, error)
}

// SupplierReviewService records buyer reviews of sellers
type SupplierReviewService interface {
	Add(ctx context.Context, buyerID, sellerID uuid.UUID, req engagementapp.CreateSupplierReviewRequest) (*engagementapp.SupplierReviewResponse, error)
}

// ChatService is the buyer/seller messaging surface
type ChatService interface {
	OpenRoom(ctx context.Context, buyerID uuid.UUID, req engagementapp.OpenRoomRequest) (*engagementapp.ChatRoomResponse, bool, error)
	ListRooms(ctx context.Context, userID uuid.UUID) ([]engagementapp.ChatRoomResponse, error)
	Messages(ctx context.Context, userID, roomID uuid.UUID, limit int) ([]engagementapp.ChatMessageResponse, error)
	Post(ctx context.Context, userID, roomID uuid.UUID, req engagementapp.PostMessageRequest) (*engagementapp.ChatMessageResponse, error)
	MarkRead(ctx context.Context, userID, roomID uuid.UUID) (*engagementapp.MarkReadResponse, error)
}

// EngagementHandler handles inquiries, supplier reviews and chat
type EngagementHandler struct {
	BaseHandler
	inquiries InquiryService
	reviews   SupplierReviewService
	chat      ChatService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(inquiries InquiryService, reviews SupplierReviewService, chat ChatService) *EngagementHandler {
	return &EngagementHandler{inquiries: inquiries, reviews: reviews, chat: chat}
}

// Contact godoc
// @Summary      Contact a supplier
// @Description  Stores an inquiry. subject defaults to "General Inquiry".
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        request body engagementapp.ContactRequest true "Inquiry"
// @Success      201 {object} APIResponse[engagementapp.ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/contact [post]
func (h *EngagementHandler) Contact(c *gin.Context) {
	buyerID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	var req engagementapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	resp, err := h.inquiries.Contact(c.Request.Context(), buyerID, sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListInquiries godoc
// @Summary      List a supplier's inquiries
// @Tags         inquiries
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        status query string false "pending, responded or closed"
// @Param        limit query int false "Maximum entries" default(20)
// @Success      200 {object} APIResponse[[]engagementapp.InquiryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/inquiries [get]
func (h *EngagementHandler) ListInquiries(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	inquiries, err := h.inquiries.List(c.Request.Context(), userID, sellerID, engagementapp.InquiryQuery{
		Status: strings.TrimSpace(c.Query("status")),
		Limit:  limitParam(c, engagementapp.DefaultInquiryLimit),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inquiries)
}

// RespondInquiry godoc
// @Summary      Answer an inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        inquiryId path string true "Inquiry ID"
// @Param        request body engagementapp.RespondInquiryRequest true "Answer"
// @Success      200 {object} APIResponse[engagementapp.InquiryResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/inquiries/{inquiryId}/respond [put]
func (h *EngagementHandler) RespondInquiry(c *gin.Context) {
	userID, sellerID, inquiryID, ok := h.inquiryParams(c)
	if !ok {
		return
	}
	var req engagementapp.RespondInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	inquiry, err := h.inquiries.Respond(c.Request.Context(), userID, sellerID, inquiryID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inquiry)
}

// CloseInquiry godoc
// @Summary      Close an inquiry
// @Tags         inquiries
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        inquiryId path string true "Inquiry ID"
// @Success      200 {object} APIResponse[engagementapp.InquiryResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/inquiries/{inquiryId}/close [put]
func (h *EngagementHandler) CloseInquiry(c *gin.Context) {
	h.changeInquiry(c, h.inquiries.Close)
}

// MarkInquiryRead godoc
// @Summary      Mark an inquiry read
// @Tags         inquiries
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        inquiryId path string true "Inquiry ID"
// @Success      200 {object} APIResponse[engagementapp.InquiryResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/inquiries/{inquiryId}/read [put]
func (h *EngagementHandler) MarkInquiryRead(c *gin.Context) {
	h.changeInquiry(c, h.inquiries.MarkRead)
}

func (h *EngagementHandler) changeInquiry(c *gin.Context, op func(ctx context.Context, userID, sellerID, inquiryID uuid.UUID) (*engagementapp.InquiryResponse, error)) {
	userID, sellerID, inquiryID, ok := h.inquiryParams(c)
	if !ok {
		return
	}
	inquiry, err := op(c.Request.Context(), userID, sellerID, inquiryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inquiry)
}

func (h *EngagementHandler) inquiryParams(c *gin.Context) (userID, sellerID, inquiryID uuid.UUID, ok bool) {
	if userID, sellerID, ok = h.ownerParams(c); !ok {
		return
	}
	inquiryID, ok = h.uuidParam(c, "inquiryId", "inquiry")
	return
}

// AddSupplierReview godoc
// @Summary      Review a supplier
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        request body engagementapp.CreateSupplierReviewRequest true "Review"
// @Success      201 {object} APIResponse[engagementapp.SupplierReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/reviews [post]
func (h *EngagementHandler) AddSupplierReview(c *gin.Context) {
	buyerID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	var req engagementapp.CreateSupplierReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	review, err := h.reviews.Add(c.Request.Context(), buyerID, sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// OpenRoom godoc
// @Summary      Open a chat room
// @Description  Returns the existing room for the buyer, seller and product, creating it when absent
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body engagementapp.OpenRoomRequest true "Room"
// @Success      200 {object} APIResponse[engagementapp.ChatRoomResponse]
// @Success      201 {object} APIResponse[engagementapp.ChatRoomResponse]
// @Security     BearerAuth
// @Router       /chat/rooms [post]
func (h *EngagementHandler) OpenRoom(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req engagementapp.OpenRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	room, created, err := h.chat.OpenRoom(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewSuccessResponse(room))
}

// ListRooms godoc
// @Summary      List my chat rooms
// @Tags         chat
// @Produce      json
// @Success      200 {object} APIResponse[[]engagementapp.ChatRoomResponse]
// @Security     BearerAuth
// @Router       /chat/rooms [get]
func (h *EngagementHandler) ListRooms(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	rooms, err := h.chat.ListRooms(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rooms)
}

// Messages godoc
// @Summary      Chat messages
// @Description  The newest messages of a room in chronological order
// @Tags         chat
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        limit query int false "Maximum messages" default(50)
// @Success      200 {object} APIResponse[[]engagementapp.ChatMessageResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /chat/rooms/{id}/messages [get]
func (h *EngagementHandler) Messages(c *gin.Context) {
	userID, roomID, ok := h.roomParams(c)
	if !ok {
		return
	}
	msgs, err := h.chat.Messages(c.Request.Context(), userID, roomID, limitParam(c, engagementapp.DefaultMessageLimit))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msgs)
}

// PostMessage godoc
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body engagementapp.PostMessageRequest true "Message"
// @Success      201 {object} APIResponse[engagementapp.ChatMessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /chat/rooms/{id}/messages [post]
func (h *EngagementHandler) PostMessage(c *gin.Context) {
	userID, roomID, ok := h.roomParams(c)
	if !ok {
		return
	}
	var req engagementapp.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	msg, err := h.chat.Post(c.Request.Context(), userID, roomID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// MarkRoomRead godoc
// @Summary      Mark a room read
// @Description  Marks the other participant's messages read
// @Tags         chat
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} APIResponse[engagementapp.MarkReadResponse]
// @Security     BearerAuth
// @Router       /chat/rooms/{id}/read [put]
func (h *EngagementHandler) MarkRoomRead(c *gin.Context) {
	userID, roomID, ok := h.roomParams(c)
	if !ok {
		return
	}
	resp, err := h.chat.MarkRead(c.Request.Context(), userID, roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *EngagementHandler) roomParams(c *gin.Context) (userID, roomID uuid.UUID, ok bool) {
	if userID, ok = h.currentUserID(c); !ok {
		return
	}
	roomID, ok = h.uuidParam(c, "id", "room")
	return
}
