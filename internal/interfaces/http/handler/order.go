package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/swiftsupply/backend/internal/application/trade"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

// OrderService places orders and moves them along their lifecycle
type OrderService interface {
	Place(ctx context.Context, buyerID uuid.UUID, req tradeapp.CreateOrderRequest) (*tradeapp.OrderResponse, error)
	ListForBuyer(ctx context.Context, buyerID uuid.UUID, page, limit int) (*tradeapp.OrderListResponse, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*tradeapp.OrderResponse, error)
	UpdateStatus(ctx context.Context, userID, sellerID, orderID uuid.UUID, status string) (*tradeapp.OrderResponse, error)
}

// InvoiceService renders order invoices
type InvoiceService interface {
	Render(ctx context.Context, userID, sellerID, orderID uuid.UUID, format string) (*tradeapp.Invoice, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders   OrderService
	invoices InvoiceService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders OrderService, invoices InvoiceService) *OrderHandler {
	return &OrderHandler{orders: orders, invoices: invoices}
}

// Place godoc
// @Summary      Place an order
// @Description  All items must be active products of the seller. Prices are taken from the catalog.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Order"
// @Success      201 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	order, err := h.orders.Place(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List godoc
// @Summary      List my orders
// @Tags         orders
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} APIResponse[tradeapp.OrderListResponse]
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	buyerID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	page, limit := pageParams(c, tradeapp.DefaultOrderPageSize, "limit")
	result, err := h.orders.ListForBuyer(c.Request.Context(), buyerID, page, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @Summary      Get an order
// @Description  Visible to the buyer and to the seller's owner
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "id", "order")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Description  Confirming deducts stock; cancelling a confirmed or ready order restores it
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        orderId path string true "Order ID"
// @Param        request body tradeapp.UpdateOrderStatusRequest true "New status"
// @Success      200 {object} APIResponse[tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/orders/{orderId}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "orderId", "order")
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), userID, sellerID, orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Invoice godoc
// @Summary      Order invoice
// @Description  HTML by default, PDF when format=pdf and the renderer is enabled
// @Tags         orders
// @Produce      html
// @Produce      application/pdf
// @Param        id path string true "Supplier ID"
// @Param        orderId path string true "Order ID"
// @Param        format query string false "html or pdf" default(html)
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/orders/{orderId}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	orderID, ok := h.uuidParam(c, "orderId", "order")
	if !ok {
		return
	}
	invoice, err := h.invoices.Render(c.Request.Context(), userID, sellerID, orderID, c.Query("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", "inline; filename="+strconv.Quote(invoice.Filename))
	c.Data(http.StatusOK, invoice.ContentType, invoice.Content)
}
