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
	tradeapp "github.com/swiftsupply/backend/internal/application/trade"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/shared"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) Place(ctx context.Context, buyerID uuid.UUID, req tradeapp.CreateOrderRequest) (*tradeapp.OrderResponse, error) {
	return mockResult[*tradeapp.OrderResponse](m.Called(ctx, buyerID, req))
}

func (m *mockOrderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID, page, limit int) (*tradeapp.OrderListResponse, error) {
	return mockResult[*tradeapp.OrderListResponse](m.Called(ctx, buyerID, page, limit))
}

func (m *mockOrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*tradeapp.OrderResponse, error) {
	return mockResult[*tradeapp.OrderResponse](m.Called(ctx, userID, orderID))
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, userID, sellerID, orderID uuid.UUID, status string) (*tradeapp.OrderResponse, error) {
	return mockResult[*tradeapp.OrderResponse](m.Called(ctx, userID, sellerID, orderID, status))
}

type mockInvoiceService struct {
	mock.Mock
}

func (m *mockInvoiceService) Render(ctx context.Context, userID, sellerID, orderID uuid.UUID, format string) (*tradeapp.Invoice, error) {
	return mockResult[*tradeapp.Invoice](m.Called(ctx, userID, sellerID, orderID, format))
}

func newOrderRouter(orders OrderService, invoices InvoiceService, auth ...gin.HandlerFunc) *gin.Engine {
	h := NewOrderHandler(orders, invoices)
	r := gin.New()
	r.Use(auth...)
	r.POST("/orders", h.Place)
	r.GET("/orders", h.List)
	r.GET("/orders/:id", h.Get)
	r.PUT("/suppliers/:id/orders/:orderId/status", h.UpdateStatus)
	r.GET("/suppliers/:id/orders/:orderId/invoice", h.Invoice)
	return r
}

func TestOrderHandler_Place(t *testing.T) {
	buyerID, sellerID, productID := uuid.New(), uuid.New(), uuid.New()

	t.Run("created", func(t *testing.T) {
		orders := new(mockOrderService)
		req := tradeapp.CreateOrderRequest{
			SellerID: sellerID,
			Items:    []tradeapp.OrderItemRequest{{ProductID: productID, Quantity: 3}},
			Notes:    "Deliver Monday",
		}
		orders.On("Place", mock.Anything, buyerID, req).
			Return(&tradeapp.OrderResponse{ID: uuid.New(), OrderNumber: "ORD-20260101-0001", SellerID: sellerID}, nil)

		rec := performRequest(newOrderRouter(orders, nil, asUser(buyerID, identity.RoleBuyer)), http.MethodPost, "/orders", req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var out tradeapp.OrderResponse
		decodeData(t, rec, &out)
		assert.Equal(t, "ORD-20260101-0001", out.OrderNumber)
		orders.AssertExpectations(t)
	})

	tests := []struct {
		name string
		body any
	}{
		{"no items", map[string]any{"sellerId": sellerID, "items": []any{}}},
		{"no seller", map[string]any{"items": []map[string]any{{"productId": productID, "quantity": 1}}}},
		{"zero quantity", map[string]any{"sellerId": sellerID, "items": []map[string]any{{"productId": productID, "quantity": 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mockOrderService)
			rec := performRequest(newOrderRouter(orders, nil, asUser(buyerID, identity.RoleBuyer)), http.MethodPost, "/orders", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, dto.ErrCodeValidation, decodeErrorCode(t, rec))
			orders.AssertNotCalled(t, "Place")
		})
	}
}

func TestOrderHandler_ListAndGet(t *testing.T) {
	buyerID, orderID := uuid.New(), uuid.New()
	orders := new(mockOrderService)
	orders.On("ListForBuyer", mock.Anything, buyerID, 2, tradeapp.DefaultOrderPageSize).
		Return(&tradeapp.OrderListResponse{Total: 21, TotalPages: 2, Page: 2, Limit: tradeapp.DefaultOrderPageSize}, nil)
	orders.On("Get", mock.Anything, buyerID, orderID).Return(&tradeapp.OrderResponse{ID: orderID}, nil)
	orders.On("Get", mock.Anything, buyerID, mock.Anything).Return(nil, shared.NotFound("Order not found"))
	router := newOrderRouter(orders, nil, asUser(buyerID, identity.RoleBuyer))

	rec := performRequest(router, http.MethodGet, "/orders?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list tradeapp.OrderListResponse
	decodeData(t, rec, &list)
	assert.Equal(t, 2, list.TotalPages)

	rec = performRequest(router, http.MethodGet, "/orders/"+orderID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(router, http.MethodGet, "/orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	userID, sellerID, orderID := uuid.New(), uuid.New(), uuid.New()
	path := "/suppliers/" + sellerID.String() + "/orders/" + orderID.String() + "/status"

	t.Run("confirmed", func(t *testing.T) {
		orders := new(mockOrderService)
		orders.On("UpdateStatus", mock.Anything, userID, sellerID, orderID, "confirmed").
			Return(&tradeapp.OrderResponse{ID: orderID}, nil)

		rec := performRequest(newOrderRouter(orders, nil, asUser(userID, identity.RoleSeller)), http.MethodPut, path,
			map[string]any{"status": "confirmed"})
		assert.Equal(t, http.StatusOK, rec.Code)
		orders.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		orders := new(mockOrderService)
		rec := performRequest(newOrderRouter(orders, nil, asUser(userID, identity.RoleSeller)), http.MethodPut, path,
			map[string]any{"status": "shipped"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Must be one of")
		orders.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("insufficient stock", func(t *testing.T) {
		orders := new(mockOrderService)
		orders.On("UpdateStatus", mock.Anything, userID, sellerID, orderID, "confirmed").Return(nil, shared.ErrInsufficientStock)

		rec := performRequest(newOrderRouter(orders, nil, asUser(userID, identity.RoleSeller)), http.MethodPut, path,
			map[string]any{"status": "confirmed"})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, dto.ErrCodeInsufficientStock, decodeErrorCode(t, rec))
	})
}

func TestOrderHandler_Invoice(t *testing.T) {
	userID, sellerID, orderID := uuid.New(), uuid.New(), uuid.New()
	path := "/suppliers/" + sellerID.String() + "/orders/" + orderID.String() + "/invoice"

	t.Run("html by default", func(t *testing.T) {
		invoices := new(mockInvoiceService)
		invoices.On("Render", mock.Anything, userID, sellerID, orderID, "").Return(&tradeapp.Invoice{
			Filename:    "invoice-ORD-1.html",
			ContentType: "text/html; charset=utf-8",
			Content:     []byte("<html>invoice</html>"),
		}, nil)

		rec := performRequest(newOrderRouter(nil, invoices, asUser(userID, identity.RoleSeller)), http.MethodGet, path, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `inline; filename="invoice-ORD-1.html"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "<html>invoice</html>", rec.Body.String())
	})

	t.Run("pdf unavailable", func(t *testing.T) {
		invoices := new(mockInvoiceService)
		invoices.On("Render", mock.Anything, userID, sellerID, orderID, "pdf").Return(nil, tradeapp.ErrPDFUnavailable)

		rec := performRequest(newOrderRouter(nil, invoices, asUser(userID, identity.RoleSeller)), http.MethodGet, path+"?format=pdf", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decodeErrorCode(t, rec))
	})
}
