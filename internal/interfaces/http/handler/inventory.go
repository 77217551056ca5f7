package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/swiftsupply/backend/internal/application/inventory"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

// InventoryService is the seller stock surface
type InventoryService interface {
	UpdateOwnStock(ctx context.Context, userID uuid.UUID, req inventoryapp.StockUpdateRequest) (*inventoryapp.StockUpdateResult, error)
	UpdateStock(ctx context.Context, userID, sellerID uuid.UUID, req inventoryapp.StockUpdateRequest) (*inventoryapp.StockUpdateResult, error)
	Summary(ctx context.Context, userID, sellerID uuid.UUID) (*inventoryapp.SummaryResponse, error)
	Alerts(ctx context.Context, userID, sellerID uuid.UUID, threshold int) ([]inventoryapp.AlertResponse, error)
	Logs(ctx context.Context, userID, sellerID uuid.UUID, q inventoryapp.LogQuery) ([]inventoryapp.LogResponse, error)
}

// InventoryHandler handles stock updates and inventory reporting
type InventoryHandler struct {
	BaseHandler
	inventory InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventory InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// UpdateOwnStock godoc
// @Summary      Set stock levels
// @Description  Batch update for the caller's seller profile. Entries that cannot be applied are reported in skipped.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.StockUpdateRequest true "Stock levels"
// @Success      200 {object} APIResponse[inventoryapp.StockUpdateResult]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/inventory/update-stock [post]
func (h *InventoryHandler) UpdateOwnStock(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req inventoryapp.StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	result, err := h.inventory.UpdateOwnStock(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateStock godoc
// @Summary      Set stock levels of a supplier
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        request body inventoryapp.StockUpdateRequest true "Stock levels"
// @Success      200 {object} APIResponse[inventoryapp.StockUpdateResult]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/inventory/update-stock [post]
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	var req inventoryapp.StockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	result, err := h.inventory.UpdateStock(c.Request.Context(), userID, sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Summary godoc
// @Summary      Inventory summary
// @Description  Product counts per stock status and the total stock value
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[inventoryapp.SummaryResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/inventory/summary [get]
func (h *InventoryHandler) Summary(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	summary, err := h.inventory.Summary(c.Request.Context(), userID, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Alerts godoc
// @Summary      Low stock alerts
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        threshold query int false "Stock at or below which a product alerts" default(10)
// @Success      200 {object} APIResponse[[]inventoryapp.AlertResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	threshold := queryInt(c, "threshold", inventoryapp.DefaultAlertThreshold)
	alerts, err := h.inventory.Alerts(c.Request.Context(), userID, sellerID, threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// Logs godoc
// @Summary      Stock change log
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        limit query int false "Maximum entries" default(50)
// @Param        productId query string false "Only this product"
// @Success      200 {object} APIResponse[[]inventoryapp.LogResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/inventory/logs [get]
func (h *InventoryHandler) Logs(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	productID, ok := optionalUUIDQuery(c, "productId")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	logs, err := h.inventory.Logs(c.Request.Context(), userID, sellerID, inventoryapp.LogQuery{
		Limit:     limitParam(c, inventoryapp.DefaultLogLimit),
		ProductID: productID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}
