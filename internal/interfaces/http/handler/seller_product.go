package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/swiftsupply/backend/internal/application/catalog"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

// SellerProductService manages the products of the caller's seller profile
type SellerProductService interface {
	Inventory(ctx context.Context, userID uuid.UUID, page, limit int) (*appcatalog.InventoryListResponse, error)
	UploadImage(ctx context.Context, userID uuid.UUID, filename string, data []byte, contentType string) (*appcatalog.UploadImageResult, error)
	Create(ctx context.Context, userID uuid.UUID, req appcatalog.CreateProductRequest) (*appcatalog.InventoryProductResponse, error)
	Update(ctx context.Context, userID, productID uuid.UUID, req appcatalog.UpdateProductRequest) (*appcatalog.InventoryProductResponse, error)
	Delete(ctx context.Context, userID, sellerID, productID uuid.UUID) error
}

// SellerProductHandler handles the supplier product management endpoints
type SellerProductHandler struct {
	BaseHandler
	products      SellerProductService
	maxUploadSize int64
}

// NewSellerProductHandler creates a new SellerProductHandler. A non-positive
// maxUploadSize disables the image size check.
func NewSellerProductHandler(products SellerProductService, maxUploadSize int64) *SellerProductHandler {
	return &SellerProductHandler{products: products, maxUploadSize: maxUploadSize}
}

// Inventory godoc
// @Summary      List the seller's products
// @Description  Products with stock status, engagement counters and revenue
// @Tags         supplier-products
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(20)
// @Success      200 {object} APIResponse[appcatalog.InventoryListResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/inventory [get]
func (h *SellerProductHandler) Inventory(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	page, limit := pageParams(c, appcatalog.DefaultInventoryPageSize, "limit")
	result, err := h.products.Inventory(c.Request.Context(), userID, page, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UploadImage godoc
// @Summary      Upload a product image
// @Tags         supplier-products
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Image file"
// @Success      201 {object} APIResponse[appcatalog.UploadImageResult]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/upload-image [post]
func (h *SellerProductHandler) UploadImage(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.HandleError(c, appcatalog.ErrNoImageFile)
		return
	}
	if h.maxUploadSize > 0 && file.Size > h.maxUploadSize {
		h.ErrorWithCode(c, dto.ErrCodeRequestTooLarge, fmt.Sprintf("Image exceeds %d bytes", h.maxUploadSize))
		return
	}

	src, err := file.Open()
	if err != nil {
		h.HandleError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		h.HandleError(c, fmt.Errorf("read upload: %w", err))
		return
	}

	result, err := h.products.UploadImage(c.Request.Context(), userID, file.Filename, data, file.Header.Get("Content-Type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Create godoc
// @Summary      Create a product
// @Description  name, description, price and stock are required; category is looked up by name
// @Tags         supplier-products
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[appcatalog.InventoryProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/product [post]
func (h *SellerProductHandler) Create(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	product, err := h.products.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @Summary      Update a product
// @Description  Partial update. Images and tags are replaced when present.
// @Tags         supplier-products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body appcatalog.UpdateProductRequest true "Fields to change"
// @Success      200 {object} APIResponse[appcatalog.InventoryProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/products/{id} [put]
func (h *SellerProductHandler) Update(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id", "product")
	if !ok {
		return
	}
	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	product, err := h.products.Update(c.Request.Context(), userID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Deactivate a product
// @Tags         supplier-products
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        productId path string true "Product ID"
// @Success      200 {object} APIResponse[MessageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/products/{productId} [delete]
func (h *SellerProductHandler) Delete(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "productId", "product")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), userID, sellerID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: "Product deleted successfully"})
}
