package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/swiftsupply/backend/internal/application/catalog"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

// ProductService is the buyer-facing product surface
type ProductService interface {
	List(ctx context.Context, q appcatalog.ProductListQuery) (*appcatalog.ProductListResponse, error)
	Get(ctx context.Context, id uuid.UUID, viewer appcatalog.ViewContext) (*appcatalog.ProductResponse, error)
	Related(ctx context.Context, id uuid.UUID) ([]appcatalog.ProductResponse, error)
	AddReview(ctx context.Context, buyerID, productID uuid.UUID, req appcatalog.CreateReviewRequest) (*appcatalog.ReviewResponse, error)
	AddFavorite(ctx context.Context, userID, productID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, productID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]appcatalog.ProductResponse, error)
}

// ProductHandler serves product listings, details, reviews and favorites
type ProductHandler struct {
	BaseHandler
	products ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List godoc
// @Summary      List products
// @Description  Active products, newest first, optionally filtered by category name or a search term
// @Tags         products
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Page size" default(12)
// @Param        category query string false "Category name"
// @Param        search query string false "Search in name and description"
// @Param        sort_by query string false "created_at, price, rating or name"
// @Success      200 {object} APIResponse[appcatalog.ProductListResponse]
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	page, limit := pageParams(c, appcatalog.DefaultProductPageSize, "limit")
	result, err := h.products.List(c.Request.Context(), appcatalog.ProductListQuery{
		Page:     page,
		Limit:    limit,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
		SortBy:   c.Query("sort_by"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @Summary      Get a product
// @Description  Returns the product and records a view
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[appcatalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "product")
	if !ok {
		return
	}

	viewer := appcatalog.ViewContext{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
	if userID, ok := middleware.GetJWTUserUUID(c); ok {
		viewer.UserID = &userID
	}

	product, err := h.products.Get(c.Request.Context(), id, viewer)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Related godoc
// @Summary      Related products
// @Description  Up to three other active products of the same category
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[[]appcatalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/related [get]
func (h *ProductHandler) Related(c *gin.Context) {
	id, ok := h.uuidParam(c, "id", "product")
	if !ok {
		return
	}
	products, err := h.products.Related(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// AddReview godoc
// @Summary      Review a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body appcatalog.CreateReviewRequest true "Rating and comment"
// @Success      201 {object} APIResponse[appcatalog.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id}/reviews [post]
func (h *ProductHandler) AddReview(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id", "product")
	if !ok {
		return
	}
	var req appcatalog.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	review, err := h.products.AddReview(c.Request.Context(), userID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// AddFavorite godoc
// @Summary      Favorite a product
// @Tags         favorites
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[MessageResponse]
// @Security     BearerAuth
// @Router       /products/{id}/favorite [post]
func (h *ProductHandler) AddFavorite(c *gin.Context) {
	h.toggleFavorite(c, h.products.AddFavorite, "Added to favorites")
}

// RemoveFavorite godoc
// @Summary      Remove a favorite
// @Tags         favorites
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[MessageResponse]
// @Security     BearerAuth
// @Router       /products/{id}/favorite [delete]
func (h *ProductHandler) RemoveFavorite(c *gin.Context) {
	h.toggleFavorite(c, h.products.RemoveFavorite, "Removed from favorites")
}

func (h *ProductHandler) toggleFavorite(c *gin.Context, op func(ctx context.Context, userID, productID uuid.UUID) error, message string) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	productID, ok := h.uuidParam(c, "id", "product")
	if !ok {
		return
	}
	if err := op(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageResponse{Message: message})
}

// ListFavorites godoc
// @Summary      List favorite products
// @Tags         favorites
// @Produce      json
// @Success      200 {object} APIResponse[[]appcatalog.ProductResponse]
// @Security     BearerAuth
// @Router       /favorites [get]
func (h *ProductHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}
	products, err := h.products.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}
