package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/swiftsupply/backend/internal/application/catalog"
)

// TaxonomyService is the read surface of categories, product types and brands
type TaxonomyService interface {
	ListCategories(ctx context.Context) ([]appcatalog.NamedItem, error)
	ListCategoryDetails(ctx context.Context) ([]appcatalog.TaxonomyResponse, error)
	ListProductTypes(ctx context.Context) ([]appcatalog.NamedItem, error)
	ListProductTypesByCategory(ctx context.Context, categoryName string) ([]appcatalog.TaxonomyResponse, error)
	ListBrandsByProductType(ctx context.Context, productTypeName string) ([]appcatalog.TaxonomyResponse, error)
}

// TaxonomyHandler serves the public catalog taxonomy
type TaxonomyHandler struct {
	BaseHandler
	taxonomy TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomy TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

// ListCategories godoc
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]appcatalog.NamedItem]
// @Router       /categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	items, err := h.taxonomy.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListCategoryDetails godoc
// @Summary      List categories with descriptions
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]appcatalog.TaxonomyResponse]
// @Router       /categories/list [get]
func (h *TaxonomyHandler) ListCategoryDetails(c *gin.Context) {
	items, err := h.taxonomy.ListCategoryDetails(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListProductTypes godoc
// @Summary      List product types
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]appcatalog.NamedItem]
// @Router       /product-types [get]
func (h *TaxonomyHandler) ListProductTypes(c *gin.Context) {
	items, err := h.taxonomy.ListProductTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListProductTypesByCategory godoc
// @Summary      List the product types of a category
// @Tags         catalog
// @Produce      json
// @Param        category path string true "Category name"
// @Success      200 {object} APIResponse[[]appcatalog.TaxonomyResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /product-types/list/{category} [get]
func (h *TaxonomyHandler) ListProductTypesByCategory(c *gin.Context) {
	items, err := h.taxonomy.ListProductTypesByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// ListBrandsByProductType godoc
// @Summary      List the brands of a product type
// @Tags         catalog
// @Produce      json
// @Param        productType path string true "Product type name"
// @Success      200 {object} APIResponse[[]appcatalog.TaxonomyResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /brands/list/{productType} [get]
func (h *TaxonomyHandler) ListBrandsByProductType(c *gin.Context) {
	items, err := h.taxonomy.ListBrandsByProductType(c.Request.Context(), c.Param("productType"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
