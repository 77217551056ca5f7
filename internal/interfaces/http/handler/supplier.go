package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/swiftsupply/backend/internal/application/partner"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
)

// SupplierService is the supplier directory and seller profile surface
type SupplierService interface {
	List(ctx context.Context, q partnerapp.SupplierListQuery) (*partnerapp.SupplierListResponse, error)
	Get(ctx context.Context, sellerID uuid.UUID) (*partnerapp.SupplierDetailResponse, error)
	UpdateProfile(ctx context.Context, userID, sellerID uuid.UUID, req partnerapp.UpdateProfileRequest) (*partnerapp.SupplierResponse, error)
	BusinessProfile(ctx context.Context, userID, sellerID uuid.UUID) (*partnerapp.BusinessProfileResponse, error)
	UpdateBusinessProfile(ctx context.Context, userID, sellerID uuid.UUID, req partnerapp.UpdateBusinessProfileRequest) (*partnerapp.BusinessProfileResponse, error)
	VerificationStatus(ctx context.Context, sellerID uuid.UUID) (*partnerapp.VerificationStatusResponse, error)
}

// SupplierHandler handles supplier directory and profile endpoints
type SupplierHandler struct {
	BaseHandler
	suppliers SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(suppliers SupplierService) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

// List godoc
// @Summary      List suppliers
// @Description  Seller profiles, newest first
// @Tags         suppliers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Page size" default(12)
// @Success      200 {object} APIResponse[partnerapp.SupplierListResponse]
// @Router       /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	page, perPage := pageParams(c, partnerapp.DefaultSupplierPageSize, "per_page", "limit")
	result, err := h.suppliers.List(c.Request.Context(), partnerapp.SupplierListQuery{Page: page, PerPage: perPage})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get godoc
// @Summary      Get a supplier
// @Description  Seller projection with the ten most recent reviews
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[partnerapp.SupplierDetailResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	sellerID, ok := h.uuidParam(c, "id", "supplier")
	if !ok {
		return
	}
	supplier, err := h.suppliers.Get(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// UpdateProfile godoc
// @Summary      Update the store profile
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        request body partnerapp.UpdateProfileRequest true "Profile fields to change"
// @Success      200 {object} APIResponse[partnerapp.SupplierResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/profile [put]
func (h *SupplierHandler) UpdateProfile(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	var req partnerapp.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	supplier, err := h.suppliers.UpdateProfile(c.Request.Context(), userID, sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// BusinessProfile godoc
// @Summary      Get the business profile
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[partnerapp.BusinessProfileResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/business-profile [get]
func (h *SupplierHandler) BusinessProfile(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	profile, err := h.suppliers.BusinessProfile(c.Request.Context(), userID, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateBusinessProfile godoc
// @Summary      Update the business profile
// @Description  contactPerson is split on the first space into first and last name
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        request body partnerapp.UpdateBusinessProfileRequest true "Business fields to change"
// @Success      200 {object} APIResponse[partnerapp.BusinessProfileResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/business-profile [put]
func (h *SupplierHandler) UpdateBusinessProfile(c *gin.Context) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	var req partnerapp.UpdateBusinessProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	profile, err := h.suppliers.UpdateBusinessProfile(c.Request.Context(), userID, sellerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// VerificationStatus godoc
// @Summary      Supplier verification level
// @Tags         suppliers
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[partnerapp.VerificationStatusResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /suppliers/{id}/verification-status [get]
func (h *SupplierHandler) VerificationStatus(c *gin.Context) {
	sellerID, ok := h.uuidParam(c, "id", "supplier")
	if !ok {
		return
	}
	status, err := h.suppliers.VerificationStatus(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}
