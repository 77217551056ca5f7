package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reportapp "github.com/swiftsupply/backend/internal/application/report"
	tradeapp "github.com/swiftsupply/backend/internal/application/trade"
)

// ReportService aggregates a seller's dashboard figures
type ReportService interface {
	Dashboard(ctx context.Context, userID, sellerID uuid.UUID) (*reportapp.DashboardResponse, error)
	EngagementFunnel(ctx context.Context, userID, sellerID uuid.UUID) ([]reportapp.FunnelStageResponse, error)
	SalesData(ctx context.Context, userID, sellerID uuid.UUID) ([]reportapp.SalesDataResponse, error)
	RecentOrders(ctx context.Context, userID, sellerID uuid.UUID, limit int) ([]tradeapp.OrderResponse, error)
	ProductEngagement(ctx context.Context, userID, sellerID uuid.UUID) ([]reportapp.ProductEngagementResponse, error)
	LowStockProducts(ctx context.Context, userID, sellerID uuid.UUID, threshold int) ([]reportapp.LowStockProduct, error)
	Activities(ctx context.Context, userID, sellerID uuid.UUID, limit int) ([]reportapp.ActivityResponse, error)
}

// ReportHandler serves the supplier dashboard
type ReportHandler struct {
	BaseHandler
	reports ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// reply runs a seller-scoped query and writes its result
func reply[T any](h *ReportHandler, c *gin.Context, query func(ctx context.Context, userID, sellerID uuid.UUID) (T, error)) {
	userID, sellerID, ok := h.ownerParams(c)
	if !ok {
		return
	}
	result, err := query(c.Request.Context(), userID, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Dashboard godoc
// @Summary      Supplier dashboard
// @Description  Headline counters with 30-day percentage changes
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[reportapp.DashboardResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /suppliers/{id}/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	reply(h, c, h.reports.Dashboard)
}

// EngagementFunnel godoc
// @Summary      Engagement funnel
// @Description  Views, inquiries and orders over the last 30 days
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[[]reportapp.FunnelStageResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/engagement-funnel [get]
func (h *ReportHandler) EngagementFunnel(c *gin.Context) {
	reply(h, c, h.reports.EngagementFunnel)
}

// SalesData godoc
// @Summary      Daily sales
// @Description  The last 30 days of revenue and order counts, oldest first
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[[]reportapp.SalesDataResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/sales-data [get]
func (h *ReportHandler) SalesData(c *gin.Context) {
	reply(h, c, h.reports.SalesData)
}

// ProductEngagement godoc
// @Summary      Top products
// @Description  Ten products with the most views, inquiries and orders
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Success      200 {object} APIResponse[[]reportapp.ProductEngagementResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/product-engagement [get]
func (h *ReportHandler) ProductEngagement(c *gin.Context) {
	reply(h, c, h.reports.ProductEngagement)
}

// RecentOrders godoc
// @Summary      Recent orders
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        limit query int false "Maximum orders" default(10)
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/recent-orders [get]
func (h *ReportHandler) RecentOrders(c *gin.Context) {
	limit := limitParam(c, reportapp.DefaultRecentOrderLimit)
	reply(h, c, func(ctx context.Context, userID, sellerID uuid.UUID) ([]tradeapp.OrderResponse, error) {
		return h.reports.RecentOrders(ctx, userID, sellerID, limit)
	})
}

// LowStockProducts godoc
// @Summary      Low stock products
// @Description  Active products with stock below the threshold, emptiest first
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        threshold query int false "Stock level" default(10)
// @Success      200 {object} APIResponse[[]reportapp.LowStockProduct]
// @Security     BearerAuth
// @Router       /suppliers/{id}/low-stock-products [get]
func (h *ReportHandler) LowStockProducts(c *gin.Context) {
	threshold := queryInt(c, "threshold", reportapp.DefaultLowStockLevel)
	reply(h, c, func(ctx context.Context, userID, sellerID uuid.UUID) ([]reportapp.LowStockProduct, error) {
		return h.reports.LowStockProducts(ctx, userID, sellerID, threshold)
	})
}

// Activities godoc
// @Summary      Activity feed
// @Tags         dashboard
// @Produce      json
// @Param        id path string true "Supplier ID"
// @Param        limit query int false "Maximum entries" default(20)
// @Success      200 {object} APIResponse[[]reportapp.ActivityResponse]
// @Security     BearerAuth
// @Router       /suppliers/{id}/activities [get]
func (h *ReportHandler) Activities(c *gin.Context) {
	limit := limitParam(c, reportapp.DefaultActivityLimit)
	reply(h, c, func(ctx context.Context, userID, sellerID uuid.UUID) ([]reportapp.ActivityResponse, error) {
		return h.reports.Activities(ctx, userID, sellerID, limit)
	})
}
