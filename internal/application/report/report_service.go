package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	tradeapp "github.com/swiftsupply/backend/internal/application/trade"
	"github.com/swiftsupply/backend/internal/domain/catalog"
	"github.com/swiftsupply/backend/internal/domain/engagement"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/domain/inventory"
	"github.com/swiftsupply/backend/internal/domain/partner"
	"github.com/swiftsupply/backend/internal/domain/report"
	"github.com/swiftsupply/backend/internal/domain/trade"
)

// Default list sizes and thresholds
const (
	EngagementTopN          = 10
	DefaultRecentOrderLimit = 10
	DefaultActivityLimit    = 20
	DefaultLowStockLevel    = catalog.LowStockThreshold
)

// SellerResolver checks that the caller owns the seller being reported on
type SellerResolver interface {
	OwnedSeller(ctx context.Context, userID, sellerID uuid.UUID) (*partner.SellerProfile, error)
}

// Repositories groups the read models the dashboard aggregates
type Repositories struct {
	Sellers    partner.SellerProfileRepository
	Users      identity.UserRepository
	Products   catalog.ProductRepository
	Views      engagement.ProductViewRepository
	Inquiries  engagement.InquiryRepository
	Chats      engagement.ChatRepository
	Orders     trade.OrderRepository
	Logs       inventory.LogRepository
	Sales      report.SalesDataRepository
	Activities report.ActivityRepository
}

// ReportService provides the seller dashboard reports
type ReportService struct {
	access SellerResolver
	repos  Repositories
	now    func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(access SellerResolver, repos Repositories) *ReportService {
	return &ReportService{
		access: access,
		repos:  repos,
		now:    time.Now,
	}
}

// ===================== Dashboard Operations =====================

// PercentageChangesResponse holds the 30 day trends
type PercentageChangesResponse struct {
	Views     float64 `json:"views"`
	Inquiries float64 `json:"inquiries"`
	Messages  float64 `json:"messages"`
	Orders    float64 `json:"orders"`
	Stock     float64 `json:"stock"`
	Revenue   float64 `json:"revenue"`
}

// DashboardResponse represents the seller dashboard header
type DashboardResponse struct {
	TotalInquiries    int64                     `json:"totalInquiries"`
	UnreadMessages    int64                     `json:"unreadMessages"`
	PendingOrders     int64                     `json:"pendingOrders"`
	ProductViews      int64                     `json:"productViews"`
	LowStockAlerts    int64                     `json:"lowStockAlerts"`
	TodayOrderValue   float64                   `json:"todayOrderValue"`
	PercentageChanges PercentageChangesResponse `json:"percentageChanges"`
}

// Dashboard returns the counters and 30 day trends of a seller the user owns
func (s *ReportService) Dashboard(ctx context.Context, userID, sellerID uuid.UUID) (*DashboardResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	stats, err := s.repos.Sellers.Stats(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	currentWindow, previousWindow := report.ComparisonWindows(now)
	current, err := s.periodCounts(ctx, seller.ID, currentWindow)
	if err != nil {
		return nil, err
	}
	previous, err := s.periodCounts(ctx, seller.ID, previousWindow)
	if err != nil {
		return nil, err
	}

	today := report.DayOf(now)
	todayRevenue, err := s.repos.Sales.RevenueBetween(ctx, seller.ID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	dashboard := report.Dashboard{
		TotalInquiries:    stats.TotalInquiries,
		UnreadMessages:    stats.UnreadMessages,
		PendingOrders:     stats.PendingOrders,
		ProductViews:      stats.ProductViews,
		LowStockAlerts:    stats.LowStockAlerts,
		TodayOrderValue:   toFloat64(todayRevenue),
		PercentageChanges: report.Compare(current, previous),
	}
	return toDashboardResponse(dashboard), nil
}

// periodCounts collects the raw counts of one comparison window
func (s *ReportService) periodCounts(ctx context.Context, sellerID uuid.UUID, w report.Window) (report.PeriodCounts, error) {
	var c report.PeriodCounts
	var err error

	if c.Views, err = s.repos.Views.CountBySellerBetween(ctx, sellerID, w.From, w.To); err != nil {
		return c, err
	}
	if c.Inquiries, err = s.repos.Inquiries.CountBySellerBetween(ctx, sellerID, w.From, w.To); err != nil {
		return c, err
	}
	if c.Messages, err = s.repos.Chats.CountReceivedBySellerBetween(ctx, sellerID, w.From, w.To); err != nil {
		return c, err
	}
	if c.Orders, err = s.repos.Orders.CountBySellerBetween(ctx, sellerID, w.From, w.To); err != nil {
		return c, err
	}
	if c.StockChange, err = s.repos.Logs.NetChangeBySellerBetween(ctx, sellerID, w.From, w.To); err != nil {
		return c, err
	}
	revenue, err := s.repos.Sales.RevenueBetween(ctx, sellerID, w.From, w.To)
	if err != nil {
		return c, err
	}
	c.Revenue = toFloat64(revenue)
	return c, nil
}

func toDashboardResponse(d report.Dashboard) *DashboardResponse {
	return &DashboardResponse{
		TotalInquiries:  d.TotalInquiries,
		UnreadMessages:  d.UnreadMessages,
		PendingOrders:   d.PendingOrders,
		ProductViews:    d.ProductViews,
		LowStockAlerts:  d.LowStockAlerts,
		TodayOrderValue: d.TodayOrderValue,
		PercentageChanges: PercentageChangesResponse{
			Views:     d.PercentageChanges.Views,
			Inquiries: d.PercentageChanges.Inquiries,
			Messages:  d.PercentageChanges.Messages,
			Orders:    d.PercentageChanges.Orders,
			Stock:     d.PercentageChanges.Stock,
			Revenue:   d.PercentageChanges.Revenue,
		},
	}
}

// FunnelStageResponse is one stage of the engagement funnel
type FunnelStageResponse struct {
	Stage string `json:"stage"`
	Count int64  `json:"count"`
}

// EngagementFunnel returns the views, inquiries and orders of the last 30 days
func (s *ReportService) EngagementFunnel(ctx context.Context, userID, sellerID uuid.UUID) ([]FunnelStageResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	window, _ := report.ComparisonWindows(s.now())
	counts, err := s.periodCounts(ctx, seller.ID, window)
	if err != nil {
		return nil, err
	}

	stages := report.Funnel(counts)
	out := make([]FunnelStageResponse, 0, len(stages))
	for _, st := range stages {
		out = append(out, FunnelStageResponse{Stage: st.Stage, Count: st.Count})
	}
	return out, nil
}

// ===================== Sales Operations =====================

// SalesDataResponse is one day of the sales chart
type SalesDataResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// SalesData returns the daily rollup of the last 30 days, oldest first
func (s *ReportService) SalesData(ctx context.Context, userID, sellerID uuid.UUID) ([]SalesDataResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	today := report.DayOf(s.now())
	rows, err := s.repos.Sales.ListBetween(ctx, seller.ID, today.AddDate(0, 0, -report.WindowDays), today)
	if err != nil {
		return nil, err
	}

	out := make([]SalesDataResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, SalesDataResponse{
			Date:    row.Date.Format("2006-01-02"),
			Revenue: toFloat64(row.Revenue),
			Orders:  row.OrderCount,
		})
	}
	return out, nil
}

// RecentOrders returns the seller's newest orders
func (s *ReportService) RecentOrders(ctx context.Context, userID, sellerID uuid.UUID, limit int) ([]tradeapp.OrderResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecentOrderLimit
	}
	orders, err := s.repos.Orders.RecentBySeller(ctx, seller.ID, limit)
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	out := make([]tradeapp.OrderResponse, 0, len(orders))
	for _, o := range orders {
		name, ok := names[o.BuyerID]
		if !ok {
			if buyer, err := s.repos.Users.FindByID(ctx, o.BuyerID); err == nil {
				name = buyer.FullName()
			}
			names[o.BuyerID] = name
		}
		out = append(out, tradeapp.ToOrderResponse(o, name))
	}
	return out, nil
}

// ===================== Product Operations =====================

// ProductEngagementResponse is one product of the engagement ranking
type ProductEngagementResponse struct {
	ProductName string `json:"productName"`
	Views       int    `json:"views"`
	Inquiries   int    `json:"inquiries"`
	Orders      int    `json:"orders"`
}

// ProductEngagement returns the top products by views, inquiries and orders combined
func (s *ReportService) ProductEngagement(ctx context.Context, userID, sellerID uuid.UUID) ([]ProductEngagementResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	products, err := s.repos.Products.TopEngaged(ctx, seller.ID, EngagementTopN)
	if err != nil {
		return nil, err
	}

	out := make([]ProductEngagementResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ProductEngagementResponse{
			ProductName: p.Name,
			Views:       p.ViewCount,
			Inquiries:   p.InquiryCount,
			Orders:      p.OrderCount,
		})
	}
	return out, nil
}

// LowStockProduct is an active product at or below the stock threshold
type LowStockProduct struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Stock       int             `json:"stock"`
	MinOrderQty int             `json:"minOrderQty"`
	Price       decimal.Decimal `json:"price"`
	SKU         *string         `json:"sku"`
}

// LowStockProducts lists active products with stock at or below threshold,
// emptiest first. A negative threshold falls back to the default.
func (s *ReportService) LowStockProducts(ctx context.Context, userID, sellerID uuid.UUID, threshold int) ([]LowStockProduct, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	if threshold < 0 {
		threshold = DefaultLowStockLevel
	}
	out := make([]LowStockProduct, 0)
	if threshold == 0 {
		return out, nil
	}

	listings, _, err := s.repos.Products.List(ctx, catalog.ProductFilter{
		SellerID:   &seller.ID,
		ActiveOnly: true,
		MaxStock:   threshold + 1,
		OrderBy:    "stock_asc",
	})
	if err != nil {
		return nil, err
	}
	for _, l := range listings {
		out = append(out, LowStockProduct{
			ID:          l.ID,
			Name:        l.Name,
			Stock:       l.Stock,
			MinOrderQty: l.MinOrderQty,
			Price:       l.Price,
			SKU:         l.SKU,
		})
	}
	return out, nil
}

// ===================== Activity Operations =====================

// ActivityResponse is one entry of the activity feed
type ActivityResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	RelatedID   *uuid.UUID `json:"relatedEntityId"`
	RelatedName string     `json:"relatedEntityName,omitempty"`
	RelatedType string     `json:"relatedEntityType,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Activities returns the seller's activity feed, newest first
func (s *ReportService) Activities(ctx context.Context, userID, sellerID uuid.UUID, limit int) ([]ActivityResponse, error) {
	seller, err := s.access.OwnedSeller(ctx, userID, sellerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	activities, err := s.repos.Activities.ListBySeller(ctx, seller.ID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, ActivityResponse{
			ID:          a.ID,
			Type:        string(a.Type),
			Title:       a.Title,
			Description: a.Description,
			RelatedID:   a.Related.ID,
			RelatedName: a.Related.Name,
			RelatedType: a.Related.Type,
			CreatedAt:   a.CreatedAt,
		})
	}
	return out, nil
}

// toFloat64 converts decimal to float64 rounded to cents
func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
