package router

import (
	"github.com/gin-gonic/gin"
	"github.com/swiftsupply/backend/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers mounted by Marketplace
type Handlers struct {
	Auth          *handler.AuthHandler
	Taxonomy      *handler.TaxonomyHandler
	Products      *handler.ProductHandler
	Suppliers     *handler.SupplierHandler
	SellerProduct *handler.SellerProductHandler
	Inventory     *handler.InventoryHandler
	Orders        *handler.OrderHandler
	Engagement    *handler.EngagementHandler
	Reports       *handler.ReportHandler
	System        *handler.SystemHandler
}

// Guards are the authentication and role middleware applied per route group
type Guards struct {
	// Auth rejects requests without a valid access token
	Auth gin.HandlerFunc
	// OptionalAuth reads a token when present
	OptionalAuth gin.HandlerFunc
	// Buyer and Seller reject authenticated users of the other role
	Buyer  gin.HandlerFunc
	Seller gin.HandlerFunc
	// AuthThrottle limits the credential endpoints. May be nil.
	AuthThrottle gin.HandlerFunc
}

// Marketplace returns the route groups of the /api/v1 surface
func Marketplace(h Handlers, g Guards) []RouteRegistrar {
	throttled := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if g.AuthThrottle == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{g.AuthThrottle, next}
	}

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/signup", h.Auth.Signup).
		POST("/check-unique", h.Auth.CheckUnique).
		POST("/verify-otp", h.Auth.VerifyOTP).
		POST("/resend-otp", h.Auth.ResendOTP).
		POST("/login", throttled(h.Auth.Login)...).
		POST("/refresh", h.Auth.RefreshToken).
		POST("/logout", h.Auth.Logout).
		POST("/forgot-password", h.Auth.ForgotPassword).
		POST("/reset-password", throttled(h.Auth.ResetPassword)...).
		POST("/google-signin", throttled(h.Auth.GoogleSignIn)...).
		GET("/me", g.Auth, h.Auth.GetCurrentUser)

	taxonomy := NewDomainGroup("taxonomy", "")
	taxonomy.GET("/categories", h.Taxonomy.ListCategories).
		GET("/categories/list", h.Taxonomy.ListCategoryDetails).
		GET("/product-types", h.Taxonomy.ListProductTypes).
		GET("/product-types/list/:category", h.Taxonomy.ListProductTypesByCategory).
		GET("/brands/list/:productType", h.Taxonomy.ListBrandsByProductType)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Products.List).
		GET("/:id", g.OptionalAuth, h.Products.Get).
		GET("/:id/related", h.Products.Related).
		POST("/:id/reviews", g.Auth, g.Buyer, h.Products.AddReview).
		POST("/:id/favorite", g.Auth, h.Products.AddFavorite).
		DELETE("/:id/favorite", g.Auth, h.Products.RemoveFavorite)

	favorites := NewDomainGroup("favorites", "/favorites").Use(g.Auth)
	favorites.GET("", h.Products.ListFavorites)

	// Public supplier directory
	directory := NewDomainGroup("suppliers", "/suppliers")
	directory.GET("", h.Suppliers.List).
		GET("/:id", h.Suppliers.Get).
		GET("/:id/verification-status", h.Suppliers.VerificationStatus)

	// Buyer actions on a supplier
	buyerActions := NewDomainGroup("supplier-engagement", "/suppliers").Use(g.Auth, g.Buyer)
	buyerActions.POST("/:id/contact", h.Engagement.Contact).
		POST("/:id/reviews", h.Engagement.AddSupplierReview)

	// Invoices are open to both order parties; the service checks which
	invoices := NewDomainGroup("invoices", "/suppliers").Use(g.Auth)
	invoices.GET("/:id/orders/:orderId/invoice", h.Orders.Invoice)

	seller := NewDomainGroup("seller", "/suppliers").Use(g.Auth, g.Seller)
	seller.GET("/inventory", h.SellerProduct.Inventory).
		POST("/upload-image", h.SellerProduct.UploadImage).
		POST("/product", h.SellerProduct.Create).
		PUT("/products/:id", h.SellerProduct.Update).
		POST("/inventory/update-stock", h.Inventory.UpdateOwnStock)

	owned := seller.Group("owned-supplier", "/:id")
	owned.DELETE("/products/:productId", h.SellerProduct.Delete).
		POST("/inventory/update-stock", h.Inventory.UpdateStock).
		GET("/inventory/summary", h.Inventory.Summary).
		GET("/inventory/alerts", h.Inventory.Alerts).
		GET("/inventory/logs", h.Inventory.Logs).
		PUT("/orders/:orderId/status", h.Orders.UpdateStatus).
		GET("/inquiries", h.Engagement.ListInquiries).
		PUT("/inquiries/:inquiryId/respond", h.Engagement.RespondInquiry).
		PUT("/inquiries/:inquiryId/close", h.Engagement.CloseInquiry).
		PUT("/inquiries/:inquiryId/read", h.Engagement.MarkInquiryRead).
		GET("/dashboard", h.Reports.Dashboard).
		GET("/sales-data", h.Reports.SalesData).
		GET("/product-engagement", h.Reports.ProductEngagement).
		GET("/recent-orders", h.Reports.RecentOrders).
		GET("/low-stock-products", h.Reports.LowStockProducts).
		GET("/activities", h.Reports.Activities).
		GET("/engagement-funnel", h.Reports.EngagementFunnel).
		PUT("/profile", h.Suppliers.UpdateProfile).
		GET("/business-profile", h.Suppliers.BusinessProfile).
		PUT("/business-profile", h.Suppliers.UpdateBusinessProfile)

	orders := NewDomainGroup("orders", "/orders").Use(g.Auth)
	orders.POST("", g.Buyer, h.Orders.Place).
		GET("", g.Buyer, h.Orders.List).
		GET("/:id", h.Orders.Get)

	chat := NewDomainGroup("chat", "/chat/rooms").Use(g.Auth)
	chat.POST("", g.Buyer, h.Engagement.OpenRoom).
		GET("", h.Engagement.ListRooms).
		GET("/:id/messages", h.Engagement.Messages).
		POST("/:id/messages", h.Engagement.PostMessage).
		PUT("/:id/read", h.Engagement.MarkRoomRead)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	return []RouteRegistrar{
		auth, taxonomy, products, favorites,
		directory, buyerActions, invoices, seller,
		orders, chat, system,
	}
}
