package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/swiftsupply/backend/internal/application/catalog"
	engagementapp "github.com/swiftsupply/backend/internal/application/engagement"
	identityapp "github.com/swiftsupply/backend/internal/application/identity"
	inventoryapp "github.com/swiftsupply/backend/internal/application/inventory"
	partnerapp "github.com/swiftsupply/backend/internal/application/partner"
	reportapp "github.com/swiftsupply/backend/internal/application/report"
	tradeapp "github.com/swiftsupply/backend/internal/application/trade"
	"github.com/swiftsupply/backend/internal/domain/identity"
	"github.com/swiftsupply/backend/internal/infrastructure/auth"
	"github.com/swiftsupply/backend/internal/infrastructure/cache"
	"github.com/swiftsupply/backend/internal/infrastructure/config"
	"github.com/swiftsupply/backend/internal/infrastructure/event"
	"github.com/swiftsupply/backend/internal/infrastructure/google"
	"github.com/swiftsupply/backend/internal/infrastructure/logger"
	"github.com/swiftsupply/backend/internal/infrastructure/mail"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence"
	"github.com/swiftsupply/backend/internal/infrastructure/persistence/models"
	"github.com/swiftsupply/backend/internal/infrastructure/printing"
	"github.com/swiftsupply/backend/internal/infrastructure/storage"
	"github.com/swiftsupply/backend/internal/infrastructure/telemetry"
	"github.com/swiftsupply/backend/internal/infrastructure/throttle"
	"github.com/swiftsupply/backend/internal/interfaces/http/handler"
	"github.com/swiftsupply/backend/internal/interfaces/http/middleware"
	"github.com/swiftsupply/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/swiftsupply/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const (
	// Requests per minute allowed per client IP on login, reset-password and google-signin
	authRequestsPerMinute = 10
	// Room for the multipart envelope around an uploaded image
	multipartOverhead = 1 << 20
)

//	@title			SwiftSupply Marketplace API
//	@version		1.0
//	@description	B2B marketplace backend: catalog, suppliers, inventory, orders, inquiries, chat and seller dashboards
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/swiftsupply/backend
//	@contact.email	support@swiftsupply.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
	}

	// Application logs are exported through OTLP next to the console output
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		otlpCore := logProvider.Core(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))
		if log, err = logger.New(logCfg, otlpCore); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SwiftSupply backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	dbSystem := "postgresql"
	if cfg.Database.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
		log.Info("Schema auto-migrated")
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	buyerRepo := persistence.NewGormBuyerProfileRepository(db.DB)
	sellerRepo := persistence.NewGormSellerProfileRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	inventoryLogRepo := persistence.NewGormInventoryLogRepository(db.DB)
	inquiryRepo := persistence.NewGormInquiryRepository(db.DB)
	supplierReviewRepo := persistence.NewGormSupplierReviewRepository(db.DB)
	productViewRepo := persistence.NewGormProductViewRepository(db.DB)
	chatRepo := persistence.NewGormChatRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	salesDataRepo := persistence.NewGormSalesDataRepository(db.DB)
	taxonomyCache := cache.NewTaxonomyCache(
		persistence.NewGormTaxonomyRepository(db.DB),
		cache.WithLogger(log),
	)
	txScope := persistence.NewGormTransactionScope(db.DB)

	eventBus := event.NewInMemoryEventBus(log)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenBlacklist, err := auth.NewTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize token blacklist", zap.Error(err))
	}

	mailSender, err := mail.New(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mail sender", zap.Error(err))
	}

	imageStore, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	var pdfRenderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		chrome, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.Timeout,
			RemoteURL:      cfg.Printing.RemoteChrome,
			NoSandbox:      os.Geteuid() == 0,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() {
			_ = chrome.Close()
		}()
		pdfRenderer = chrome
	}
	invoicePrinter, err := printing.NewInvoicePrinter(printing.NewTemplateEngine(), pdfRenderer, log)
	if err != nil {
		log.Fatal("Failed to initialize invoice printer", zap.Error(err))
	}

	// Initialize application services
	sellerAccess := partnerapp.NewSellerAccess(sellerRepo)
	authService := identityapp.NewAuthService(identityapp.AuthServiceDeps{
		Users:      userRepo,
		Buyers:     buyerRepo,
		Sellers:    sellerRepo,
		TxScope:    txScope,
		JWTService: jwtService,
		Blacklist:  tokenBlacklist,
		Notifier:   mail.NewAccountMailer(mailSender),
		Google:     google.NewVerifier(cfg.Google),
		MailLimit:  throttle.New(cfg.OTP.ResendInterval, cfg.OTP.ResendBurst),
		Events:     eventBus,
	}, identityapp.AuthServiceConfig{
		OTPTTL:        cfg.OTP.TTL,
		ResetTokenTTL: cfg.OTP.ResetTokenTTL,
		PublicURL:     cfg.App.PublicURL,
	}, log)

	taxonomyService := catalogapp.NewTaxonomyService(taxonomyCache)
	productService := catalogapp.NewProductQueryService(productRepo, reviewRepo, txScope, eventBus, log)
	sellerProductService := catalogapp.NewSellerProductService(
		sellerAccess, productRepo, txScope, imageStore, eventBus,
		catalogapp.SellerProductConfig{ImageBaseURL: cfg.Storage.PublicPath},
		log,
	)
	supplierService := partnerapp.NewSupplierService(sellerRepo, userRepo, taxonomyCache, supplierReviewRepo, txScope, log)
	inventoryService := inventoryapp.NewInventoryService(sellerAccess, productRepo, inventoryLogRepo, txScope, eventBus, log)
	orderService := tradeapp.NewOrderService(sellerAccess, sellerRepo, userRepo, productRepo, orderRepo, txScope, eventBus, log)
	invoiceService := tradeapp.NewInvoiceService(sellerAccess, userRepo, buyerRepo, orderRepo, invoicePrinter, log)
	inquiryService := engagementapp.NewInquiryService(sellerAccess, userRepo, productRepo, inquiryRepo, txScope, eventBus, log)
	supplierReviewService := engagementapp.NewSupplierReviewService(sellerAccess, userRepo, orderRepo, supplierReviewRepo, eventBus, log)
	chatService := engagementapp.NewChatService(sellerAccess, userRepo, chatRepo, txScope, eventBus, log)
	reportService := reportapp.NewReportService(sellerAccess, reportapp.Repositories{
		Sellers:    sellerRepo,
		Users:      userRepo,
		Products:   productRepo,
		Views:      productViewRepo,
		Inquiries:  inquiryRepo,
		Chats:      chatRepo,
		Orders:     orderRepo,
		Logs:       inventoryLogRepo,
		Sales:      salesDataRepo,
		Activities: activityRepo,
	})

	// Event subscribers
	marketplaceMetrics, err := telemetry.NewMarketplaceMetrics(meterProvider.Meter("swiftsupply/marketplace"))
	if err != nil {
		log.Fatal("Failed to create marketplace metrics", zap.Error(err))
	}
	eventBus.SubscribeAll(
		reportapp.NewActivityHandler(activityRepo, log),
		reportapp.NewSalesDataHandler(salesDataRepo, log),
		inventoryapp.NewStockAlertHandler(log).WithNotifier(inventoryapp.NewLoggingStockAlertNotifier(log)),
		marketplaceMetrics,
		taxonomyCache,
	)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Initialize handlers
	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService, cfg.Cookie),
		Taxonomy:      handler.NewTaxonomyHandler(taxonomyService),
		Products:      handler.NewProductHandler(productService),
		Suppliers:     handler.NewSupplierHandler(supplierService),
		SellerProduct: handler.NewSellerProductHandler(sellerProductService, cfg.HTTP.MaxUploadSize),
		Inventory:     handler.NewInventoryHandler(inventoryService),
		Orders:        handler.NewOrderHandler(orderService, invoiceService),
		Engagement:    handler.NewEngagementHandler(inquiryService, supplierReviewService, chatService),
		Reports:       handler.NewReportHandler(reportService),
		System:        handler.NewSystemHandler(cfg.App.Name, version, db),
	}
	imageHandler := handler.NewImageHandler(imageStore)

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		CookieName:     cfg.Cookie.AccessName,
		Logger:         log,
	}
	guards := router.Guards{
		Auth:         middleware.JWTAuthMiddleware(jwtConfig),
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(jwtConfig),
		Buyer:        middleware.RequireRole(identity.RoleBuyer),
		Seller:       middleware.RequireRole(identity.RoleSeller),
	}
	if cfg.HTTP.RateLimitEnabled {
		guards.AuthThrottle = middleware.RateLimit(middleware.NewRequestLimiter(authRequestsPerMinute, time.Minute))
	}

	// Setup Gin
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("swiftsupply/http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	profilingCfg := middleware.DefaultProfilingConfig()
	profilingCfg.Enabled = profiler.IsEnabled()

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		}),
		middleware.SpanEnricher(),
		httpMetrics,
		middleware.Profiling(profilingCfg),
		middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize, middleware.RouteLimit{
			Path:     "/api/v1/suppliers/upload-image",
			MaxBytes: cfg.HTTP.MaxUploadSize + multipartOverhead,
		}),
	)
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRequestLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	engine.GET("/health", handlers.System.Health)
	engine.GET(cfg.Storage.PublicPath+"/:filename", imageHandler.Serve)
	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(router.Marketplace(handlers, guards)...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down log provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
