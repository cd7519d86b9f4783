// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"negocio/internal/blobstore"
	"negocio/internal/docstore"
	"negocio/internal/domain/alerts"
	"negocio/internal/domain/audit"
	"negocio/internal/domain/auth"
	"negocio/internal/domain/catalogs/client"
	"negocio/internal/domain/catalogs/product"
	"negocio/internal/domain/catalogs/supplier"
	"negocio/internal/domain/checkout"
	"negocio/internal/domain/employees"
	"negocio/internal/domain/finance"
	"negocio/internal/domain/invoices"
	"negocio/internal/domain/payments"
	"negocio/internal/domain/reports"
	"negocio/internal/domain/sales"
	"negocio/internal/infrastructure/http/v1/handlers"
	"negocio/internal/infrastructure/http/v1/middleware"
	"negocio/pkg/logger"
	"negocio/pkg/numerator"
)

// Letterhead is the business identity printed on invoices.
type Letterhead struct {
	Name    string
	Address string
	Phone   string
}

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Store is the document store backing all collections.
	Store docstore.Store

	// Blobs is the object store for file attachments.
	Blobs blobstore.Store

	// Pinger checks backing-store connectivity for readiness. Optional.
	Pinger handlers.Pinger

	// Logger for request logging.
	Logger *logger.Logger

	// AuthService for authentication endpoints.
	AuthService *auth.Service

	// StockAlertRule is the CEL expression for low-stock alerts.
	// Empty uses the default rule.
	StockAlertRule string

	// Letterhead for invoice PDFs.
	Letterhead Letterhead

	// Version reported by /health/info.
	Version string
}

// NewRouter creates and configures the Gin router, wiring the domain
// services over the document store.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pinger, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Domain wiring
	productRepo := product.NewRepo(cfg.Store)
	productService := product.NewService(productRepo)
	clientService := client.NewService(cfg.Store)
	supplierService := supplier.NewService(cfg.Store)
	employeeService := employees.NewService(cfg.Store, cfg.Blobs)

	salesRepo := sales.NewRepo(cfg.Store)
	registry := sales.NewRegistry()

	invoiceRepo := invoices.NewRepo(cfg.Store)
	generator := invoices.NewGenerator(invoiceRepo, numerator.New(cfg.Store))
	renderer := invoices.NewRenderer(cfg.Letterhead.Name, cfg.Letterhead.Address, cfg.Letterhead.Phone)

	finalizer := checkout.NewFinalizer(productRepo, salesRepo, generator)

	alertService, err := alerts.NewService(productRepo, cfg.StockAlertRule)
	if err != nil {
		return nil, err
	}

	auditService, err := audit.NewService(cfg.Store)
	if err != nil {
		return nil, err
	}

	reportService := reports.NewService(salesRepo)
	paymentService := payments.NewService(cfg.Store)
	financeService := finance.NewService(cfg.Store, salesRepo)

	// Stock mutations invalidate the alert cache and leave an audit trail.
	finalizer.OnSaleFinalized(func(ctx context.Context, sale *sales.Sale) {
		alertService.Invalidate()
		auditService.LogChange(ctx, "sale", sale.ID, audit.ActionFinalize, sale)
	})

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
		publicAuth := apiV1.Group("/auth")
		protectedAuth := apiV1.Group("/auth")
		protectedAuth.Use(middleware.Auth(cfg.AuthService))
		authHandler.RegisterRoutes(publicAuth, protectedAuth)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))

		handlers.NewProductHandler(baseHandler, productService).
			RegisterRoutes(protected.Group("/products"))
		handlers.NewClientHandler(baseHandler, clientService).
			RegisterRoutes(protected.Group("/clients"))
		handlers.NewSupplierHandler(baseHandler, supplierService).
			RegisterRoutes(protected.Group("/suppliers"))
		handlers.NewEmployeeHandler(baseHandler, employeeService).
			RegisterRoutes(protected.Group("/employees"))
		handlers.NewCartHandler(baseHandler, registry, productService, finalizer).
			RegisterRoutes(protected.Group("/carts"))
		handlers.NewSalesHandler(baseHandler, salesRepo).
			RegisterRoutes(protected.Group("/sales"))
		handlers.NewInvoiceHandler(baseHandler, invoiceRepo, renderer).
			RegisterRoutes(protected.Group("/invoices"))
		handlers.NewAlertsHandler(baseHandler, alertService).
			RegisterRoutes(protected.Group("/alerts"))
		handlers.NewReportsHandler(baseHandler, reportService).
			RegisterRoutes(protected.Group("/reports"))
		handlers.NewAuditHandler(baseHandler, auditService).
			RegisterRoutes(protected.Group("/audit"))
		handlers.NewPaymentsHandler(baseHandler, paymentService).
			RegisterRoutes(protected.Group("/payments"))
		handlers.NewFinanceHandler(baseHandler, financeService).
			RegisterRoutes(protected.Group("/finance"))
	}

	return router, nil
}
