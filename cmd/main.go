package main

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"inventory-service/internal/catalog"
	"inventory-service/internal/directory"
	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/store"
	"inventory-service/pkg/config"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port),
		zap.String("data_dir", appConfig.Data.Dir))

	// Initialize JWT utility
	jwtUtil := jwtutil.NewJWTUtil(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize the flat-file stores
	dataDir := appConfig.Data.Dir
	tenantStore := store.New(filepath.Join(dataDir, "tenants.csv"), model.TenantColumns)
	userStore := store.New(filepath.Join(dataDir, "users.csv"), model.UserColumns)
	productStore := store.New(filepath.Join(dataDir, "products.csv"), model.ProductColumns)
	for _, s := range []*store.Store{tenantStore, userStore, productStore} {
		if err := s.EnsureInitialized(); err != nil {
			log.Fatal("Failed to initialize store", zap.String("path", s.Path()), zap.Error(err))
		}
	}
	log.Info("Stores initialized")

	tenants := directory.NewTenantDirectory(tenantStore)
	accounts := directory.NewAccountDirectory(userStore, tenants, appConfig.Auth.BcryptCost)
	products := catalog.New(productStore)

	if appConfig.Data.SeedDemoData {
		if err := seedDemoData(tenants, products); err != nil {
			log.Warn("Demo data seeding failed", zap.Error(err))
		}
	}

	authHandler := handler.NewAuthHandler(accounts, tenants, jwtUtil)
	productHandler := handler.NewProductHandler(products)
	dashboardHandler := handler.NewDashboardHandler(products, tenants)
	adminHandler := handler.NewAdminHandler(tenants, products)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomw.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)
	e.Use(logger.Middleware())

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Authentication routes
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout, mid.Auth(jwtUtil))

	// Dashboard
	e.GET("/api/dashboard", dashboardHandler.Dashboard, mid.Auth(jwtUtil))

	// Product API routes - auth middleware validates the JWT and carries
	// the tenant scope into every handler
	productAPI := e.Group("/api/products", mid.Auth(jwtUtil))
	productAPI.GET("", productHandler.ListProducts)
	productAPI.GET("/:id", productHandler.GetProduct)
	productAPI.POST("", productHandler.CreateProduct)
	productAPI.PUT("/:id", productHandler.UpdateProduct)
	productAPI.DELETE("/:id", productHandler.DeleteProduct)

	// Admin routes - browse any tenant and edit its data
	adminAPI := e.Group("/api/admin", mid.Auth(jwtUtil), mid.RequireAdmin)
	adminAPI.GET("/tenants", adminHandler.ListTenants)
	adminAPI.GET("/tenants/:id/products", adminHandler.ListTenantProducts)
	adminAPI.PUT("/tenants/:id/products/:product_id", adminHandler.UpdateTenantProduct)
	adminAPI.DELETE("/tenants/:id/products/:product_id", adminHandler.DeleteTenantProduct)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// seedDemoData populates an empty catalog with a few demo products under a
// demo tenant, for first-run exploration.
func seedDemoData(tenants *directory.TenantDirectory, products *catalog.Catalog) error {
	tenantID, err := tenants.Resolve("Demo Company")
	if err != nil {
		return err
	}
	existing, err := products.ListByTenant(tenantID)
	if err != nil || len(existing) > 0 {
		return err
	}
	demo := []catalog.ProductInput{
		{Name: "Laptop", Description: "i7, 16GB RAM", Price: decimal.RequireFromString("899.99"), Quantity: 5},
		{Name: "Wireless Mouse", Description: "Long battery life", Price: decimal.RequireFromString("29.99"), Quantity: 25},
		{Name: "Mechanical Keyboard", Description: "RGB backlit", Price: decimal.RequireFromString("79.99"), Quantity: 12},
	}
	for _, in := range demo {
		if _, err := products.Add(tenantID, in); err != nil {
			return err
		}
	}
	return nil
}
