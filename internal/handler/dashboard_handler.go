package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/catalog"
	"inventory-service/internal/directory"
	"inventory-service/internal/middleware"
	"inventory-service/pkg/logger"
)

// DashboardHandler serves the aggregate stock statistics view.
type DashboardHandler struct {
	catalog *catalog.Catalog
	tenants *directory.TenantDirectory
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(cat *catalog.Catalog, tenants *directory.TenantDirectory) *DashboardHandler {
	return &DashboardHandler{catalog: cat, tenants: tenants}
}

// Dashboard returns stock aggregates for the caller's tenant: product
// count, total units, total stock value and the low-stock count.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	log := logger.FromContext(c)
	scope, ok := middleware.ScopeFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	stats, err := h.catalog.TenantStats(scope.TenantID)
	if err != nil {
		log.Error("Failed to compute dashboard stats",
			zap.Uint("tenant_id", scope.TenantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute statistics"})
	}

	var tenantName string
	if tenant, err := h.tenants.FindByID(scope.TenantID); err == nil && tenant != nil {
		tenantName = tenant.Name
	}

	log.Info("Dashboard served",
		zap.Uint("tenant_id", scope.TenantID),
		zap.Int("product_count", stats.ProductCount))

	return c.JSON(http.StatusOK, echo.Map{
		"tenant": map[string]interface{}{
			"id":   scope.TenantID,
			"name": tenantName,
		},
		"stats": stats,
	})
}
