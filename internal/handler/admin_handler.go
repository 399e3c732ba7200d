package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/catalog"
	"inventory-service/internal/directory"
	"inventory-service/pkg/logger"
)

// AdminHandler serves the admin-only tenant browsing routes. Admins may
// inspect and edit any tenant's products; the tenant under inspection comes
// from the path, never from the admin's own scope.
type AdminHandler struct {
	tenants *directory.TenantDirectory
	catalog *catalog.Catalog
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(tenants *directory.TenantDirectory, cat *catalog.Catalog) *AdminHandler {
	return &AdminHandler{tenants: tenants, catalog: cat}
}

// ListTenants returns every tenant, in file order.
func (h *AdminHandler) ListTenants(c echo.Context) error {
	log := logger.FromContext(c)

	tenants, err := h.tenants.ListAll()
	if err != nil {
		log.Error("Failed to list tenants", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve tenants"})
	}

	log.Info("Tenants listed", zap.Int("count", len(tenants)))
	return c.JSON(http.StatusOK, echo.Map{"tenants": tenants})
}

// ListTenantProducts returns the products of the tenant named in the path.
func (h *AdminHandler) ListTenantProducts(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, err := parseTenantParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant ID"})
	}

	tenant, err := h.tenants.FindByID(tenantID)
	if err != nil {
		log.Error("Failed to look up tenant", zap.Uint("tenant_id", tenantID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve tenant"})
	}
	if tenant == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
	}

	products, err := h.catalog.ListByTenant(tenantID)
	if err != nil {
		log.Error("Failed to list tenant products", zap.Uint("tenant_id", tenantID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	log.Info("Tenant products listed (admin)",
		zap.Uint("tenant_id", tenantID),
		zap.Int("count", len(products)))

	return c.JSON(http.StatusOK, echo.Map{
		"tenant":   tenant,
		"products": products,
	})
}

// UpdateTenantProduct edits a product on behalf of the tenant named in the
// path.
func (h *AdminHandler) UpdateTenantProduct(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, err := parseTenantParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant ID"})
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	updated, err := h.catalog.Update(uint(productID), tenantID, req.input())
	if err != nil {
		log.Error("Failed to update product (admin)",
			zap.Uint64("product_id", productID),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}
	if !updated {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	log.Info("Product updated (admin)",
		zap.Uint64("product_id", productID),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "product updated"})
}

// DeleteTenantProduct removes a product on behalf of the tenant named in
// the path.
func (h *AdminHandler) DeleteTenantProduct(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, err := parseTenantParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tenant ID"})
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	deleted, err := h.catalog.Delete(uint(productID), tenantID)
	if err != nil {
		log.Error("Failed to delete product (admin)",
			zap.Uint64("product_id", productID),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	log.Info("Product deleted (admin)",
		zap.Uint64("product_id", productID),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}

func parseTenantParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
