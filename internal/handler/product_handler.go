package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"inventory-service/internal/catalog"
	"inventory-service/internal/middleware"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// DefaultPageSize is used when the client does not ask for a page size.
const DefaultPageSize = 10

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url"`
}

func (r ProductRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if r.Price.IsNegative() {
		return "price must not be negative"
	}
	if r.Quantity < 0 {
		return "quantity must not be negative"
	}
	return ""
}

func (r ProductRequest) input() catalog.ProductInput {
	return catalog.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		ImageURL:    r.ImageURL,
	}
}

// ProductHandler serves the tenant-scoped product CRUD and search routes.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler creates a ProductHandler over the given catalog.
func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// ListProducts returns a page of the caller's products, optionally filtered
// by a case-insensitive name search.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	scope, ok := middleware.ScopeFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackStoreOperation("read")(time.Now())
	products, err := h.catalog.ListByTenant(scope.TenantID)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve products"})
	}

	query := c.QueryParam("q")
	products = catalog.Search(products, query)

	page := intParam(c, "page", 1)
	pageSize := intParam(c, "page_size", DefaultPageSize)
	window, totalPages := catalog.Paginate(products, page, pageSize)

	log.Info("Products listed",
		zap.Uint("tenant_id", scope.TenantID),
		zap.String("query", query),
		zap.Int("total", len(products)),
		zap.Int("page", page))

	return c.JSON(http.StatusOK, echo.Map{
		"products":    window,
		"total":       len(products),
		"page":        page,
		"page_size":   pageSize,
		"total_pages": totalPages,
	})
}

// GetProduct returns one product owned by the caller's tenant.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	scope, ok := middleware.ScopeFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	product, err := h.catalog.Find(id, scope.TenantID)
	if err != nil {
		log.Error("Failed to look up product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve product"})
	}
	if product == nil {
		// A product under another tenant answers exactly like a missing one.
		log.Warn("Product not found", zap.Uint("product_id", id), zap.Uint("tenant_id", scope.TenantID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the caller's tenant.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	scope, ok := middleware.ScopeFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg := req.validate(); msg != "" {
		log.Warn("Invalid product data", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	defer prometheus.TrackStoreOperation("append")(time.Now())
	id, err := h.catalog.Add(scope.TenantID, req.input())
	if err != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	prometheus.RecordProductOperation("create")
	prometheus.UpdateProductInventory(strconv.FormatUint(uint64(id), 10), req.Name, float64(req.Quantity))

	log.Info("Product created",
		zap.Uint("product_id", id),
		zap.String("name", req.Name),
		zap.Uint("tenant_id", scope.TenantID))

	product, err := h.catalog.Find(id, scope.TenantID)
	if err != nil || product == nil {
		return c.JSON(http.StatusCreated, echo.Map{"id": id})
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct rewrites a product owned by the caller's tenant.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	scope, ok := middleware.ScopeFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}
	if msg := req.validate(); msg != "" {
		log.Warn("Invalid product data", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	defer prometheus.TrackStoreOperation("rewrite")(time.Now())
	updated, err := h.catalog.Update(id, scope.TenantID, req.input())
	if err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
	}
	if !updated {
		log.Warn("Product not found for update",
			zap.Uint("product_id", id),
			zap.Uint("tenant_id", scope.TenantID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	prometheus.RecordProductOperation("update")
	prometheus.UpdateProductInventory(strconv.FormatUint(uint64(id), 10), req.Name, float64(req.Quantity))

	log.Info("Product updated",
		zap.Uint("product_id", id),
		zap.String("name", req.Name),
		zap.Uint("tenant_id", scope.TenantID))

	product, err := h.catalog.Find(id, scope.TenantID)
	if err != nil || product == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "product updated"})
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product owned by the caller's tenant.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	scope, ok := middleware.ScopeFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product ID"})
	}

	defer prometheus.TrackStoreOperation("rewrite")(time.Now())
	deleted, err := h.catalog.Delete(id, scope.TenantID)
	if err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}
	if !deleted {
		log.Warn("Product not found for deletion",
			zap.Uint("product_id", id),
			zap.Uint("tenant_id", scope.TenantID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	prometheus.RecordProductOperation("delete")

	log.Info("Product deleted",
		zap.Uint("product_id", id),
		zap.Uint("tenant_id", scope.TenantID))
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}

func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func intParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
