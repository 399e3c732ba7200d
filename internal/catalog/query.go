package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"inventory-service/internal/model"
)

// Search filters products whose name contains the query, compared
// case-insensitively. An empty query returns the input unchanged. The match
// runs in memory over an already tenant-scoped list.
func Search(products []model.Product, query string) []model.Product {
	if query == "" {
		return products
	}
	needle := strings.ToLower(query)
	matched := make([]model.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Paginate returns the window for the 1-based page and the total number of
// pages. An empty list still has one page. A page past the end yields an
// empty window, not an error.
func Paginate(products []model.Product, page, pageSize int) ([]model.Product, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}
	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []model.Product{}, totalPages
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end], totalPages
}

// Stats aggregates a tenant's inventory for the dashboard.
type Stats struct {
	ProductCount int             `json:"product_count"`
	TotalUnits   int             `json:"total_units"`
	StockValue   decimal.Decimal `json:"stock_value"`
	LowStock     int             `json:"low_stock"`
}

// TenantStats computes dashboard aggregates over the tenant's products.
func (c *Catalog) TenantStats(tenantID uint) (Stats, error) {
	products, err := c.ListByTenant(tenantID)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{ProductCount: len(products), StockValue: decimal.Zero}
	for _, p := range products {
		stats.TotalUnits += p.Quantity
		stats.StockValue = stats.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Quantity))))
		if p.Quantity < LowStockThreshold {
			stats.LowStock++
		}
	}
	return stats, nil
}
