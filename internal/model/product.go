package model

import (
	"fmt"
	"inventory-service/internal/store"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ProductColumns is the on-disk column order of the product store. Files
// written by deployments that predate image_url and created_at simply carry
// fewer columns; the parser treats the missing values as empty.
var ProductColumns = []string{"id", "name", "description", "price", "quantity", "tenant_id", "image_url", "created_at"}

// Product represents one inventory item owned by a tenant.
type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	TenantID    uint            `json:"tenant_id"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ParseProduct converts a raw store record into a typed Product.
func ParseProduct(rec store.Record) (Product, error) {
	id, err := parseID(rec["id"])
	if err != nil {
		return Product{}, err
	}
	tenantID, err := parseID(rec["tenant_id"])
	if err != nil {
		return Product{}, err
	}
	price, err := decimal.NewFromString(rec["price"])
	if err != nil {
		return Product{}, fmt.Errorf("malformed price %q: %w", rec["price"], err)
	}
	quantity, err := strconv.Atoi(rec["quantity"])
	if err != nil {
		return Product{}, fmt.Errorf("malformed quantity %q: %w", rec["quantity"], err)
	}
	createdAt, err := parseTime(rec["created_at"])
	if err != nil {
		return Product{}, err
	}
	return Product{
		ID:          id,
		Name:        rec["name"],
		Description: rec["description"],
		Price:       price,
		Quantity:    quantity,
		TenantID:    tenantID,
		ImageURL:    rec["image_url"],
		CreatedAt:   createdAt,
	}, nil
}

// Record converts the product back into its on-disk representation.
func (p Product) Record() store.Record {
	return store.Record{
		"id":          strconv.FormatUint(uint64(p.ID), 10),
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"quantity":    strconv.Itoa(p.Quantity),
		"tenant_id":   strconv.FormatUint(uint64(p.TenantID), 10),
		"image_url":   p.ImageURL,
		"created_at":  p.CreatedAt.Format(time.RFC3339),
	}
}
