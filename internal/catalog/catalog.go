// Package catalog implements tenant-scoped product CRUD over the product
// store. Every operation that reads or writes by id takes the caller's
// tenant id and matches on both keys: a product owned by another tenant is
// reported as not found, never as forbidden.
package catalog

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"inventory-service/internal/model"
	"inventory-service/internal/store"
)

// LowStockThreshold is the quantity below which a product counts as low
// stock on the dashboard.
const LowStockThreshold = 5

// Catalog manages the product store.
type Catalog struct {
	store *store.Store
}

// New creates a catalog over the given product store.
func New(s *store.Store) *Catalog {
	return &Catalog{store: s}
}

// ProductInput carries the caller-editable product fields. ID and tenant
// ownership are never taken from input on update.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	ImageURL    string
}

// ListByTenant returns every product owned by the tenant, in file order.
func (c *Catalog) ListByTenant(tenantID uint) ([]model.Product, error) {
	recs, err := c.store.ReadAll()
	if err != nil {
		return nil, err
	}
	want := strconv.FormatUint(uint64(tenantID), 10)
	products := make([]model.Product, 0)
	for _, rec := range recs {
		if rec["tenant_id"] != want {
			continue
		}
		p, err := model.ParseProduct(rec)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Find returns the product matching both id and tenant, or nil. A matching
// id under a different tenant is indistinguishable from a missing one.
func (c *Catalog) Find(id, tenantID uint) (*model.Product, error) {
	recs, err := c.store.ReadAll()
	if err != nil {
		return nil, err
	}
	idx := matchRow(recs, id, tenantID)
	if idx < 0 {
		return nil, nil
	}
	p, err := model.ParseProduct(recs[idx])
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Add appends a new product for the tenant and returns its id. Ids are
// allocated across the whole store, not per tenant.
func (c *Catalog) Add(tenantID uint, in ProductInput) (uint, error) {
	var id uint
	err := c.store.Exclusive(func(v store.View) error {
		var err error
		id, err = v.NextID()
		if err != nil {
			return err
		}
		p := model.Product{
			ID:          id,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Quantity:    in.Quantity,
			TenantID:    tenantID,
			ImageURL:    in.ImageURL,
			CreatedAt:   time.Now().UTC(),
		}
		return v.Append(p.Record())
	})
	return id, err
}

// Update rewrites the product matching both id and tenant with the given
// fields, leaving id, tenant and creation time untouched. It reports
// whether a row was actually updated.
func (c *Catalog) Update(id, tenantID uint, in ProductInput) (bool, error) {
	updated := false
	err := c.store.Exclusive(func(v store.View) error {
		recs, err := v.ReadAll()
		if err != nil {
			return err
		}
		idx := matchRow(recs, id, tenantID)
		if idx < 0 {
			return nil
		}
		rec := recs[idx]
		rec["name"] = in.Name
		rec["description"] = in.Description
		rec["price"] = in.Price.String()
		rec["quantity"] = strconv.Itoa(in.Quantity)
		rec["image_url"] = in.ImageURL
		updated = true
		return v.RewriteAll(recs)
	})
	return updated, err
}

// Delete removes the product matching both id and tenant and reports
// whether a row was actually removed. The freed id is never reassigned.
func (c *Catalog) Delete(id, tenantID uint) (bool, error) {
	deleted := false
	err := c.store.Exclusive(func(v store.View) error {
		recs, err := v.ReadAll()
		if err != nil {
			return err
		}
		idx := matchRow(recs, id, tenantID)
		if idx < 0 {
			return nil
		}
		remaining := append(recs[:idx:idx], recs[idx+1:]...)
		deleted = true
		return v.RewriteAll(remaining)
	})
	return deleted, err
}

// matchRow finds the row matching both id and tenant, compared in textual
// form as stored. Returns -1 when there is no match.
func matchRow(recs []store.Record, id, tenantID uint) int {
	wantID := strconv.FormatUint(uint64(id), 10)
	wantTenant := strconv.FormatUint(uint64(tenantID), 10)
	for i, rec := range recs {
		if rec["id"] == wantID && rec["tenant_id"] == wantTenant {
			return i
		}
	}
	return -1
}
