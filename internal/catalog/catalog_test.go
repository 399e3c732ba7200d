package catalog

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"inventory-service/internal/model"
	"inventory-service/internal/store"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(store.New(filepath.Join(t.TempDir(), "products.csv"), model.ProductColumns))
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAdd(t *testing.T) {
	c := newCatalog(t)

	id, err := c.Add(1, ProductInput{Name: "Mouse", Price: price("9.99"), Quantity: 100})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if id != 1 {
		t.Errorf("first product id = %d, want 1", id)
	}

	// Ids are allocated over the whole store, not per tenant.
	id2, err := c.Add(2, ProductInput{Name: "Mouse2", Price: price("19.99"), Quantity: 10})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if id2 != 2 {
		t.Errorf("second product id = %d, want 2", id2)
	}

	got, err := c.Find(1, 1)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got == nil {
		t.Fatal("Find(1, 1) = nil after Add")
	}
	if got.Name != "Mouse" || !got.Price.Equal(price("9.99")) || got.Quantity != 100 {
		t.Errorf("product = %+v, want Mouse / 9.99 / 100", got)
	}
}

func TestTenantIsolation(t *testing.T) {
	c := newCatalog(t)
	id, err := c.Add(2, ProductInput{Name: "Keyboard", Price: price("49.50"), Quantity: 5})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// The owning tenant sees the product; any other tenant gets not-found
	// for the very same id.
	if got, err := c.Find(id, 2); err != nil || got == nil {
		t.Fatalf("Find(%d, owner) = %v, %v, want product", id, got, err)
	}
	if got, err := c.Find(id, 1); err != nil || got != nil {
		t.Errorf("Find(%d, other tenant) = %v, %v, want nil", id, got, err)
	}

	if ok, err := c.Update(id, 1, ProductInput{Name: "Stolen", Price: price("1"), Quantity: 1}); err != nil || ok {
		t.Errorf("Update under other tenant = %v, %v, want false", ok, err)
	}
	if ok, err := c.Delete(id, 1); err != nil || ok {
		t.Errorf("Delete under other tenant = %v, %v, want false", ok, err)
	}

	// The product is untouched after the failed cross-tenant writes.
	got, err := c.Find(id, 2)
	if err != nil || got == nil {
		t.Fatalf("Find() after cross-tenant writes = %v, %v", got, err)
	}
	if got.Name != "Keyboard" {
		t.Errorf("name = %q, want %q", got.Name, "Keyboard")
	}
}

func TestUpdate(t *testing.T) {
	c := newCatalog(t)
	id, err := c.Add(1, ProductInput{Name: "Screen", Description: "24 inch", Price: price("120.00"), Quantity: 8})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ok, err := c.Update(id, 1, ProductInput{Name: "Screen XL", Description: "27 inch", Price: price("150.00"), Quantity: 6, ImageURL: "/img/screen.png"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !ok {
		t.Fatal("Update() = false, want true")
	}

	got, err := c.Find(id, 1)
	if err != nil || got == nil {
		t.Fatalf("Find() after update = %v, %v", got, err)
	}
	if got.Name != "Screen XL" || got.Quantity != 6 || !got.Price.Equal(price("150.00")) || got.ImageURL != "/img/screen.png" {
		t.Errorf("updated product = %+v", got)
	}
	if got.ID != id || got.TenantID != 1 {
		t.Errorf("update changed identity: id=%d tenant=%d", got.ID, got.TenantID)
	}

	if ok, err := c.Update(99, 1, ProductInput{Name: "x", Price: price("1"), Quantity: 1}); err != nil || ok {
		t.Errorf("Update(missing id) = %v, %v, want false", ok, err)
	}
}

func TestDelete_IdNotReused(t *testing.T) {
	c := newCatalog(t)
	id, err := c.Add(1, ProductInput{Name: "Cable", Price: price("3.50"), Quantity: 40})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ok, err := c.Delete(id, 1)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !ok {
		t.Fatal("Delete() = false, want true")
	}
	if got, err := c.Find(id, 1); err != nil || got != nil {
		t.Errorf("Find() after delete = %v, %v, want nil", got, err)
	}

	next, err := c.Add(1, ProductInput{Name: "Cable v2", Price: price("4.00"), Quantity: 10})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if next <= id {
		t.Errorf("id after delete = %d, want > %d", next, id)
	}
}

func TestListByTenant_MalformedRow(t *testing.T) {
	c := newCatalog(t)
	if _, err := c.Add(1, ProductInput{Name: "Mouse", Price: price("9.99"), Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	// A row with a non-numeric price aborts the read instead of being
	// silently skipped.
	if err := c.store.Append(store.Record{
		"id": "2", "name": "Broken", "price": "cheap", "quantity": "1", "tenant_id": "1",
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := c.ListByTenant(1); err == nil {
		t.Error("ListByTenant() with malformed row succeeded, want error")
	}
}

func TestListByTenant(t *testing.T) {
	c := newCatalog(t)
	names := []string{"Mouse", "Keyboard", "Screen"}
	for _, name := range names {
		if _, err := c.Add(1, ProductInput{Name: name, Price: price("10"), Quantity: 1}); err != nil {
			t.Fatalf("Add(%q) error = %v", name, err)
		}
	}
	if _, err := c.Add(2, ProductInput{Name: "Other", Price: price("10"), Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	products, err := c.ListByTenant(1)
	if err != nil {
		t.Fatalf("ListByTenant() error = %v", err)
	}
	if len(products) != len(names) {
		t.Fatalf("got %d products, want %d", len(products), len(names))
	}
	for i, p := range products {
		if p.Name != names[i] {
			t.Errorf("products[%d].Name = %q, want %q (file order)", i, p.Name, names[i])
		}
	}
}
