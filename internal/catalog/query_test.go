package catalog

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"inventory-service/internal/model"
)

func products(names ...string) []model.Product {
	out := make([]model.Product, len(names))
	for i, name := range names {
		out[i] = model.Product{ID: uint(i + 1), Name: name, Price: decimal.New(1, 0)}
	}
	return out
}

func TestSearch(t *testing.T) {
	list := products("Laptop Pro", "Wireless Mouse", "USB Cable", "laptop stand")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case-insensitive substring", "lap", []string{"Laptop Pro", "laptop stand"}},
		{"uppercase query", "MOUSE", []string{"Wireless Mouse"}},
		{"empty query returns all", "", []string{"Laptop Pro", "Wireless Mouse", "USB Cable", "laptop stand"}},
		{"no match", "printer", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(list, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d products, want %d", tt.query, len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Name != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	list := make([]model.Product, 25)
	for i := range list {
		list[i] = model.Product{ID: uint(i + 1), Name: fmt.Sprintf("p%02d", i+1)}
	}

	tests := []struct {
		name      string
		count     int
		page      int
		pageSize  int
		wantLen   int
		wantPages int
		wantFirst uint
	}{
		{"first page", 25, 1, 10, 10, 3, 1},
		{"middle page", 25, 2, 10, 10, 3, 11},
		{"last partial page", 25, 3, 10, 5, 3, 21},
		{"page past the end", 25, 4, 10, 0, 3, 0},
		{"empty list still one page", 0, 1, 10, 0, 1, 0},
		{"page below one clamped", 25, 0, 10, 10, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, totalPages := Paginate(list[:tt.count], tt.page, tt.pageSize)
			if totalPages != tt.wantPages {
				t.Errorf("totalPages = %d, want %d", totalPages, tt.wantPages)
			}
			if len(window) != tt.wantLen {
				t.Fatalf("window length = %d, want %d", len(window), tt.wantLen)
			}
			if tt.wantLen > 0 && window[0].ID != tt.wantFirst {
				t.Errorf("window[0].ID = %d, want %d", window[0].ID, tt.wantFirst)
			}
		})
	}
}

func TestTenantStats(t *testing.T) {
	c := newCatalog(t)
	add := func(name, priceStr string, qty int) {
		t.Helper()
		if _, err := c.Add(1, ProductInput{Name: name, Price: price(priceStr), Quantity: qty}); err != nil {
			t.Fatalf("Add(%q) error = %v", name, err)
		}
	}
	add("Mouse", "9.99", 100)
	add("Keyboard", "50.00", 2)
	if _, err := c.Add(2, ProductInput{Name: "Other", Price: price("1000"), Quantity: 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	stats, err := c.TenantStats(1)
	if err != nil {
		t.Fatalf("TenantStats() error = %v", err)
	}
	if stats.ProductCount != 2 {
		t.Errorf("ProductCount = %d, want 2", stats.ProductCount)
	}
	if stats.TotalUnits != 102 {
		t.Errorf("TotalUnits = %d, want 102", stats.TotalUnits)
	}
	if want := decimal.RequireFromString("1099.00"); !stats.StockValue.Equal(want) {
		t.Errorf("StockValue = %s, want %s", stats.StockValue, want)
	}
	if stats.LowStock != 1 {
		t.Errorf("LowStock = %d, want 1", stats.LowStock)
	}
}
