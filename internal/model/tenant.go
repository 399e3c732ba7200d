package model

import (
	"inventory-service/internal/store"
	"strconv"
	"time"
)

// TenantColumns is the on-disk column order of the tenant store.
var TenantColumns = []string{"id", "name", "created_at"}

// Tenant represents a company scope. Every user and product belongs to
// exactly one tenant.
type Tenant struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ParseTenant converts a raw store record into a typed Tenant.
func ParseTenant(rec store.Record) (Tenant, error) {
	id, err := parseID(rec["id"])
	if err != nil {
		return Tenant{}, err
	}
	createdAt, err := parseTime(rec["created_at"])
	if err != nil {
		return Tenant{}, err
	}
	return Tenant{
		ID:        id,
		Name:      rec["name"],
		CreatedAt: createdAt,
	}, nil
}

// Record converts the tenant back into its on-disk representation.
func (t Tenant) Record() store.Record {
	return store.Record{
		"id":         strconv.FormatUint(uint64(t.ID), 10),
		"name":       t.Name,
		"created_at": t.CreatedAt.Format(time.RFC3339),
	}
}
