// Package directory holds the tenant and account collections built on top
// of the flat-file stores.
package directory

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"inventory-service/internal/model"
	"inventory-service/internal/store"
)

// ErrTenantExists is returned when a tenant with the same name (compared
// case-insensitively) already exists.
var ErrTenantExists = errors.New("tenant name already in use")

// TenantDirectory manages the tenant store.
type TenantDirectory struct {
	store *store.Store
}

// NewTenantDirectory creates a directory over the given tenant store.
func NewTenantDirectory(s *store.Store) *TenantDirectory {
	return &TenantDirectory{store: s}
}

// FindByName returns the first tenant whose name matches case-insensitively,
// or nil when there is none.
func (d *TenantDirectory) FindByName(name string) (*model.Tenant, error) {
	recs, err := d.store.ReadAll()
	if err != nil {
		return nil, err
	}
	return matchTenantName(recs, name)
}

// FindByID returns the tenant with the given id, or nil when there is none.
// Ids are compared in their textual form, as stored.
func (d *TenantDirectory) FindByID(id uint) (*model.Tenant, error) {
	recs, err := d.store.ReadAll()
	if err != nil {
		return nil, err
	}
	want := strconv.FormatUint(uint64(id), 10)
	for _, rec := range recs {
		if rec["id"] == want {
			t, err := model.ParseTenant(rec)
			if err != nil {
				return nil, err
			}
			return &t, nil
		}
	}
	return nil, nil
}

// Create allocates the next tenant id, appends the new tenant and returns
// its id. The name must not already be taken.
func (d *TenantDirectory) Create(name string) (uint, error) {
	var id uint
	err := d.store.Exclusive(func(v store.View) error {
		recs, err := v.ReadAll()
		if err != nil {
			return err
		}
		existing, err := matchTenantName(recs, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrTenantExists
		}
		id, err = v.NextID()
		if err != nil {
			return err
		}
		t := model.Tenant{ID: id, Name: name, CreatedAt: time.Now().UTC()}
		return v.Append(t.Record())
	})
	return id, err
}

// Resolve returns the id of the tenant with the given name, creating the
// tenant first when it does not exist yet.
func (d *TenantDirectory) Resolve(name string) (uint, error) {
	var id uint
	err := d.store.Exclusive(func(v store.View) error {
		recs, err := v.ReadAll()
		if err != nil {
			return err
		}
		existing, err := matchTenantName(recs, name)
		if err != nil {
			return err
		}
		if existing != nil {
			id = existing.ID
			return nil
		}
		id, err = v.NextID()
		if err != nil {
			return err
		}
		t := model.Tenant{ID: id, Name: name, CreatedAt: time.Now().UTC()}
		return v.Append(t.Record())
	})
	return id, err
}

// ListAll returns every tenant in file order.
func (d *TenantDirectory) ListAll() ([]model.Tenant, error) {
	recs, err := d.store.ReadAll()
	if err != nil {
		return nil, err
	}
	tenants := make([]model.Tenant, 0, len(recs))
	for _, rec := range recs {
		t, err := model.ParseTenant(rec)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, nil
}

func matchTenantName(recs []store.Record, name string) (*model.Tenant, error) {
	for _, rec := range recs {
		if strings.EqualFold(rec["name"], name) {
			t, err := model.ParseTenant(rec)
			if err != nil {
				return nil, err
			}
			return &t, nil
		}
	}
	return nil, nil
}
