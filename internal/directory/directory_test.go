package directory

import (
	"errors"
	"path/filepath"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/internal/store"
)

// testCost keeps bcrypt fast in tests; production uses DefaultBcryptCost.
const testCost = 4

func newDirectories(t *testing.T) (*TenantDirectory, *AccountDirectory) {
	t.Helper()
	dir := t.TempDir()
	tenants := NewTenantDirectory(store.New(filepath.Join(dir, "tenants.csv"), model.TenantColumns))
	accounts := NewAccountDirectory(store.New(filepath.Join(dir, "users.csv"), model.UserColumns), tenants, testCost)
	return tenants, accounts
}

func TestTenantDirectory_Create(t *testing.T) {
	tenants, _ := newDirectories(t)

	id, err := tenants.Create("Acme")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != 1 {
		t.Errorf("first tenant id = %d, want 1", id)
	}

	id2, err := tenants.Create("Globex")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id2 != 2 {
		t.Errorf("second tenant id = %d, want 2", id2)
	}

	if _, err := tenants.Create("ACME"); !errors.Is(err, ErrTenantExists) {
		t.Errorf("Create(duplicate name) error = %v, want ErrTenantExists", err)
	}
}

func TestTenantDirectory_FindByName(t *testing.T) {
	tenants, _ := newDirectories(t)
	if _, err := tenants.Create("Acme"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact match", "Acme", true},
		{"case-insensitive match", "aCmE", true},
		{"no match", "Initech", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tenants.FindByName(tt.query)
			if err != nil {
				t.Fatalf("FindByName() error = %v", err)
			}
			if (got != nil) != tt.found {
				t.Errorf("FindByName(%q) found = %v, want %v", tt.query, got != nil, tt.found)
			}
		})
	}
}

func TestTenantDirectory_FindByID(t *testing.T) {
	tenants, _ := newDirectories(t)
	id, err := tenants.Create("Acme")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := tenants.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got == nil || got.Name != "Acme" {
		t.Errorf("FindByID(%d) = %v, want tenant Acme", id, got)
	}

	missing, err := tenants.FindByID(99)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if missing != nil {
		t.Errorf("FindByID(99) = %v, want nil", missing)
	}
}

func TestTenantDirectory_Resolve(t *testing.T) {
	tenants, _ := newDirectories(t)

	id, err := tenants.Resolve("Acme")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if id != 1 {
		t.Errorf("Resolve(new name) = %d, want 1", id)
	}

	// Resolving again, in any case, reuses the existing tenant.
	again, err := tenants.Resolve("ACME")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if again != id {
		t.Errorf("Resolve(existing name) = %d, want %d", again, id)
	}

	all, err := tenants.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d tenants, want 1", len(all))
	}
}

func TestAccountDirectory_Create(t *testing.T) {
	tenants, accounts := newDirectories(t)

	id, err := accounts.Create("Jean", "jean@x.com", "secret12", "Acme")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id != 1 {
		t.Errorf("first account id = %d, want 1", id)
	}

	// The named company was created on the way.
	tenant, err := tenants.FindByName("Acme")
	if err != nil {
		t.Fatalf("FindByName() error = %v", err)
	}
	if tenant == nil || tenant.ID != 1 {
		t.Fatalf("tenant Acme = %v, want id 1", tenant)
	}

	user, err := accounts.FindByEmail("jean@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if user == nil {
		t.Fatal("FindByEmail() = nil after Create")
	}
	if user.Role != model.RoleUser {
		t.Errorf("role = %q, want %q", user.Role, model.RoleUser)
	}
	if user.TenantID != tenant.ID {
		t.Errorf("tenant_id = %d, want %d", user.TenantID, tenant.ID)
	}
	if user.PasswordHash == "secret12" {
		t.Error("password stored in plaintext")
	}

	if _, err := accounts.Create("Other", "jean@x.com", "secret12", "Acme"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Create(duplicate email) error = %v, want ErrEmailTaken", err)
	}
}

func TestAccountDirectory_SecondUserSameCompany(t *testing.T) {
	tenants, accounts := newDirectories(t)

	if _, err := accounts.Create("Jean", "jean@x.com", "secret12", "Acme"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := accounts.Create("Marie", "marie@x.com", "secret34", "acme"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	all, err := tenants.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d tenants, want 1 shared tenant", len(all))
	}

	marie, err := accounts.FindByEmail("marie@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if marie.ID != 2 {
		t.Errorf("second account id = %d, want 2", marie.ID)
	}
	if marie.TenantID != 1 {
		t.Errorf("second account tenant_id = %d, want 1", marie.TenantID)
	}
}

func TestVerifyPassword(t *testing.T) {
	_, accounts := newDirectories(t)
	if _, err := accounts.Create("Jean", "jean@x.com", "secret12", "Acme"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	user, err := accounts.FindByEmail("jean@x.com")
	if err != nil || user == nil {
		t.Fatalf("FindByEmail() = %v, %v", user, err)
	}

	if !VerifyPassword("secret12", user.PasswordHash) {
		t.Error("VerifyPassword(correct password) = false")
	}
	if VerifyPassword("wrong999", user.PasswordHash) {
		t.Error("VerifyPassword(wrong password) = true")
	}
}
