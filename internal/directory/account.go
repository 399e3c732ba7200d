package directory

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inventory-service/internal/model"
	"inventory-service/internal/store"
)

// DefaultBcryptCost is deliberately above bcrypt.DefaultCost; the password
// hash is the only secret this system stores.
const DefaultBcryptCost = 14

// ErrEmailTaken is returned when an account with the same email already
// exists. Emails are compared exactly, as stored.
var ErrEmailTaken = errors.New("email already registered")

// AccountDirectory manages the user store. New accounts are linked to a
// tenant resolved (or created) by name through the tenant directory.
type AccountDirectory struct {
	store   *store.Store
	tenants *TenantDirectory
	cost    int
}

// NewAccountDirectory creates a directory over the given user store. A cost
// of 0 selects DefaultBcryptCost.
func NewAccountDirectory(s *store.Store, tenants *TenantDirectory, cost int) *AccountDirectory {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &AccountDirectory{store: s, tenants: tenants, cost: cost}
}

// FindByEmail returns the first account with the given email, or nil when
// there is none.
func (d *AccountDirectory) FindByEmail(email string) (*model.User, error) {
	recs, err := d.store.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if rec["email"] == email {
			u, err := model.ParseUser(rec)
			if err != nil {
				return nil, err
			}
			return &u, nil
		}
	}
	return nil, nil
}

// Create registers a new account with role "user". The password is hashed
// with bcrypt before anything touches the store; the duplicate-email check
// and the append happen under one store lock, so no second account with the
// same email can slip in between.
func (d *AccountDirectory) Create(name, email, password, tenantName string) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return 0, err
	}

	var id uint
	err = d.store.Exclusive(func(v store.View) error {
		recs, err := v.ReadAll()
		if err != nil {
			return err
		}
		for _, rec := range recs {
			if rec["email"] == email {
				return ErrEmailTaken
			}
		}
		tenantID, err := d.tenants.Resolve(tenantName)
		if err != nil {
			return err
		}
		id, err = v.NextID()
		if err != nil {
			return err
		}
		u := model.User{
			ID:           id,
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         model.RoleUser,
			CreatedAt:    time.Now().UTC(),
			TenantID:     tenantID,
		}
		return v.Append(u.Record())
	})
	return id, err
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// Comparison goes through bcrypt itself, never plain equality.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
