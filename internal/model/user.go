package model

import (
	"inventory-service/internal/store"
	"strconv"
	"time"
)

// UserColumns is the on-disk column order of the user store.
var UserColumns = []string{"id", "name", "email", "password_hash", "role", "created_at", "tenant_id"}

// Roles a user can hold. Admins may browse every tenant; regular users are
// confined to their own.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account linked to a tenant.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	TenantID     uint      `json:"tenant_id"`
}

// ParseUser converts a raw store record into a typed User.
func ParseUser(rec store.Record) (User, error) {
	id, err := parseID(rec["id"])
	if err != nil {
		return User{}, err
	}
	tenantID, err := parseID(rec["tenant_id"])
	if err != nil {
		return User{}, err
	}
	createdAt, err := parseTime(rec["created_at"])
	if err != nil {
		return User{}, err
	}
	role := rec["role"]
	if role == "" {
		role = RoleUser
	}
	return User{
		ID:           id,
		Name:         rec["name"],
		Email:        rec["email"],
		PasswordHash: rec["password_hash"],
		Role:         role,
		CreatedAt:    createdAt,
		TenantID:     tenantID,
	}, nil
}

// Record converts the user back into its on-disk representation.
func (u User) Record() store.Record {
	return store.Record{
		"id":            strconv.FormatUint(uint64(u.ID), 10),
		"name":          u.Name,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"role":          u.Role,
		"created_at":    u.CreatedAt.Format(time.RFC3339),
		"tenant_id":     strconv.FormatUint(uint64(u.TenantID), 10),
	}
}
