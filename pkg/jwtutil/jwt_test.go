package jwtutil

import (
	"testing"

	"inventory-service/internal/model"
	"inventory-service/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	j := NewJWTUtil(&config.JWTConfig{SigningKey: "unit-test-key", ExpirationHours: 1})

	token, err := j.GenerateToken("jean@x.com", 7, 3, "Acme", model.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := j.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Email != "jean@x.com" || claims.UserID != 7 {
		t.Errorf("claims identity = %s/%d, want jean@x.com/7", claims.Email, claims.UserID)
	}
	if claims.TenantID != 3 || claims.TenantName != "Acme" {
		t.Errorf("claims tenant = %d/%s, want 3/Acme", claims.TenantID, claims.TenantName)
	}
	if claims.Role != model.RoleUser {
		t.Errorf("claims role = %q, want %q", claims.Role, model.RoleUser)
	}
}

func TestValidateToken_WrongKey(t *testing.T) {
	issuer := NewJWTUtil(&config.JWTConfig{SigningKey: "key-a", ExpirationHours: 1})
	verifier := NewJWTUtil(&config.JWTConfig{SigningKey: "key-b", ExpirationHours: 1})

	token, err := issuer.GenerateToken("jean@x.com", 1, 1, "Acme", model.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("ValidateToken() with wrong key succeeded, want error")
	}
}
