package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/model"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
)

const scopeKey = "scope"

// Scope is the authenticated caller's context: who they are, which tenant
// their operations are confined to, and their role. It is built once per
// request by the auth middleware and passed explicitly into the core; no
// handler reaches for ambient session state.
type Scope struct {
	UserID   uint
	Email    string
	TenantID uint
	Role     string
}

// IsAdmin reports whether the caller holds the admin role.
func (s Scope) IsAdmin() bool {
	return s.Role == model.RoleAdmin
}

// ScopeFromContext returns the Scope placed in the context by Auth.
func ScopeFromContext(c echo.Context) (Scope, bool) {
	scope, ok := c.Get(scopeKey).(Scope)
	return scope, ok
}

// Auth validates the bearer token and stores the caller's Scope in the
// context.
func Auth(jwtUtil *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			// Validate the token
			claims, err := jwtUtil.ValidateToken(parts[1])
			if err != nil {
				log.Error("Invalid JWT token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			c.Set(scopeKey, Scope{
				UserID:   claims.UserID,
				Email:    claims.Email,
				TenantID: claims.TenantID,
				Role:     claims.Role,
			})

			log.Debug("Request authenticated",
				zap.Uint("user_id", claims.UserID),
				zap.Uint("tenant_id", claims.TenantID),
				zap.String("role", claims.Role))

			return next(c)
		}
	}
}

// RequireAdmin rejects callers without the admin role. It must run after
// Auth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		scope, ok := ScopeFromContext(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		if !scope.IsAdmin() {
			logger.FromContext(c).Warn("Admin route denied",
				zap.Uint("user_id", scope.UserID),
				zap.String("role", scope.Role))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
		}
		return next(c)
	}
}
