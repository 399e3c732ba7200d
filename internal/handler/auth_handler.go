package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-service/internal/directory"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"
)

// MinPasswordLength is the shortest password registration accepts.
const MinPasswordLength = 8

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	accounts *directory.AccountDirectory
	tenants  *directory.TenantDirectory
	jwt      *jwtutil.JWTUtil
}

// NewAuthHandler creates an AuthHandler over the given directories.
func NewAuthHandler(accounts *directory.AccountDirectory, tenants *directory.TenantDirectory, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{accounts: accounts, tenants: tenants, jwt: jwt}
}

// Register creates a new account and, when needed, its company. All
// validation happens before any store is touched.
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
		CompanyName     string `json:"company_name"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" || req.Email == "" || req.CompanyName == "" {
		log.Error("Incomplete registration data", zap.String("email", req.Email))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and company_name are required"})
	}

	if len(req.Password) < MinPasswordLength {
		log.Warn("Password too short", zap.String("email", req.Email))
		prometheus.RecordAuthError("password_too_short")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}

	if req.Password != req.PasswordConfirm {
		log.Warn("Password confirmation mismatch", zap.String("email", req.Email))
		prometheus.RecordAuthError("password_mismatch")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password confirmation does not match"})
	}

	defer prometheus.TrackStoreOperation("append")(time.Now())
	id, err := h.accounts.Create(req.Name, req.Email, req.Password, req.CompanyName)
	if errors.Is(err, directory.ErrEmailTaken) {
		log.Warn("Email already registered", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}
	if err != nil {
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("User registered",
		zap.Uint("user_id", id),
		zap.String("email", req.Email),
		zap.String("company", req.CompanyName))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user": map[string]interface{}{
			"id":    id,
			"email": req.Email,
		},
	})
}

// Login verifies credentials and issues a token scoped to the user's
// tenant.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackStoreOperation("read")(time.Now())
	user, err := h.accounts.FindByEmail(req.Email)
	if err != nil {
		log.Error("Failed to look up user", zap.Error(err))
		prometheus.RecordAuthError("store_error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if user == nil {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if !directory.VerifyPassword(req.Password, user.PasswordHash) {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	var tenantName string
	if tenant, err := h.tenants.FindByID(user.TenantID); err == nil && tenant != nil {
		tenantName = tenant.Name
	}

	token, err := h.jwt.GenerateToken(user.Email, user.ID, user.TenantID, tenantName, user.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Uint("tenant_id", user.TenantID),
		zap.String("tenant_name", tenantName),
		zap.String("role", user.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"tenant": map[string]interface{}{
			"id":   user.TenantID,
			"name": tenantName,
		},
	})
}

// Logout acknowledges the logout. Tokens are stateless; the client simply
// discards its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	logger.FromContext(c).Info("User logged out")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
