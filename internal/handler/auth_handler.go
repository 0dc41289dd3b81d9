package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/visitordesk/api/internal/config"
	"github.com/visitordesk/api/internal/dto"
)

// AuthHandler exposes the admin login endpoint. Credentials are static and
// configured at startup; a successful login hands back the opaque API key the
// admin surface expects in the admin-api-key header.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// AdminLogin handles POST /admin/login requests.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if req.Username == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "Username and password are required.")
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.cfg.AdminUsername)) == 1
	if !usernameOK || !passwordMatches(h.cfg.AdminPassword, req.Password) {
		return Error(c, http.StatusUnauthorized, "Invalid credentials.")
	}

	return Success(c, http.StatusOK, "Admin login successful!", dto.LoginResponse{AdminAPIKey: h.cfg.AdminAPIKey})
}

// passwordMatches accepts either a bcrypt hash or a plaintext secret in the
// configuration.
func passwordMatches(configured, provided string) bool {
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(provided)) == 1
}
