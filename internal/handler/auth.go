package handler

import (
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // token expiry in responses

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/cinema-maintenance/internal/config" // app configuration
	"github.com/iliyamo/cinema-maintenance/internal/utils"  // helper functions (hashing, token issuing)
)

// adminSubject is the token subject of every admin session.  There is a
// single shared admin, not a user system.
const adminSubject = "admin"

// AuthHandler issues admin tokens against the shared admin password.
type AuthHandler struct {
	Cfg  config.Config
	hash string
}

// NewAuthHandler hashes the configured admin password once so that the
// plain value is never compared directly.
func NewAuthHandler(cfg config.Config) (*AuthHandler, error) {
	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{Cfg: cfg, hash: hash}, nil
}

// ----- DTOs -----

type sessionReq struct {
	Password string `json:"password"`
}

type sessionResp struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

// CreateSession: verify the admin password and return a short-lived token.
func (h *AuthHandler) CreateSession(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Password) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}
	if !utils.VerifyPassword(h.hash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, adminSubject, utils.RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusCreated, sessionResp{
		AccessToken: access.Token,
		ExpiresAt:   access.Exp,
		Role:        utils.RoleAdmin,
	})
}
