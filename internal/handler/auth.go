package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greattime/events-api/internal/config"
	"github.com/greattime/events-api/internal/model"
	"github.com/greattime/events-api/internal/repository"
	"github.com/greattime/events-api/internal/utils"
)

// AdminStore is the slice of the admin repository used by auth endpoints.
type AdminStore interface {
	Create(ctx context.Context, email, passwordHash string, name *string) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Admins AdminStore
}

func NewAuthHandler(cfg config.Config, admins AdminStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Admins: admins}
}

// ----- DTOs -----

type registerReq struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminPart struct {
	ID    uint64  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type authResp struct {
	Admin adminPart `json:"admin"`
	Token string    `json:"token"`
}

// Register creates an admin account and returns a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Password must be at least 6 characters"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.Create(ctx, req.Email, hash, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Admin with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	token, _, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, admin.Email, h.Cfg.TokenTTLDay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusCreated, authResp{
		Admin: adminPart{ID: admin.ID, Email: admin.Email, Name: admin.Name},
		Token: token,
	})
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password produce the same message so callers cannot probe which
// accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admin, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	if !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}

	token, _, err := utils.NewAccessToken(h.Cfg.JWTSecret, admin.ID, admin.Email, h.Cfg.TokenTTLDay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, authResp{
		Admin: adminPart{ID: admin.ID, Email: admin.Email, Name: admin.Name},
		Token: token,
	})
}
