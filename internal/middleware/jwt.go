package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/greattime/events-api/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the admin identity into the request context. Handlers behind
// it can read `c.Get("admin_id")` and `c.Get("admin_email")`. A missing
// header, bad signature or expired token all yield 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			payload, err := utils.VerifyToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("admin_id", payload.AdminID)
			c.Set("admin_email", payload.Email)
			return next(c)
		}
	}
}
