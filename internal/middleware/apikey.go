package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HeaderAdminAPIKey carries the opaque key issued by the admin login endpoint.
const HeaderAdminAPIKey = "admin-api-key"

// AdminAPIKey enforces the static admin key on the admin surface: a missing
// header is unauthorized, a mismatching one is forbidden.
func AdminAPIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := c.Request().Header.Get(HeaderAdminAPIKey)
			if provided == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Access Denied: No API Key provided."})
			}
			if key == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Access Denied: Invalid API Key."})
			}
			return next(c)
		}
	}
}
