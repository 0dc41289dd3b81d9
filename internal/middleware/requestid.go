package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderRequestID names the trace header accepted from callers and echoed on
// every response. The same identifier travels to the media host on card uploads.
const HeaderRequestID = "X-Request-ID"

// Caller-supplied identifiers beyond this length are discarded and re-minted.
const maxRequestIDLength = 64

// RequestID adopts the caller's trace identifier or mints a fresh one, stores
// it on the context for the logging middleware, and echoes it back.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(HeaderRequestID)
			if rid == "" || len(rid) > maxRequestIDLength {
				rid = uuid.NewString()
			}

			c.Set(ContextKeyRequestID, rid)
			c.Response().Header().Set(HeaderRequestID, rid)

			return next(c)
		}
	}
}

// RequestIDFromContext returns the identifier stored by RequestID, or "".
func RequestIDFromContext(c echo.Context) string {
	rid, _ := c.Get(ContextKeyRequestID).(string)
	return rid
}
