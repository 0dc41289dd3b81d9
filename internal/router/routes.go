package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitordesk/api/internal/config"
	"github.com/visitordesk/api/internal/handler"
	middlewarepkg "github.com/visitordesk/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Visitors *handler.VisitorHandler
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	Email    *handler.EmailHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/visitors/upload", handlers.Visitors.UploadCard, middlewarepkg.UploadRateLimiter(cfg.RateLimitUpload))
	e.POST("/send-welcome-email", handlers.Email.SendWelcome)

	e.POST("/admin/login", handlers.Auth.AdminLogin)

	admin := e.Group("/admin", middlewarepkg.AdminAPIKey(cfg.AdminAPIKey))
	admin.GET("/visitors", handlers.Admin.List)
	admin.PUT("/visitors/:id", handlers.Admin.Update)
	admin.DELETE("/visitors/:id", handlers.Admin.Delete)
}
