package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visitordesk/api/internal/dto"
	"github.com/visitordesk/api/internal/service"
)

// EmailHandler triggers transactional welcome emails.
type EmailHandler struct {
	emails *service.EmailService
}

// NewEmailHandler constructs an EmailHandler.
func NewEmailHandler(emails *service.EmailService) *EmailHandler {
	return &EmailHandler{emails: emails}
}

// SendWelcome handles POST /send-welcome-email requests.
func (h *EmailHandler) SendWelcome(c echo.Context) error {
	var req dto.WelcomeEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.emails.SendWelcome(c.Request().Context(), req.Email, req.CompanyName); err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "Failed to send welcome email. Please try again.")
	}

	return Success(c, http.StatusOK, "Welcome email sent successfully!", nil)
}
