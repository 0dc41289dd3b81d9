package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/visitordesk/api/internal/dto"
	"github.com/visitordesk/api/internal/repository"
	"github.com/visitordesk/api/internal/service"
)

// AdminHandler exposes the authenticated visitor management endpoints.
type AdminHandler struct {
	visitors *service.VisitorsService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(visitors *service.VisitorsService) *AdminHandler {
	return &AdminHandler{visitors: visitors}
}

// List handles GET /admin/visitors requests, newest first.
func (h *AdminHandler) List(c echo.Context) error {
	records, err := h.visitors.List(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "Failed to retrieve visitor data.")
	}

	responses := make([]dto.VisitorResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toVisitorResponse(&records[i]))
	}
	return Success(c, http.StatusOK, "Successfully retrieved all visitor data.", responses)
}

// Update handles PUT /admin/visitors/:id requests.
func (h *AdminHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid visitor id")
	}

	var req dto.UpdateVisitorRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	visitor, err := h.visitors.Update(c.Request().Context(), id, repository.UpdateVisitorInput{
		Name:                req.Name,
		PersonalPhoneNumber: req.PersonalPhoneNumber,
		Email:               req.Email,
		CompanyName:         req.CompanyName,
		CompanyPhoneNumber:  req.CompanyPhoneNumber,
		Address:             req.Address,
		OTPVerified:         req.OTPVerified,
	})
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			return Error(c, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, repository.ErrVisitorNotFound):
			return Error(c, http.StatusNotFound, "Visitor not found.")
		case errors.Is(err, repository.ErrPhoneDuplicate):
			return Error(c, http.StatusConflict, "Another visitor already uses this phone number.")
		default:
			return Error(c, http.StatusInternalServerError, "Server error during update. Please try again.")
		}
	}

	return Success(c, http.StatusOK, "Visitor updated successfully!", toVisitorResponse(visitor))
}

// Delete handles DELETE /admin/visitors/:id requests. A malformed id cannot
// match any record, so it reports not found rather than a parse error.
func (h *AdminHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusNotFound, "Visitor not found.")
	}

	visitor, err := h.visitors.Delete(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVisitorNotFound) {
			return Error(c, http.StatusNotFound, "Visitor not found.")
		}
		return Error(c, http.StatusInternalServerError, "Server error during deletion. Please try again.")
	}

	return Success(c, http.StatusOK, "Visitor deleted successfully!", toVisitorResponse(visitor))
}
