package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/visitordesk/api/internal/assetstore"
	"github.com/visitordesk/api/internal/dto"
	"github.com/visitordesk/api/internal/entity"
	"github.com/visitordesk/api/internal/middleware"
	"github.com/visitordesk/api/internal/repository"
	"github.com/visitordesk/api/internal/service"
)

// VisitorHandler handles public visiting-card submissions.
type VisitorHandler struct {
	visitors *service.VisitorsService
}

// NewVisitorHandler constructs a VisitorHandler.
func NewVisitorHandler(visitors *service.VisitorsService) *VisitorHandler {
	return &VisitorHandler{visitors: visitors}
}

// UploadCard handles POST /visitors/upload requests.
func (h *VisitorHandler) UploadCard(c echo.Context) error {
	input, err := parseUploadForm(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	ctx := assetstore.WithRequestID(c.Request().Context(), middleware.RequestIDFromContext(c))
	visitor, created, err := h.visitors.Submit(ctx, input)
	if err != nil {
		var (
			vErr  service.ValidationError
			upErr *assetstore.UpstreamError
		)
		switch {
		case errors.As(err, &vErr):
			return Error(c, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, assetstore.ErrUploadTimeout), errors.As(err, &upErr):
			return Error(c, http.StatusBadGateway, "Image upload failed. Please try again.")
		case errors.Is(err, repository.ErrPhoneDuplicate):
			return Error(c, http.StatusConflict, "A submission for this phone number is already in progress.")
		default:
			return Error(c, http.StatusInternalServerError, "Server error during upload. Please try again.")
		}
	}

	message := "Visitor details uploaded successfully!"
	if !created {
		message = "Visitor details updated successfully!"
	}
	return Success(c, http.StatusCreated, message, toVisitorResponse(visitor))
}

// parseUploadForm reads the multipart fields. Legacy clients submit the phone
// and verification flag under their original names; the aliasing stays here so
// the core never sees them.
func parseUploadForm(c echo.Context) (service.SubmitInput, error) {
	phone := strings.TrimSpace(c.FormValue("personalPhoneNumber"))
	if phone == "" {
		phone = strings.TrimSpace(c.FormValue("mobileNumber"))
	}
	verified := c.FormValue("otpVerified")
	if verified == "" {
		verified = c.FormValue("smsVerified")
	}

	input := service.SubmitInput{
		PersonalPhoneNumber: phone,
		Name:                c.FormValue("name"),
		Email:               c.FormValue("email"),
		CompanyName:         c.FormValue("companyName"),
		CompanyPhoneNumber:  c.FormValue("companyPhoneNumber"),
		Address:             c.FormValue("address"),
		OTPVerified:         verified == "true",
		CaptureMethod:       strings.TrimSpace(c.FormValue("captureMethod")),
	}

	fileHeader, err := c.FormFile("visitingCard")
	if err != nil {
		// Leave the image empty; the workflow reports the missing payload.
		return input, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return input, fmt.Errorf("unable to open image file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		return input, fmt.Errorf("unable to read image file")
	}

	input.Image = data
	input.ImageContentType = fileHeader.Header.Get("Content-Type")
	return input, nil
}

func toVisitorResponse(v *entity.Visitor) dto.VisitorResponse {
	return dto.VisitorResponse{
		ID:                   v.ID.String(),
		PersonalPhoneNumber:  v.PersonalPhoneNumber,
		PhoneE164:            service.FormatPhoneE164(v.PersonalPhoneNumber),
		Name:                 v.Name,
		Email:                v.Email,
		CompanyName:          v.CompanyName,
		CompanyPhoneNumber:   v.CompanyPhoneNumber,
		Address:              v.Address,
		VisitingCardImageURL: v.VisitingCardImageURL,
		OTPVerified:          v.OTPVerified,
		CaptureMethod:        v.CaptureMethod,
		EmailSent:            v.EmailSent,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}
