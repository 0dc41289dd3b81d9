package entity

import (
	"time"

	"github.com/google/uuid"
)

// Capture methods accepted for a visiting-card submission.
const (
	CaptureMethodCamera = "camera"
	CaptureMethodUpload = "upload"
)

// Visitor represents a visiting-card submission stored in the register.
// JSON field names follow the public API contract (camelCase).
type Visitor struct {
	ID                   uuid.UUID `json:"id"`
	PersonalPhoneNumber  string    `json:"personalPhoneNumber"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	CompanyName          string    `json:"companyName"`
	CompanyPhoneNumber   string    `json:"companyPhoneNumber"`
	Address              string    `json:"address"`
	VisitingCardImageURL string    `json:"visitingCardImageUrl"`
	OTPVerified          bool      `json:"otpVerified"`
	CaptureMethod        string    `json:"captureMethod"`
	EmailSent            bool      `json:"emailSent"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
