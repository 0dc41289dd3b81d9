package dto

import "time"

// VisitorResponse is the projection returned for a persisted visitor record.
type VisitorResponse struct {
	ID                   string    `json:"id"`
	PersonalPhoneNumber  string    `json:"personalPhoneNumber"`
	PhoneE164            string    `json:"phoneE164,omitempty"`
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

// UpdateVisitorRequest overwrites the mutable fields of an existing record.
type UpdateVisitorRequest struct {
	Name                string `json:"name"`
	PersonalPhoneNumber string `json:"personalPhoneNumber"`
	Email               string `json:"email"`
	CompanyName         string `json:"companyName"`
	CompanyPhoneNumber  string `json:"companyPhoneNumber"`
	Address             string `json:"address"`
	OTPVerified         bool   `json:"otpVerified"`
}
