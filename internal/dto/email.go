package dto

// WelcomeEmailRequest triggers a templated welcome message to a visitor.
type WelcomeEmailRequest struct {
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
}
