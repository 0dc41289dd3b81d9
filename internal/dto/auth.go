package dto

// LoginRequest captures admin credential input.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the opaque key used for subsequent admin requests.
type LoginResponse struct {
	AdminAPIKey string `json:"adminApiKey"`
}
