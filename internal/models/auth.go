package models

// swagger:model LoginRequest
type LoginRequest struct {
	Password string `json:"password" validate:"required" example:"secret"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
