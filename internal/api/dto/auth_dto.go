package dto

// LoginRequest payload for POST /auth.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// RoleResponse reports the role claim of an active token.
type RoleResponse struct {
	Role string `json:"role"`
}

// MessageResponse is a generic status message body.
type MessageResponse struct {
	Msg string `json:"msg"`
}
