package dto

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// AuthResponse is returned from login and refresh. Tokens travel in cookies
// only; the body carries just the resolved user.
type AuthResponse struct {
	User UserResponse `json:"user"`
}
