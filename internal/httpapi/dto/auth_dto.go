package dto

// Data Transfer Objects for sign-up and token exchange.
// Presence checks live in the service so failures carry the contract's
// field-keyed messages (MISSING_USERNAME and friends), not binding noise.

// SignUpRequest: payload for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email" binding:"omitempty,email,max=254"`
	Username string `json:"username" binding:"max=150"`
}

// SignUpResponse echoes the submitted identity fields
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// TokenRequest: payload for POST /auth/token
type TokenRequest struct {
	Username         string `json:"username" binding:"max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"max=255"`
}

// TokenResponse carries the signed access token
type TokenResponse struct {
	Token string `json:"token"`
}
