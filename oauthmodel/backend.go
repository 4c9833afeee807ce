package oauthmodel

// LoginRequest is posted to the Identity Backend login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPayload is posted to the Identity Backend validate and permissions endpoints.
type TokenPayload struct {
	Token string `json:"token,omitempty"`
}
