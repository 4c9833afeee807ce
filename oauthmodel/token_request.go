package oauthmodel

// TokenRequest is the JSON body sent to GitHub's access_token endpoint.
type TokenRequest struct {
	// ClientID identifies the OAuth App.
	// Example: "Iv1.8a61f9b3a7aba766"
	ClientID string `json:"client_id"`

	// ClientSecret is the OAuth App secret.
	// Security: Never log or expose this value
	ClientSecret string `json:"client_secret"`

	// Code is the authorization code GitHub sent to the redirect URI.
	// Usage: Exchanged once for a token, then becomes invalid
	Code string `json:"code"`
}
