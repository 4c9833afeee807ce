package oauthmodel

import "fmt"

// ResponseMode selects how the exchange result is delivered back to the admin UI.
type ResponseMode string

const (
	// JSONResponseMode returns {"access_token","token_type"} or {"error"} as JSON.
	// Used by admin UIs that call the exchange endpoint with fetch/XHR.
	JSONResponseMode ResponseMode = "json"

	// HTMLResponseMode returns a page whose script stores the token in localStorage
	// and navigates to the admin root.
	HTMLResponseMode ResponseMode = "html"

	// RedirectResponseMode redirects the browser to the "auth done" URL with the
	// token (or error) appended as query parameters.
	// Example: /admin/#/auth/done?access_token=gho_xxx&provider=github
	RedirectResponseMode ResponseMode = "redirect"
)

// UnmarshalText lets the mode be parsed straight from the environment.
func (m *ResponseMode) UnmarshalText(text []byte) error {
	mode, err := ParseResponseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseResponseMode validates a mode name. An empty name selects JSON.
func ParseResponseMode(s string) (ResponseMode, error) {
	switch ResponseMode(s) {
	case "":
		return JSONResponseMode, nil
	case JSONResponseMode, HTMLResponseMode, RedirectResponseMode:
		return ResponseMode(s), nil
	}
	return "", fmt.Errorf("%w: %q (want json, html or redirect)", ErrInvalidResponseMode, s)
}
