package config

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"golang.org/x/oauth2/github"
)

const redactedPlaceholder = "[REDACTED]"

// GitHub holds the OAuth App credentials and endpoint settings.
type GitHub struct {
	ClientID     string `env:"GITHUB_CLIENT_ID"`
	ClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	Scope        string `env:"GITHUB_SCOPE" envDefault:"repo"`
	AllowSignup  bool   `env:"GITHUB_ALLOW_SIGNUP" envDefault:"true"`
	AuthorizeURL string `env:"GITHUB_AUTHORIZE_URL"`
	TokenURL     string `env:"GITHUB_TOKEN_URL"`

	// SiteURL plus CallbackPath forms the redirect URI unless RedirectURI is set.
	SiteURL      string `env:"SITE_URL"`
	CallbackPath string `env:"OAUTH_CALLBACK_PATH" envDefault:"/.netlify/functions/oauth"`
	RedirectURI  string `env:"OAUTH_REDIRECT_URI"`
}

func (g GitHub) GetAuthorizeURL() string {
	if g.AuthorizeURL != "" {
		return g.AuthorizeURL
	}
	return github.Endpoint.AuthURL
}

func (g GitHub) GetTokenURL() string {
	if g.TokenURL != "" {
		return g.TokenURL
	}
	return github.Endpoint.TokenURL
}

// GetRedirectURI returns the callback URL registered with the OAuth App, or "" when
// neither OAUTH_REDIRECT_URI nor SITE_URL is set.
func (g GitHub) GetRedirectURI() string {
	if g.RedirectURI != "" {
		return g.RedirectURI
	}
	if g.SiteURL == "" {
		return ""
	}
	return strings.TrimRight(g.SiteURL, "/") + g.CallbackPath
}

// ValidateAuthorize checks what the authorize redirect needs.
func (g GitHub) ValidateAuthorize() error {
	if g.ClientID == "" {
		return apperrors.Configuration("GitHub OAuth not configured: GITHUB_CLIENT_ID is not set")
	}
	if g.GetRedirectURI() == "" {
		return apperrors.Configuration("GitHub OAuth not configured: SITE_URL is not set")
	}
	return nil
}

// ValidateExchange checks what the code exchange needs.
func (g GitHub) ValidateExchange() error {
	if g.ClientID == "" || g.ClientSecret == "" {
		return apperrors.Configuration("GitHub OAuth not configured: GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET are required")
	}
	return nil
}

func (g GitHub) String() string {
	secret := ""
	if g.ClientSecret != "" {
		secret = redactedPlaceholder
	}
	return fmt.Sprintf("GitHub{ClientID: %s, ClientSecret: %s, Scope: %s, RedirectURI: %s}",
		g.ClientID, secret, g.Scope, g.GetRedirectURI())
}
