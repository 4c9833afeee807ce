package config

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
)

// Backend configures the Identity Backend (Xano workspace).
type Backend struct {
	BaseURL string `env:"XANO_BASE_URL"`
	APIKey  string `env:"XANO_API_KEY"`
}

// GetEndpointURL joins the base URL with the public API path for op.
func (b Backend) GetEndpointURL(op string) string {
	return strings.TrimRight(b.BaseURL, "/") + "/api/v1/public/" + op
}

func (b Backend) Validate() error {
	if b.BaseURL == "" {
		return apperrors.Configuration("Identity backend not configured: XANO_BASE_URL is not set")
	}
	return nil
}

func (b Backend) String() string {
	key := ""
	if b.APIKey != "" {
		key = redactedPlaceholder
	}
	return fmt.Sprintf("Backend{BaseURL: %s, APIKey: %s}", b.BaseURL, key)
}
