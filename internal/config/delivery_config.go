package config

import "github.com/jrsteele09/cms-oauth-proxy/oauthmodel"

// Delivery controls how exchange results are returned to the admin UI.
type Delivery struct {
	Mode           oauthmodel.ResponseMode `env:"RESPONSE_MODE" envDefault:"json"`
	AdminURL       string                  `env:"ADMIN_URL" envDefault:"/admin/"`
	AuthDoneURL    string                  `env:"AUTH_DONE_URL" envDefault:"/admin/#/auth/done"`
	HTMLStorageKey string                  `env:"HTML_STORAGE_KEY" envDefault:"decap-cms-user"`
}
