package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/cms-oauth-proxy/backend"
	"github.com/jrsteele09/cms-oauth-proxy/exchange"
	"github.com/jrsteele09/cms-oauth-proxy/internal/config"
	"github.com/jrsteele09/cms-oauth-proxy/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Bootstrap builds the server with its upstream clients from cfg. The clients share one
// http.Client; per call timeouts come from cfg.Upstream.
func Bootstrap(cfg *config.Config) (*Server, error) {
	var rec *metrics.Recorder
	if cfg.Env.MetricsEnabled {
		rec = metrics.New()
	}

	httpClient := &http.Client{Timeout: cfg.Upstream.Timeout}
	github := exchange.New(cfg.GitHub, cfg.Upstream, httpClient, rec)
	identity := backend.New(cfg.Backend, cfg.Upstream, httpClient, rec)

	if err := cfg.GitHub.ValidateExchange(); err != nil {
		log.Warn().Str("github", cfg.GitHub.String()).Msg("GitHub OAuth is not fully configured; exchanges will fail")
	}
	if err := cfg.Backend.Validate(); err != nil {
		log.Warn().Msg("Identity backend is not configured; /xano-auth routes will fail")
	}

	s, err := New(cfg, github, identity, rec)
	if err != nil {
		return nil, fmt.Errorf("[Server Bootstrap] %w", err)
	}
	return s, nil
}
