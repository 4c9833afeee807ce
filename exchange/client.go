// Package exchange talks to GitHub's OAuth endpoints: it builds the authorize redirect and
// trades an authorization code for an access token.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/cms-oauth-proxy/internal/config"
	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/internal/metrics"
	"github.com/jrsteele09/cms-oauth-proxy/internal/upstream"
	"github.com/jrsteele09/cms-oauth-proxy/oauthmodel"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

const (
	providerName      = "github"
	operationExchange = "access_token"
	defaultTokenType  = "bearer"
)

// Client exchanges GitHub authorization codes. It is safe for concurrent use.
type Client struct {
	github    config.GitHub
	userAgent string
	caller    *upstream.Caller
	metrics   *metrics.Recorder
}

// New builds a Client. httpClient may be nil; rec may be nil to disable metrics.
func New(github config.GitHub, up config.Upstream, httpClient *http.Client, rec *metrics.Recorder) *Client {
	return &Client{
		github:    github,
		userAgent: up.UserAgent,
		caller:    upstream.NewCaller("GitHub", httpClient, up.Timeout, up.RateLimit),
		metrics:   rec,
	}
}

// AuthorizeURL returns the GitHub authorize URL for the configured OAuth App.
// No network call is made.
func (c *Client) AuthorizeURL() (string, error) {
	if err := c.github.ValidateAuthorize(); err != nil {
		return "", err
	}
	return AuthorizeURL(c.github.GetAuthorizeURL(), c.github.ClientID, c.github.GetRedirectURI(), c.github.Scope, c.github.AllowSignup), nil
}

// Exchange trades code for an access token with a single POST to the token endpoint.
// The returned token's AccessToken is exactly the provider's access_token value.
// Metrics are recorded only once a request has been attempted.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, apperrors.Input("No code provided")
	}
	if err := c.github.ValidateExchange(); err != nil {
		return nil, err
	}

	start := time.Now()
	token, err := c.exchange(ctx, code)

	outcome := "success"
	if err != nil {
		outcome = apperrors.KindOf(err).String()
	}
	c.metrics.ObserveExchange(providerName, operationExchange, outcome, time.Since(start))

	logger := zerolog.Ctx(ctx)
	if err != nil {
		e := apperrors.From(err)
		logger.Warn().Str("provider", providerName).Str("kind", e.Kind.String()).Int("upstream_status", e.UpstreamStatus).Msg("token exchange failed")
	} else {
		logger.Info().Str("provider", providerName).Str("token_type", token.TokenType).Msg("token exchange succeeded")
	}
	return token, err
}

func (c *Client) exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	payload, err := json.Marshal(oauthmodel.TokenRequest{
		ClientID:     c.github.ClientID,
		ClientSecret: c.github.ClientSecret,
		Code:         code,
	})
	if err != nil {
		return nil, apperrors.Internal(err, "Failed to encode token request")
	}

	resp, err := c.caller.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.github.GetTokenURL(), bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, apperrors.Upstream(resp.StatusCode, upstream.ErrorMessage(resp.Body, resp.StatusCode))
	}

	var tr oauthmodel.TokenResponse
	if err := json.Unmarshal(resp.Body, &tr); err != nil {
		return nil, apperrors.ResponseFormat(err, "Invalid JSON response from GitHub")
	}
	if tr.Error != "" {
		return nil, apperrors.Upstream(resp.StatusCode, tr.Message())
	}
	if tr.AccessToken == "" {
		return nil, apperrors.MissingToken()
	}

	tokenType := tr.TokenType
	if tokenType == "" {
		tokenType = defaultTokenType
	}
	token := &oauth2.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tokenType,
	}
	return token.WithExtra(map[string]any{"scope": tr.Scope}), nil
}
