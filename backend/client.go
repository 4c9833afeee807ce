// Package backend proxies login, token validation and permission lookups to the Identity
// Backend (a Xano workspace). Upstream JSON is relayed verbatim.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/cms-oauth-proxy/internal/config"
	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/internal/metrics"
	"github.com/jrsteele09/cms-oauth-proxy/internal/upstream"
	"github.com/jrsteele09/cms-oauth-proxy/oauthmodel"
	"github.com/rs/zerolog"
)

const providerName = "xano"

// Operations exposed under /api/v1/public/.
const (
	OpLogin       = "login"
	OpValidate    = "validate"
	OpPermissions = "permissions"
)

type Client struct {
	cfg       config.Backend
	userAgent string
	caller    *upstream.Caller
	metrics   *metrics.Recorder
	now       func() time.Time
}

// New builds a Client. httpClient may be nil; rec may be nil to disable metrics.
func New(cfg config.Backend, up config.Upstream, httpClient *http.Client, rec *metrics.Recorder) *Client {
	return &Client{
		cfg:       cfg,
		userAgent: up.UserAgent,
		caller:    upstream.NewCaller("Identity backend", httpClient, up.Timeout, up.RateLimit),
		metrics:   rec,
		now:       time.Now,
	}
}

// Login forwards email/password credentials, authenticated with the workspace API key when set.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	if email == "" || password == "" {
		return nil, apperrors.Input("Email and password required")
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return c.call(ctx, OpLogin, c.cfg.APIKey, oauthmodel.LoginRequest{Email: email, Password: password})
}

// Validate asks the backend whether userToken is still valid.
func (c *Client) Validate(ctx context.Context, userToken string) (json.RawMessage, error) {
	return c.tokenCall(ctx, OpValidate, userToken)
}

// Permissions fetches the permission set for userToken.
func (c *Client) Permissions(ctx context.Context, userToken string) (json.RawMessage, error) {
	return c.tokenCall(ctx, OpPermissions, userToken)
}

// tokenCall authorizes with the user's token, falling back to the workspace API key.
func (c *Client) tokenCall(ctx context.Context, op, userToken string) (json.RawMessage, error) {
	bearer := userToken
	if bearer == "" {
		bearer = c.cfg.APIKey
	}
	if bearer == "" {
		return nil, apperrors.Unauthorized("No token provided")
	}
	if userToken != "" && tokenExpired(userToken, c.now()) {
		return nil, apperrors.Unauthorized("Token expired")
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return c.call(ctx, op, bearer, oauthmodel.TokenPayload{Token: userToken})
}

func (c *Client) call(ctx context.Context, op, bearer string, payload any) (json.RawMessage, error) {
	start := time.Now()
	body, err := c.post(ctx, op, bearer, payload)

	outcome := "success"
	if err != nil {
		e := apperrors.From(err)
		outcome = e.Kind.String()
		zerolog.Ctx(ctx).Warn().
			Str("provider", providerName).
			Str("operation", op).
			Str("kind", outcome).
			Int("upstream_status", e.UpstreamStatus).
			Msg("identity backend call failed")
	}
	c.metrics.ObserveExchange(providerName, op, outcome, time.Since(start))
	return body, err
}

func (c *Client) post(ctx context.Context, op, bearer string, payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Internal(err, "Failed to encode %s request", op)
	}

	endpoint := c.cfg.GetEndpointURL(op)
	zerolog.Ctx(ctx).Debug().Str("endpoint", endpoint).Msg("calling identity backend")

	resp, err := c.caller.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, apperrors.Upstream(resp.StatusCode, upstream.ErrorMessage(resp.Body, resp.StatusCode))
	}
	if !json.Valid(resp.Body) {
		return nil, apperrors.ResponseFormat(nil, "Invalid JSON response from identity backend")
	}
	return json.RawMessage(resp.Body), nil
}

// tokenExpired reports whether token is a JWT whose exp claim has passed. Opaque or
// encrypted tokens are left for the backend to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
