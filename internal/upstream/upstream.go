// Package upstream holds the HTTP plumbing shared by the provider clients: a bounded
// client, an optional local rate limiter, capped body reads and error message extraction.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// MaxResponseBodySize caps how much of a provider response is read (1 MiB).
const MaxResponseBodySize = 1 << 20

// messagePaths are tried in order when pulling a human readable message out of an error body.
var messagePaths = []string{"error_description", "error", "message"}

// Caller performs single-attempt upstream requests.
type Caller struct {
	name    string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// NewCaller builds a Caller for the named provider. A nil client gets a default one bounded
// by timeout. Each Caller owns its limiter; rps <= 0 disables rate limiting.
func NewCaller(name string, client *http.Client, timeout time.Duration, rps float64) *Caller {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	burst := 0
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = max(1, int(rps))
	}
	return &Caller{
		name:    name,
		client:  client,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do sends req once and reads the body. build receives a context bounded by the caller's
// timeout and must return the request to send. Transport failures, timeouts and read
// failures come back as network errors.
func (c *Caller) Do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, apperrors.Network(err, "Request to %s was rate limited", c.name)
	}

	req, err := build(ctx)
	if err != nil {
		return Response{}, apperrors.Internal(err, "Failed to build %s request", c.name)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return Response{}, apperrors.Network(err, "Request to %s timed out", c.name)
		}
		return Response{}, apperrors.Network(err, "Request to %s failed", c.name)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBodySize))
	if err != nil {
		return Response{}, apperrors.Network(err, "Failed to read %s response", c.name)
	}
	return Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// ErrorMessage extracts the provider's message from an error body, falling back to the status.
func ErrorMessage(body []byte, statusCode int) string {
	if gjson.ValidBytes(body) {
		for _, path := range messagePaths {
			if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
				return r.Str
			}
		}
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
