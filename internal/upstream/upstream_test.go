package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/internal/upstream"
	"github.com/stretchr/testify/require"
)

func get(url string) func(ctx context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func TestCaller_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"message":"short and stout"}`))
	}))
	defer srv.Close()

	c := upstream.NewCaller("GitHub", nil, time.Second, 0)
	resp, err := c.Do(context.Background(), get(srv.URL))
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.StatusCode)
	require.False(t, resp.OK())
	require.Equal(t, "short and stout", upstream.ErrorMessage(resp.Body, resp.StatusCode))
}

func TestCaller_DoTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := upstream.NewCaller("GitHub", srv.Client(), 50*time.Millisecond, 0)
	_, err := c.Do(context.Background(), get(srv.URL))
	require.ErrorIs(t, err, apperrors.ErrNetwork)
	require.Contains(t, err.Error(), "timed out")
}

func TestCaller_DoConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := upstream.NewCaller("Identity backend", nil, time.Second, 0)
	_, err := c.Do(context.Background(), get(url))
	require.ErrorIs(t, err, apperrors.ErrNetwork)
}

func TestCaller_DoCapsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", upstream.MaxResponseBodySize+10)))
	}))
	defer srv.Close()

	c := upstream.NewCaller("GitHub", nil, time.Second, 5)
	resp, err := c.Do(context.Background(), get(srv.URL))
	require.NoError(t, err)
	require.Len(t, resp.Body, upstream.MaxResponseBodySize)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"description wins", `{"error":"bad_verification_code","error_description":"The code passed is incorrect or expired."}`, 200, "The code passed is incorrect or expired."},
		{"error only", `{"error":"Invalid credentials"}`, 401, "Invalid credentials"},
		{"message", `{"code":"ERROR_CODE_ACCESS_DENIED","message":"Access denied."}`, 403, "Access denied."},
		{"non string error", `{"error":{"code":1}}`, 500, "HTTP 500"},
		{"empty body", ``, 502, "HTTP 502"},
		{"html body", `<html>Bad Gateway</html>`, 502, "HTTP 502"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, upstream.ErrorMessage([]byte(tc.body), tc.status))
		})
	}
}

func TestCaller_RateLimitIsPerCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	github := upstream.NewCaller("GitHub", nil, 200*time.Millisecond, 1)
	identity := upstream.NewCaller("Identity backend", nil, 200*time.Millisecond, 1)

	_, err := github.Do(context.Background(), get(srv.URL))
	require.NoError(t, err)
	_, err = github.Do(context.Background(), get(srv.URL))
	require.ErrorIs(t, err, apperrors.ErrNetwork)
	require.Contains(t, err.Error(), "rate limited")

	_, err = identity.Do(context.Background(), get(srv.URL))
	require.NoError(t, err)
}
