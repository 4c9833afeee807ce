package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/cms-oauth-proxy/internal/config"
	"github.com/jrsteele09/cms-oauth-proxy/server"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"ENV":              "TEST",
		"GITHUB_CLIENT_ID": "abc123",
		"SITE_URL":         "https://example.com",
	})
	require.NoError(t, err)

	s, err := server.Bootstrap(cfg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/oauth", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
