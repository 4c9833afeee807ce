package server_test

import (
	"net/http"
	"net/url"
	"testing"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/server"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	withCode := url.Values{"code": {"abc"}}
	denied := url.Values{"error": {"access_denied"}}

	tests := []struct {
		name    string
		method  string
		params  url.Values
		want    server.Route
		wantErr error
	}{
		{"get without code initiates", http.MethodGet, url.Values{}, server.RouteInitiate, nil},
		{"get with code exchanges", http.MethodGet, withCode, server.RouteExchange, nil},
		{"post with code exchanges", http.MethodPost, withCode, server.RouteExchange, nil},
		{"get with provider error exchanges", http.MethodGet, denied, server.RouteExchange, nil},
		{"post without code", http.MethodPost, url.Values{}, server.RouteInvalid, apperrors.ErrInput},
		{"options", http.MethodOptions, withCode, server.RoutePreflight, nil},
		{"put", http.MethodPut, withCode, server.RouteInvalid, apperrors.ErrMethodNotAllowed},
		{"delete", http.MethodDelete, url.Values{}, server.RouteInvalid, apperrors.ErrMethodNotAllowed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := server.Classify(tc.method, tc.params)
			require.Equal(t, tc.want, got)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
