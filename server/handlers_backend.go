package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/oauthmodel"
	"github.com/jrsteele09/cms-oauth-proxy/respond"
)

type backendCall func(r *http.Request) (json.RawMessage, error)

// backendHandler relays one Identity Backend operation, accepting only method (plus preflight).
func (s *Server) backendHandler(method string, call backendCall) handlerWithError {
	return func(r *http.Request) (respond.Response, error) {
		switch r.Method {
		case http.MethodOptions:
			return s.preflight(), nil
		case method:
		default:
			return respond.Response{}, apperrors.MethodNotAllowed()
		}

		body, err := call(r)
		if err != nil {
			return respond.Response{}, err
		}
		return respond.RawJSON(http.StatusOK, body), nil
	}
}

func (s *Server) LoginHandler() handlerWithError {
	return s.backendHandler(http.MethodPost, func(r *http.Request) (json.RawMessage, error) {
		var req oauthmodel.LoginRequest
		if r.Body != nil {
			err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodySize)).Decode(&req)
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, apperrors.Input("Invalid JSON body")
			}
		}
		return s.identity.Login(r.Context(), req.Email, req.Password)
	})
}

func (s *Server) ValidateHandler() handlerWithError {
	return s.backendHandler(http.MethodPost, s.withBearer(s.identity.Validate))
}

func (s *Server) PermissionsHandler() handlerWithError {
	return s.backendHandler(http.MethodGet, s.withBearer(s.identity.Permissions))
}

func (s *Server) withBearer(call func(ctx context.Context, userToken string) (json.RawMessage, error)) backendCall {
	return func(r *http.Request) (json.RawMessage, error) {
		return call(r.Context(), bearerToken(r))
	}
}

// bearerToken returns the token from an "Authorization: Bearer <t>" header, or "".
func bearerToken(r *http.Request) string {
	const prefix = "bearer "
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
