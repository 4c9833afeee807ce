package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/respond"
	"github.com/rs/zerolog"
)

// maxRequestBodySize bounds form and JSON bodies read from the admin.
const maxRequestBodySize = 64 << 10

// OAuthHandler serves the authorize redirect and the code exchange on a single path.
func (s *Server) OAuthHandler() handlerWithError {
	return func(r *http.Request) (respond.Response, error) {
		params, err := callbackParameters(r)
		if err != nil {
			return respond.Response{}, err
		}

		route, err := Classify(r.Method, params)
		zerolog.Ctx(r.Context()).Debug().Str("route", route.String()).Msg("classified oauth request")
		if err != nil {
			return respond.Response{}, err
		}

		switch route {
		case RoutePreflight:
			return s.preflight(), nil
		case RouteInitiate:
			return s.initiate()
		default:
			return s.exchange(r, params)
		}
	}
}

func (s *Server) initiate() (respond.Response, error) {
	location, err := s.github.AuthorizeURL()
	if err != nil {
		return respond.Response{}, err
	}
	return respond.Redirect(location), nil
}

func (s *Server) exchange(r *http.Request, params url.Values) (respond.Response, error) {
	if providerErr := params.Get("error"); providerErr != "" {
		msg := params.Get("error_description")
		if msg == "" {
			msg = providerErr
		}
		return respond.Response{}, apperrors.Upstream(0, msg)
	}

	token, err := s.github.Exchange(r.Context(), params.Get("code"))
	if err != nil {
		return respond.Response{}, err
	}
	return s.formatter.Success(token), nil
}

type callbackBody struct {
	Code             string `json:"code"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// callbackParameters merges the query string with a form or JSON body.
func callbackParameters(r *http.Request) (url.Values, error) {
	params := r.URL.Query()
	if r.Method != http.MethodPost || r.Body == nil {
		return params, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	body := http.MaxBytesReader(nil, r.Body, maxRequestBodySize)

	switch mediaType {
	case "application/json":
		var cb callbackBody
		if err := json.NewDecoder(body).Decode(&cb); err != nil && !errors.Is(err, io.EOF) {
			return nil, apperrors.Input("Invalid JSON body")
		}
		setIfEmpty(params, "code", cb.Code)
		setIfEmpty(params, "error", cb.Error)
		setIfEmpty(params, "error_description", cb.ErrorDescription)
	case "application/x-www-form-urlencoded":
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, apperrors.Input("Invalid form body")
		}
		form, err := url.ParseQuery(string(data))
		if err != nil {
			return nil, apperrors.Input("Invalid form body")
		}
		for _, key := range []string{"code", "error", "error_description"} {
			setIfEmpty(params, key, form.Get(key))
		}
	}
	return params, nil
}

func setIfEmpty(params url.Values, key, value string) {
	if value != "" && params.Get(key) == "" {
		params.Set(key, value)
	}
}
