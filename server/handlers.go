package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/respond"
	"github.com/rs/zerolog"
)

// handlerWithError builds the response for a request or fails; it never writes to the
// client itself.
type handlerWithError func(r *http.Request) (respond.Response, error)

// errorHandler is the single boundary where handler errors become responses. Every request
// passing through it gets exactly one response.
func (s *Server) errorHandler(f respond.Formatter, h handlerWithError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h(r)
		if err != nil {
			s.logFailure(r, err)
			// Request-level errors are not exchange outcomes and are always JSON.
			if apperrors.KindOf(err) == apperrors.KindMethodNotAllowed {
				resp = s.api.Failure(err)
			} else {
				resp = f.Failure(err)
			}
		}
		resp.Write(w)
	}
}

func (s *Server) logFailure(r *http.Request, err error) {
	e := apperrors.From(err)
	logger := zerolog.Ctx(r.Context())

	event := logger.Warn()
	if e.Status() >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("kind", e.Kind.String()).
		Int("status", e.Status()).
		Str("path", r.URL.Path).
		Msg(s.redact.Apply(e.Message))
}

func (s *Server) preflight() respond.Response {
	return respond.Preflight(s.config.Cors.GetAllowedMethods(), s.config.Cors.GetAllowedHeaders())
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() handlerWithError {
	return func(r *http.Request) (respond.Response, error) {
		return respond.JSON(http.StatusOK, map[string]string{"status": "ok"}), nil
	}
}
