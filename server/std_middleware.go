package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/respond"
	"github.com/rs/zerolog"
)

const headerRequestID = "X-Request-Id"

type middleware = func(http.HandlerFunc) http.HandlerFunc

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...middleware) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// ExchangeMiddleware guards the OAuth routes; panics are reported in RESPONSE_MODE.
func (s *Server) ExchangeMiddleware(mw ...middleware) []middleware {
	chainedMiddleWare := []middleware{
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.CorsMiddleware,
		s.RecoverMiddleware(s.formatter),
	}
	return append(chainedMiddleWare, mw...)
}

// APIMiddleware guards the JSON routes.
func (s *Server) APIMiddleware(mw ...middleware) []middleware {
	chainedMiddleWare := []middleware{
		s.RequestIDMiddleware,
		s.LoggingMiddleware,
		s.CorsMiddleware,
		s.RecoverMiddleware(s.api),
	}
	return append(chainedMiddleWare, mw...)
}

// RequestIDMiddleware tags the request with an id and stores a sub-logger carrying it in
// the context, retrievable with zerolog.Ctx. Fields already on the context logger are kept.
func (s *Server) RequestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		logger := zerolog.Ctx(r.Context()).With().Str("request_id", id).Logger()
		next(w, r.WithContext(logger.WithContext(r.Context())))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)

		if s.env == "DEV" {
			logRoute(r.Method, fmt.Sprintf("%s %s%d%s", r.URL.Path, statusColour(rec.status), rec.status, ResetColor))
			return
		}
		zerolog.Ctx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

// RecoverMiddleware turns a panic into a 500 rendered by f.
func (s *Server) RecoverMiddleware(f respond.Formatter) middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					zerolog.Ctx(r.Context()).Error().
						Str("panic", fmt.Sprint(p)).
						Bytes("stack", debug.Stack()).
						Msg("recovered from panic")
					f.Failure(apperrors.Internal(fmt.Errorf("panic: %v", p), "Unexpected error")).Write(w)
				}
			}()
			next(w, r)
		}
	}
}

func (s *Server) CorsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// No Origin header = same-origin request, no CORS headers needed
		if origin == "" {
			next(w, r)
			return
		}

		allowedOrigins := s.config.Cors.GetAllowedOrigins()
		isAllowed := allowedOrigins.IsAllowedOrigin(origin)
		isWildcard := allowedOrigins.IsAllowedOrigin("*")

		switch {
		case isAllowed:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		case isWildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
			// Don't set Allow-Credentials with wildcard
		default:
			// Origin not allowed: strip whatever the response would grant, browser will block
			next(corsBlockedWriter{w}, r)
			return
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		next(w, r)
	}
}

// corsBlockedWriter drops CORS grants from a response sent to a disallowed origin.
type corsBlockedWriter struct {
	http.ResponseWriter
}

func (w corsBlockedWriter) strip() {
	w.Header().Del("Access-Control-Allow-Origin")
	w.Header().Del("Access-Control-Allow-Credentials")
}

func (w corsBlockedWriter) WriteHeader(status int) {
	w.strip()
	w.ResponseWriter.WriteHeader(status)
}

func (w corsBlockedWriter) Write(b []byte) (int, error) {
	w.strip()
	return w.ResponseWriter.Write(b)
}
