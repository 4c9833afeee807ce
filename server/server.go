package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/cms-oauth-proxy/internal/config"
	"github.com/jrsteele09/cms-oauth-proxy/internal/metrics"
	"github.com/jrsteele09/cms-oauth-proxy/respond"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// TokenExchanger is the GitHub side of the proxy.
type TokenExchanger interface {
	AuthorizeURL() (string, error)
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// IdentityBackend is the Xano side of the proxy.
type IdentityBackend interface {
	Login(ctx context.Context, email, password string) (json.RawMessage, error)
	Validate(ctx context.Context, userToken string) (json.RawMessage, error)
	Permissions(ctx context.Context, userToken string) (json.RawMessage, error)
}

type Server struct {
	env       string
	mux       *http.ServeMux
	routes    []string
	config    *config.Config
	github    TokenExchanger
	identity  IdentityBackend
	formatter respond.Formatter // exchange outcomes, RESPONSE_MODE
	api       respond.Formatter // request-level and identity backend errors, always JSON
	redact    respond.Redactor
	metrics   *metrics.Recorder
}

// New wires the handlers. rec may be nil, in which case /metrics is not served.
func New(cfg *config.Config, github TokenExchanger, identity IdentityBackend, rec *metrics.Recorder) (*Server, error) {
	secrets := cfg.Secrets()
	formatter, err := respond.New(cfg.Delivery.Mode, respond.Options{
		Secrets:     secrets,
		AdminURL:    cfg.Delivery.AdminURL,
		AuthDoneURL: cfg.Delivery.AuthDoneURL,
		StorageKey:  cfg.Delivery.HTMLStorageKey,
	})
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create response formatter: %w", err)
	}

	s := &Server{
		env:       cfg.Env.GetEnv(),
		mux:       http.NewServeMux(),
		config:    cfg,
		github:    github,
		identity:  identity,
		formatter: formatter,
		api:       respond.NewJSON(secrets),
		redact:    respond.NewRedactor(secrets),
		metrics:   rec,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("*", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
