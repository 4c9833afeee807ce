package server

import (
	"net/http"

	"github.com/jrsteele09/cms-oauth-proxy/respond"
)

func (s *Server) initRoutes() {
	// OAuth exchange; methods are checked by the handler so unsupported ones get a JSON 405.
	oauth := ChainMiddleware(s.errorHandler(s.formatter, s.OAuthHandler()), s.ExchangeMiddleware()...)
	for _, path := range []string{RouteAuthCallback, RouteOAuth, RouteNetlifyOAuth} {
		s.RegisterRouteHandler(path, oauth)
	}

	// Identity Backend
	backendRoutes := []struct {
		path    string
		handler handlerWithError
	}{
		{RouteLogin, s.LoginHandler()},
		{RouteValidate, s.ValidateHandler()},
		{RoutePermissions, s.PermissionsHandler()},
	}
	for _, prefix := range []string{RouteXanoAuth, RouteNetlifyXanoAuth} {
		for _, route := range backendRoutes {
			s.RegisterRouteHandler(prefix+route.path, ChainMiddleware(s.errorHandler(s.api, route.handler), s.APIMiddleware()...))
		}
	}

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.errorHandler(s.api, s.HealthHandler()), s.APIMiddleware()...))
	if s.metrics != nil && s.config.Env.MetricsEnabled {
		s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
	}

	s.RegisterRouteFunc("/", s.NotFoundHandler())
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return ChainMiddleware(s.errorHandler(s.api, func(r *http.Request) (respond.Response, error) {
		return respond.JSON(http.StatusNotFound, map[string]string{"error": "Not found"}), nil
	}), s.APIMiddleware()...)
}
