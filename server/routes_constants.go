package server

// Route path constants
const (
	// OAuth exchange. All three paths serve the same handler.
	RouteAuthCallback = "/auth/callback"
	RouteOAuth        = "/oauth"
	RouteNetlifyOAuth = "/.netlify/functions/oauth"

	// Identity Backend
	RouteXanoAuth        = "/xano-auth"
	RouteNetlifyXanoAuth = "/.netlify/functions/xano-auth"
	RouteLogin           = "/login"
	RouteValidate        = "/validate"
	RoutePermissions     = "/permissions"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
