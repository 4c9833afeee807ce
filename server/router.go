package server

import (
	"net/http"
	"net/url"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
)

// Route is the branch an OAuth request is dispatched to.
type Route int

const (
	RouteInvalid Route = iota
	RouteInitiate
	RouteExchange
	RoutePreflight
)

func (r Route) String() string {
	switch r {
	case RouteInitiate:
		return "initiate"
	case RouteExchange:
		return "exchange"
	case RoutePreflight:
		return "preflight"
	default:
		return "invalid"
	}
}

// Classify decides how an OAuth request is handled. params holds the query string merged
// with any form or JSON body fields. A callback carrying GitHub's error parameter goes to
// the exchange branch so the denial is reported in the configured format.
func Classify(method string, params url.Values) (Route, error) {
	callback := params.Get("code") != "" || params.Get("error") != ""

	switch method {
	case http.MethodOptions:
		return RoutePreflight, nil
	case http.MethodGet:
		if callback {
			return RouteExchange, nil
		}
		return RouteInitiate, nil
	case http.MethodPost:
		if callback {
			return RouteExchange, nil
		}
		return RouteInvalid, apperrors.Input("No code provided")
	default:
		return RouteInvalid, apperrors.MethodNotAllowed()
	}
}
