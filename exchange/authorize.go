package exchange

import (
	"net/url"
	"strings"
)

// AuthorizeURL builds the provider authorize URL. Parameters are written in a fixed order
// (client_id, redirect_uri, scope, allow_signup) so the Location header is stable.
func AuthorizeURL(endpoint, clientID, redirectURI, scope string, allowSignup bool) string {
	var b strings.Builder
	b.WriteString(endpoint)
	if strings.Contains(endpoint, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("client_id=")
	b.WriteString(url.QueryEscape(clientID))
	b.WriteString("&redirect_uri=")
	b.WriteString(url.QueryEscape(redirectURI))
	b.WriteString("&scope=")
	b.WriteString(url.QueryEscape(scope))
	if allowSignup {
		b.WriteString("&allow_signup=true")
	}
	return b.String()
}
