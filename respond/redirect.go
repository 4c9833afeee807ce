package respond

import (
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

type redirectFormatter struct {
	target string
	redact Redactor
}

func (f redirectFormatter) Success(token *oauth2.Token) Response {
	return Redirect(appendParams(f.target, "access_token", token.AccessToken))
}

func (f redirectFormatter) Failure(err error) Response {
	_, msg := f.redact.failure(err)
	return Redirect(appendParams(f.target, "error", msg))
}

// appendParams adds key=value&provider=github to target, which may already carry a query
// or a hash route such as /admin/#/auth/done.
func appendParams(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + key + "=" + url.QueryEscape(value) + "&provider=" + Provider
}
