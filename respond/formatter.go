package respond

import (
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/cms-oauth-proxy/internal/errors"
	"github.com/jrsteele09/cms-oauth-proxy/oauthmodel"
	"golang.org/x/oauth2"
)

// Provider is the backend name reported to the admin alongside a token.
const Provider = "github"

const redactedPlaceholder = "[REDACTED]"

// Formatter renders exchange outcomes. Implementations are pure: the same input always
// yields a byte-identical Response.
type Formatter interface {
	Success(token *oauth2.Token) Response
	Failure(err error) Response
}

type Options struct {
	// Secrets are replaced by [REDACTED] wherever they appear in an error message.
	Secrets     []string
	AdminURL    string
	AuthDoneURL string
	StorageKey  string
}

// New returns the Formatter for mode.
func New(mode oauthmodel.ResponseMode, opts Options) (Formatter, error) {
	r := NewRedactor(opts.Secrets)
	switch mode {
	case oauthmodel.JSONResponseMode, "":
		return jsonFormatter{redact: r}, nil
	case oauthmodel.HTMLResponseMode:
		return newHTMLFormatter(opts, r)
	case oauthmodel.RedirectResponseMode:
		return redirectFormatter{target: opts.AuthDoneURL, redact: r}, nil
	default:
		return nil, fmt.Errorf("[respond New] %w: %q", oauthmodel.ErrInvalidResponseMode, mode)
	}
}

// Redactor masks configured secrets in caller-visible text.
type Redactor struct {
	replacer *strings.Replacer
}

func NewRedactor(secrets []string) Redactor {
	var pairs []string
	for _, s := range secrets {
		if s != "" {
			pairs = append(pairs, s, redactedPlaceholder)
		}
	}
	return Redactor{replacer: strings.NewReplacer(pairs...)}
}

func (r Redactor) Apply(s string) string {
	if r.replacer == nil {
		return s
	}
	return r.replacer.Replace(s)
}

// failure extracts the caller-safe status and message from err.
func (r Redactor) failure(err error) (int, string) {
	e := apperrors.From(err)
	if e == nil {
		e = apperrors.Internal(nil, "Unexpected error")
	}
	return e.Status(), r.Apply(e.Message)
}

type jsonFormatter struct {
	redact Redactor
}

type tokenBody struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (f jsonFormatter) Success(token *oauth2.Token) Response {
	return JSON(http.StatusOK, tokenBody{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

func (f jsonFormatter) Failure(err error) Response {
	status, msg := f.redact.failure(err)
	return JSON(status, errorBody{Error: msg})
}

// NewJSON is the formatter used for request-level errors outside the exchange flow.
func NewJSON(secrets []string) Formatter {
	return jsonFormatter{redact: NewRedactor(secrets)}
}
