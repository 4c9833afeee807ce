package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so the handler boundary can pick a status code and message.
type Kind int

const (
	KindInternal Kind = iota
	KindConfiguration
	KindInput
	KindNetwork
	KindUpstream
	KindResponseFormat
	KindMissingToken
	KindUnauthorized
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInput:
		return "input"
	case KindNetwork:
		return "network"
	case KindUpstream:
		return "upstream"
	case KindResponseFormat:
		return "response_format"
	case KindMissingToken:
		return "missing_token"
	case KindUnauthorized:
		return "unauthorized"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// Sentinels, one per kind. errors.Is(err, ErrUpstream) matches any *Error of that kind.
var (
	ErrInternal         = errors.New("internal error")
	ErrConfiguration    = errors.New("not configured")
	ErrInput            = errors.New("invalid input")
	ErrNetwork          = errors.New("network error")
	ErrUpstream         = errors.New("upstream error")
	ErrResponseFormat   = errors.New("invalid upstream response")
	ErrMissingToken     = errors.New("no access token in response")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

var sentinels = map[Kind]error{
	KindInternal:         ErrInternal,
	KindConfiguration:    ErrConfiguration,
	KindInput:            ErrInput,
	KindNetwork:          ErrNetwork,
	KindUpstream:         ErrUpstream,
	KindResponseFormat:   ErrResponseFormat,
	KindMissingToken:     ErrMissingToken,
	KindUnauthorized:     ErrUnauthorized,
	KindMethodNotAllowed: ErrMethodNotAllowed,
}

// Error is the single error type crossing the handler boundary.
// Message is safe to show to the caller; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	// UpstreamStatus is the provider's HTTP status for KindUpstream, zero otherwise.
	UpstreamStatus int
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// Status maps the kind to the HTTP status returned to the caller.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInput, KindUpstream, KindResponseFormat, KindMissingToken:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Configuration(format string, args ...any) *Error {
	return newError(KindConfiguration, nil, format, args...)
}

func Input(format string, args ...any) *Error {
	return newError(KindInput, nil, format, args...)
}

func Network(err error, format string, args ...any) *Error {
	return newError(KindNetwork, err, format, args...)
}

// Upstream records a provider rejection. status is the provider's HTTP status (0 when the
// rejection came in a 2xx error payload).
func Upstream(status int, message string) *Error {
	return &Error{Kind: KindUpstream, Message: message, UpstreamStatus: status}
}

func ResponseFormat(err error, format string, args ...any) *Error {
	return newError(KindResponseFormat, err, format, args...)
}

func MissingToken() *Error {
	return newError(KindMissingToken, nil, "No access token in response")
}

func Unauthorized(format string, args ...any) *Error {
	return newError(KindUnauthorized, nil, format, args...)
}

func MethodNotAllowed() *Error {
	return newError(KindMethodNotAllowed, nil, "Method not allowed")
}

func Internal(err error, format string, args ...any) *Error {
	return newError(KindInternal, err, format, args...)
}

// From coerces any error into an *Error. Unknown errors become KindInternal with a
// generic message so their text never reaches the caller.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err, "Unexpected error")
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	return From(err).Status()
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
