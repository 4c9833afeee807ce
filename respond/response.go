// Package respond turns exchange outcomes into HTTP responses in one of the delivery
// conventions understood by the CMS admin: JSON, an HTML page with script, or a redirect.
package respond

import (
	"encoding/json"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
)

// Response is a fully built outbound response. It is written exactly once.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Write sends the response. Headers already set on w by middleware take precedence.
func (r Response) Write(w http.ResponseWriter) {
	for k, values := range r.Header {
		if _, ok := w.Header()[k]; ok {
			continue
		}
		w.Header()[k] = values
	}
	w.WriteHeader(r.Status)
	if len(r.Body) > 0 {
		_, _ = w.Write(r.Body)
	}
}

// JSON encodes v with the headers every API response carries.
func JSON(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"Unexpected error"}`)
	}
	return RawJSON(status, body)
}

// RawJSON relays an already encoded JSON document.
func RawJSON(status int, body []byte) Response {
	h := http.Header{}
	h.Set("Content-Type", contentTypeJSON)
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Cache-Control", "no-cache")
	return Response{Status: status, Header: h, Body: body}
}

// Redirect is a 302 with an empty body.
func Redirect(location string) Response {
	h := http.Header{}
	h.Set("Location", location)
	h.Set("Cache-Control", "no-cache")
	return Response{Status: http.StatusFound, Header: h}
}

// Preflight answers a CORS OPTIONS request with an empty 200.
func Preflight(methods, headers string) Response {
	h := http.Header{}
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", methods)
	h.Set("Access-Control-Allow-Headers", headers)
	return Response{Status: http.StatusOK, Header: h}
}
