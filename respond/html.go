package respond

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"golang.org/x/oauth2"
)

//go:embed templates/*
var templateFiles embed.FS

func templateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// parseTemplate parses a template from the embedded filesystem
func parseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(templateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

// storedUser is the object the admin reads back from localStorage.
type storedUser struct {
	Token       string `json:"token"`
	BackendName string `json:"backend_name"`
}

type htmlFormatter struct {
	success    *template.Template
	failure    *template.Template
	adminURL   string
	storageKey string
	redact     Redactor
}

func newHTMLFormatter(opts Options, r Redactor) (*htmlFormatter, error) {
	success, err := parseTemplate("auth_success.html")
	if err != nil {
		return nil, fmt.Errorf("[respond New] parse success template: %w", err)
	}
	failure, err := parseTemplate("auth_error.html")
	if err != nil {
		return nil, fmt.Errorf("[respond New] parse error template: %w", err)
	}
	return &htmlFormatter{
		success:    success,
		failure:    failure,
		adminURL:   opts.AdminURL,
		storageKey: opts.StorageKey,
		redact:     r,
	}, nil
}

func (f *htmlFormatter) Success(token *oauth2.Token) Response {
	data := struct {
		StorageKey string
		User       storedUser
		AdminURL   string
	}{
		StorageKey: f.storageKey,
		User:       storedUser{Token: token.AccessToken, BackendName: Provider},
		AdminURL:   f.adminURL,
	}
	return f.render(http.StatusOK, f.success, data)
}

func (f *htmlFormatter) Failure(err error) Response {
	status, msg := f.redact.failure(err)
	data := struct {
		Message  string
		AdminURL string
	}{
		Message:  msg,
		AdminURL: f.adminURL,
	}
	return f.render(status, f.failure, data)
}

func (f *htmlFormatter) render(status int, tmpl *template.Template, data any) Response {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return JSON(http.StatusInternalServerError, errorBody{Error: "Unexpected error"})
	}
	h := http.Header{}
	h.Set("Content-Type", contentTypeHTML)
	h.Set("Cache-Control", "no-cache")
	return Response{Status: status, Header: h, Body: buf.Bytes()}
}
