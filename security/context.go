// Package security implements the OWS request gate: it decides, per
// inbound request under the protected prefix, whether the request may
// reach its backend and under which delegated identity.
package security

import (
	"net/http"
	"net/url"
)

// RequestContext is the explicit view of an inbound request the gate
// inspects and extends: path, query, headers, and a mutable environment
// merged from the validated token.
type RequestContext struct {
	Path    string
	Query   url.Values
	Header  http.Header
	Environ map[string]string
	// Workdir scopes delegated credentials fetched for this request.
	Workdir string
}

// NewRequestContext builds a RequestContext from an HTTP request.
func NewRequestContext(r *http.Request, workdir string) *RequestContext {
	return &RequestContext{
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Header:  r.Header,
		Environ: make(map[string]string),
		Workdir: workdir,
	}
}
