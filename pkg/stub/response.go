package stub

import (
	"net/http"
	"strings"
)

// ResponseDefinition describes the response to send for a serve event.
// Configured distinguishes a response taken from a stub mapping from the
// synthesized default used when nothing matched; a definition is exactly one
// of the two.
type ResponseDefinition struct {
	// Status is the HTTP status code.
	Status int `json:"status" yaml:"status"`

	// Headers are the response headers (multi-value).
	Headers map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Body is the response body content.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Configured is true when the definition came from a stub mapping,
	// false for the synthesized not-found default.
	Configured bool `json:"configured" yaml:"-"`
}

// NotConfigured returns the synthesized default definition used when no stub
// matched the request.
func NotConfigured() *ResponseDefinition {
	return &ResponseDefinition{
		Status:     http.StatusNotFound,
		Configured: false,
	}
}

// WasConfigured reports whether the definition came from a stub mapping.
// A nil definition counts as not configured.
func (r *ResponseDefinition) WasConfigured() bool {
	return r != nil && r.Configured
}

// FirstContentType returns the first Content-Type header value and true,
// or "" and false when no content-type header is present.
func (r *ResponseDefinition) FirstContentType() (string, bool) {
	if r == nil {
		return "", false
	}
	for name, values := range r.Headers {
		if strings.EqualFold(name, "Content-Type") && len(values) > 0 {
			return values[0], true
		}
	}
	return "", false
}
