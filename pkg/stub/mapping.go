package stub

import (
	"fmt"
	"net/http"
	"strings"
)

// RequestSpec is the request side of a stub mapping: the method and path an
// incoming request must carry for the mapping to apply.
type RequestSpec struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

// Mapping pairs a request spec with the response to serve and the extension
// invocations to run for requests it applies to.
type Mapping struct {
	// ID uniquely identifies the mapping.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Name is an optional human-readable name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Request is the request spec this mapping applies to.
	Request RequestSpec `json:"request" yaml:"request"`

	// Response is the response to serve.
	Response ResponseDefinition `json:"response" yaml:"response"`

	// PostServeActions are per-stub action invocations to trigger after the
	// response has been sent.
	PostServeActions []PostServeActionDefinition `json:"postServeActions,omitempty" yaml:"postServeActions,omitempty"`

	// Listeners are per-stub listener invocations to trigger at the serve
	// lifecycle points.
	Listeners []ServeEventListenerDefinition `json:"serveEventListeners,omitempty" yaml:"serveEventListeners,omitempty"`
}

// Validate checks that the mapping is well formed.
func (m *Mapping) Validate() error {
	if m.Request.Method == "" {
		return fmt.Errorf("mapping %q: request method is required", m.ID)
	}
	if !strings.HasPrefix(m.Request.Path, "/") {
		return fmt.Errorf("mapping %q: request path must start with /", m.ID)
	}
	// Status 0 is allowed and defaults to 200 when the response is built.
	if m.Response.Status != 0 && (m.Response.Status < 100 || m.Response.Status > 599) {
		return fmt.Errorf("mapping %q: response status %d out of range", m.ID, m.Response.Status)
	}
	return nil
}

// Applies reports whether the mapping covers the given request snapshot.
// Method comparison is case-insensitive per HTTP convention; path comparison
// is exact.
func (m *Mapping) Applies(req *Request) bool {
	if req == nil {
		return false
	}
	return strings.EqualFold(m.Request.Method, req.Method) && m.Request.Path == req.Path
}

// ConfiguredResponse returns a copy of the mapping's response definition
// marked as stub-configured.
func (m *Mapping) ConfiguredResponse() *ResponseDefinition {
	resp := m.Response
	resp.Configured = true
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	return &resp
}
