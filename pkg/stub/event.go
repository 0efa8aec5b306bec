package stub

import (
	"time"

	"github.com/google/uuid"
)

// Request is an immutable snapshot of an incoming HTTP request, captured
// before matching so that journal queries and extensions observe the request
// as it arrived.
type Request struct {
	// Method is the HTTP method.
	Method string `json:"method"`

	// Path is the URL path.
	Path string `json:"path"`

	// QueryString is the raw query string.
	QueryString string `json:"queryString,omitempty"`

	// Headers are the request headers (multi-value).
	Headers map[string][]string `json:"headers,omitempty"`

	// Body is the request body content.
	Body string `json:"body,omitempty"`

	// ClientIP is the remote address of the client.
	ClientIP string `json:"clientIp,omitempty"`

	// ReceivedAt is when the request arrived.
	ReceivedAt time.Time `json:"receivedAt"`
}

// PostServeActionDefinition names a post-serve action a stub asks to run
// after its response has been transmitted, with the parameters to pass it.
type PostServeActionDefinition struct {
	Name       string     `json:"name" yaml:"name"`
	Parameters Parameters `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ServeEventListenerDefinition names a serve-event listener a stub asks to
// invoke at its lifecycle points, with the parameters to pass it.
type ServeEventListenerDefinition struct {
	Name       string     `json:"name" yaml:"name"`
	Parameters Parameters `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// ServeEvent is the mutable per-request record threaded through the request
// handling pipeline: created before matching, populated by the resolver, and
// read by the journal and extensions afterwards. A ServeEvent is owned by a
// single request goroutine and is not safe for concurrent mutation.
type ServeEvent struct {
	// ID uniquely identifies the event.
	ID uuid.UUID `json:"id"`

	// Request is the snapshot of the incoming request.
	Request *Request `json:"request"`

	// StubID is the identifier of the matched stub mapping, empty when the
	// request did not match.
	StubID string `json:"stubId,omitempty"`

	// Response is the resolved response definition. Nil until the matching
	// stage runs; afterwards either a stub-configured definition or the
	// synthesized not-found default.
	Response *ResponseDefinition `json:"response,omitempty"`

	// SubEvents is the append-only list of diagnostic annotations.
	SubEvents []SubEvent `json:"subEvents,omitempty"`

	// PostServeActions are the per-stub action invocations declared by the
	// matched mapping.
	PostServeActions []PostServeActionDefinition `json:"postServeActions,omitempty"`

	// Listeners are the per-stub listener invocations declared by the
	// matched mapping.
	Listeners []ServeEventListenerDefinition `json:"serveEventListeners,omitempty"`
}

// NewServeEvent creates a serve event for the given request snapshot with a
// fresh id and no resolved response.
func NewServeEvent(req *Request) *ServeEvent {
	return &ServeEvent{
		ID:      uuid.New(),
		Request: req,
	}
}

// WasMatched reports whether the event was resolved to a stub-configured
// response.
func (e *ServeEvent) WasMatched() bool {
	return e.Response.WasConfigured()
}

// AppendSubEvent appends a diagnostic annotation. Sub-events are strictly
// append-ordered; nothing removes or reorders them.
func (e *ServeEvent) AppendSubEvent(se SubEvent) {
	e.SubEvents = append(e.SubEvents, se)
}

// SubEventsOfType returns the sub-events carrying the given type tag, in
// append order.
func (e *ServeEvent) SubEventsOfType(eventType string) []SubEvent {
	var out []SubEvent
	for _, se := range e.SubEvents {
		if se.Type == eventType {
			out = append(out, se)
		}
	}
	return out
}
