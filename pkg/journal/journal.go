package journal

import (
	"github.com/google/uuid"

	"github.com/raycoarana/wiremock/pkg/stub"
)

// Journal records the lifecycle of serve events. The pipeline guarantees
// that RequestReceived strictly precedes ServeCompleted for any one event;
// any concurrency discipline beyond that per-event ordering belongs to the
// implementation.
type Journal interface {
	// RequestReceived records that the event's response is about to be
	// transmitted. Called after matching and after any non-match sub-event
	// has been appended, so the journal observes the complete event.
	RequestReceived(event *stub.ServeEvent)

	// ServeCompleted records that the event's response has been
	// transmitted.
	ServeCompleted(event *stub.ServeEvent)
}

// Filter defines criteria for querying journaled serve events. Zero-value
// fields match everything.
type Filter struct {
	// Method filters by HTTP method.
	Method string

	// Path filters by URL path prefix.
	Path string

	// OnlyMatched keeps only events resolved to a stub-configured response.
	OnlyMatched bool

	// OnlyUnmatched keeps only events that fell through to the synthesized
	// default response.
	OnlyUnmatched bool

	// Limit caps the number of returned events; 0 means no cap.
	Limit int
}

// Store extends Journal with the verification queries the admin surface and
// extensions use.
type Store interface {
	Journal

	// Get retrieves a journaled event by id. Returns nil if not found.
	Get(id uuid.UUID) *stub.ServeEvent

	// List returns journaled events, newest first, optionally filtered.
	List(filter *Filter) []*stub.ServeEvent

	// Count returns the number of journaled events.
	Count() int

	// Reset removes all journaled events.
	Reset()
}
