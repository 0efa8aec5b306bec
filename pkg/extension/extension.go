package extension

import "github.com/raycoarana/wiremock/pkg/stub"

// Extension is the common surface of all pluggable extensions. Name must be
// unique within the registry the extension is added to.
type Extension interface {
	Name() string
}

// Admin is the handle extensions receive for inspecting server state while
// they run. It exposes the request journal's verification queries.
type Admin interface {
	// ServeEvents returns the journaled serve events, newest first.
	ServeEvents() []*stub.ServeEvent

	// ResetRequests clears the request journal.
	ResetRequests()
}

// PostServeAction runs after a response has been transmitted. The global and
// per-stub entry points are independent: an action may do real work in
// either, both, or neither and still be registered and referenced the other
// way. Embed BasePostServeAction to get no-op defaults.
type PostServeAction interface {
	Extension

	// GlobalAction runs for every serve event, regardless of what the
	// matched stub declared.
	GlobalAction(event *stub.ServeEvent, admin Admin)

	// Action runs for serve events whose matched stub declared this action
	// by name, with the declared parameters.
	Action(event *stub.ServeEvent, admin Admin, parameters stub.Parameters)
}

// BasePostServeAction provides no-op implementations of both action entry
// points. Embed it and override the one that applies.
type BasePostServeAction struct{}

// GlobalAction does nothing.
func (BasePostServeAction) GlobalAction(*stub.ServeEvent, Admin) {}

// Action does nothing.
func (BasePostServeAction) Action(*stub.ServeEvent, Admin, stub.Parameters) {}

// ServeEventListener observes a serve event at the three pipeline lifecycle
// points. A listener reporting AppliesGlobally() true runs at every point for
// every event with empty parameters; otherwise it runs only when a stub
// declares it by name, with the declared parameters. Embed BaseListener to
// get no-op defaults.
type ServeEventListener interface {
	Extension

	// AppliesGlobally reports whether the listener runs for every serve
	// event without needing a per-stub declaration.
	AppliesGlobally() bool

	// BeforeMatch runs before the event is resolved against stubs.
	BeforeMatch(event *stub.ServeEvent, parameters stub.Parameters)

	// AfterMatch runs once the event has been resolved.
	AfterMatch(event *stub.ServeEvent, parameters stub.Parameters)

	// AfterComplete runs after the response has been transmitted and the
	// journal updated.
	AfterComplete(event *stub.ServeEvent, parameters stub.Parameters)
}

// BaseListener provides a non-global listener with no-op hooks. Embed it and
// override what applies.
type BaseListener struct{}

// AppliesGlobally reports false.
func (BaseListener) AppliesGlobally() bool { return false }

// BeforeMatch does nothing.
func (BaseListener) BeforeMatch(*stub.ServeEvent, stub.Parameters) {}

// AfterMatch does nothing.
func (BaseListener) AfterMatch(*stub.ServeEvent, stub.Parameters) {}

// AfterComplete does nothing.
func (BaseListener) AfterComplete(*stub.ServeEvent, stub.Parameters) {}
