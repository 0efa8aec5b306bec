package handler

import (
	"fmt"

	"github.com/raycoarana/wiremock/pkg/extension"
	"github.com/raycoarana/wiremock/pkg/journal"
	"github.com/raycoarana/wiremock/pkg/logging"
	"github.com/raycoarana/wiremock/pkg/stub"
)

// StubResolver resolves a serve event against the configured stubs. It
// attaches a stub-configured response and the stub's declared extension
// invocations when something applies, or the synthesized default response
// when nothing does.
type StubResolver interface {
	Resolve(event *stub.ServeEvent) *stub.ServeEvent
}

// ResolverFunc adapts a function to the StubResolver interface.
type ResolverFunc func(event *stub.ServeEvent) *stub.ServeEvent

// Resolve calls f.
func (f ResolverFunc) Resolve(event *stub.ServeEvent) *stub.ServeEvent {
	return f(event)
}

// NotMatchedRenderer builds the diagnostic response for an event whose
// resolved response was not stub-configured.
type NotMatchedRenderer interface {
	Render(admin extension.Admin, event *stub.ServeEvent, pathParams map[string]string) *stub.ResponseDefinition
}

// Config carries the collaborators a StubRequestHandler is built from. All
// collaborators are explicit; the handler keeps no global state.
type Config struct {
	// Resolver resolves events against the configured stubs. Required.
	Resolver StubResolver

	// Registry holds the post-serve actions and serve-event listeners.
	// Required (may be empty).
	Registry *extension.Registry

	// Journal records event receipt and completion. Required.
	Journal journal.Journal

	// Admin is the handle passed to extensions and the renderer. Required.
	Admin extension.Admin

	// NotMatchedRenderer builds the non-match diagnostic response. Required.
	NotMatchedRenderer NotMatchedRenderer

	// Notifier receives error notifications for unresolved extension names.
	// Optional; defaults to a no-op.
	Notifier logging.Notifier

	// DisableRequestLogging suppresses request logging for this handler
	// without affecting any other pipeline step.
	DisableRequestLogging bool
}

// StubRequestHandler orchestrates a fixed sequence of extension-hook
// invocations around stub resolution, records the event in the journal, and
// triggers post-processing extensions. It holds no per-request state and no
// locks, so one instance serves concurrent requests as long as each request
// carries its own ServeEvent.
type StubRequestHandler struct {
	resolver        StubResolver
	registry        *extension.Registry
	journal         journal.Journal
	admin           extension.Admin
	notMatched      NotMatchedRenderer
	notifier        logging.Notifier
	loggingDisabled bool
}

// New creates a StubRequestHandler from the given collaborators.
func New(cfg Config) *StubRequestHandler {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = logging.NopNotifier{}
	}
	return &StubRequestHandler{
		resolver:        cfg.Resolver,
		registry:        cfg.Registry,
		journal:         cfg.Journal,
		admin:           cfg.Admin,
		notMatched:      cfg.NotMatchedRenderer,
		notifier:        notifier,
		loggingDisabled: cfg.DisableRequestLogging,
	}
}

// Handle resolves the initial serve event against the stubs, firing the
// before-match and after-match listener hooks around the resolution. The
// returned event carries the response the caller should transmit.
func (h *StubRequestHandler) Handle(initialEvent *stub.ServeEvent) *stub.ServeEvent {
	h.triggerListeners(initialEvent, beforeMatch)
	event := h.resolver.Resolve(initialEvent)
	h.triggerListeners(event, afterMatch)
	return event
}

// LogRequests reports whether requests served by this handler should be
// logged.
func (h *StubRequestHandler) LogRequests() bool {
	return !h.loggingDisabled
}

// BeforeResponseSent runs just before the response is transmitted: it
// appends the non-match diagnostic sub-event when the response was not
// stub-configured, then records the event as received so the journal
// observes the sub-event.
func (h *StubRequestHandler) BeforeResponseSent(event *stub.ServeEvent) {
	if !event.Response.WasConfigured() {
		h.appendNonMatchSubEvent(event)
	}

	h.journal.RequestReceived(event)
}

// AfterResponseSent runs once the response has been transmitted: it records
// completion in the journal, then triggers post-serve actions and the
// after-complete listener hooks.
func (h *StubRequestHandler) AfterResponseSent(event *stub.ServeEvent) {
	h.journal.ServeCompleted(event)

	h.triggerPostServeActions(event)

	h.triggerListeners(event, afterComplete)
}

// appendNonMatchSubEvent asks the renderer for the diagnostic response and
// attaches it to the event as a single non-match sub-event. The first
// content-type header value is recorded, or left empty when the renderer set
// no content-type header.
func (h *StubRequestHandler) appendNonMatchSubEvent(event *stub.ServeEvent) {
	diagnostic := h.notMatched.Render(h.admin, event, nil)

	contentType, _ := diagnostic.FirstContentType()
	event.AppendSubEvent(stub.NewNonMatchSubEvent(diagnostic.Status, contentType, diagnostic.Body))
}

// triggerPostServeActions fires every registered action's global entry point
// unconditionally, then the scoped entry point of each action the stub
// declared. An unresolved declared name yields one error notification and is
// skipped; the remaining declarations still run.
func (h *StubRequestHandler) triggerPostServeActions(event *stub.ServeEvent) {
	for _, action := range h.registry.PostServeActions() {
		action.GlobalAction(event, h.admin)
	}

	for _, def := range event.PostServeActions {
		action, ok := h.registry.PostServeAction(def.Name)
		if !ok {
			h.notifier.Error(fmt.Sprintf("No extension was found named %q", def.Name))
			continue
		}
		action.Action(event, h.admin, def.Parameters)
	}
}

// listenerPhase selects which listener hook a triggerListeners pass invokes.
type listenerPhase func(l extension.ServeEventListener, event *stub.ServeEvent, parameters stub.Parameters)

func beforeMatch(l extension.ServeEventListener, event *stub.ServeEvent, parameters stub.Parameters) {
	l.BeforeMatch(event, parameters)
}

func afterMatch(l extension.ServeEventListener, event *stub.ServeEvent, parameters stub.Parameters) {
	l.AfterMatch(event, parameters)
}

func afterComplete(l extension.ServeEventListener, event *stub.ServeEvent, parameters stub.Parameters) {
	l.AfterComplete(event, parameters)
}

// triggerListeners runs one listener phase: first every globally-applying
// registered listener with empty parameters, then each listener the stub
// declared by name with the declared parameters. A declaration naming a
// globally-applying listener is dropped without notification since the
// global pass already covered it; a declaration naming an unregistered
// listener yields one error notification and is skipped.
func (h *StubRequestHandler) triggerListeners(event *stub.ServeEvent, phase listenerPhase) {
	for _, listener := range h.registry.Listeners() {
		if listener.AppliesGlobally() {
			phase(listener, event, stub.EmptyParameters())
		}
	}

	for _, def := range event.Listeners {
		listener, ok := h.registry.Listener(def.Name)
		if !ok {
			h.notifier.Error(fmt.Sprintf("No per-stub listener was found named %q", def.Name))
			continue
		}
		if listener.AppliesGlobally() {
			continue
		}
		phase(listener, event, def.Parameters)
	}
}
