package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raycoarana/wiremock/pkg/extension"
	"github.com/raycoarana/wiremock/pkg/stub"
)

func newEvent() *stub.ServeEvent {
	return stub.NewServeEvent(&stub.Request{
		Method:     http.MethodGet,
		Path:       "/api/things",
		ReceivedAt: time.Now(),
	})
}

// matchingResolver attaches a stub-configured 200 response.
func matchingResolver() StubResolver {
	return ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.StubID = "stub-1"
		event.Response = &stub.ResponseDefinition{
			Status:     http.StatusOK,
			Body:       `{"ok":true}`,
			Configured: true,
		}
		return event
	})
}

// nonMatchingResolver attaches the synthesized default response.
func nonMatchingResolver() StubResolver {
	return ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.Response = stub.NotConfigured()
		return event
	})
}

type fixture struct {
	handler  *StubRequestHandler
	journal  *recordingJournal
	notifier *recordingNotifier
	renderer *staticRenderer
}

func newFixture(t *testing.T, resolver StubResolver, extensions ...extension.Extension) *fixture {
	t.Helper()

	registry, err := extension.NewRegistry(extensions...)
	require.NoError(t, err)

	f := &fixture{
		journal:  &recordingJournal{},
		notifier: &recordingNotifier{},
		renderer: &staticRenderer{
			response: &stub.ResponseDefinition{
				Status:  http.StatusNotFound,
				Headers: map[string][]string{"Content-Type": {"application/json"}},
				Body:    `{"error":"no match"}`,
			},
		},
	}
	f.handler = New(Config{
		Resolver:           resolver,
		Registry:           registry,
		Journal:            f.journal,
		Admin:              fakeAdmin{},
		NotMatchedRenderer: f.renderer,
		Notifier:           f.notifier,
	})
	return f
}

// serve drives an event through the full lifecycle the surrounding server
// framework would: handle, before-send, transmit, after-send.
func (f *fixture) serve(event *stub.ServeEvent) *stub.ServeEvent {
	resolved := f.handler.Handle(event)
	f.handler.BeforeResponseSent(resolved)
	f.handler.AfterResponseSent(resolved)
	return resolved
}

func TestHandle_MatchedEventGainsNoNonMatchSubEvent(t *testing.T) {
	f := newFixture(t, matchingResolver())

	event := f.serve(newEvent())

	assert.True(t, event.WasMatched())
	assert.Empty(t, event.SubEventsOfType(stub.SubEventNonMatch))
	assert.Equal(t, 0, f.renderer.calls)
}

func TestHandle_UnmatchedEventGainsExactlyOneNonMatchSubEvent(t *testing.T) {
	f := newFixture(t, nonMatchingResolver())

	event := f.serve(newEvent())

	assert.False(t, event.WasMatched())
	subEvents := event.SubEventsOfType(stub.SubEventNonMatch)
	require.Len(t, subEvents, 1)
	require.NotNil(t, subEvents[0].NonMatch)
	assert.Equal(t, http.StatusNotFound, subEvents[0].NonMatch.Status)
	assert.Equal(t, "application/json", subEvents[0].NonMatch.ContentType)
	assert.Equal(t, `{"error":"no match"}`, subEvents[0].NonMatch.Body)
	assert.Equal(t, 1, f.renderer.calls)
}

func TestHandle_NonMatchContentTypeAbsentWhenRendererSetsNoHeader(t *testing.T) {
	f := newFixture(t, nonMatchingResolver())
	f.renderer.response = &stub.ResponseDefinition{
		Status: http.StatusNotFound,
		Body:   "nope",
	}

	event := f.serve(newEvent())

	subEvents := event.SubEventsOfType(stub.SubEventNonMatch)
	require.Len(t, subEvents, 1)
	assert.Empty(t, subEvents[0].NonMatch.ContentType)
}

func TestJournal_ReceivedOncePerEventAfterSubEventAppend(t *testing.T) {
	f := newFixture(t, nonMatchingResolver())

	event := f.serve(newEvent())

	calls := f.journal.callsFor(event.ID)
	require.Len(t, calls, 2)
	assert.Equal(t, "received", calls[0].op)
	// The journal must observe the non-match sub-event already appended.
	assert.Equal(t, 1, calls[0].nonMatchCount)
}

func TestJournal_CompletedStrictlyAfterReceived(t *testing.T) {
	f := newFixture(t, matchingResolver())

	event := f.serve(newEvent())

	calls := f.journal.callsFor(event.ID)
	require.Len(t, calls, 2)
	assert.Equal(t, "received", calls[0].op)
	assert.Equal(t, "completed", calls[1].op)
}

func TestListeners_GlobalListenerFiresEveryPhaseEveryEvent(t *testing.T) {
	global := &spyListener{name: "audit", global: true}
	f := newFixture(t, matchingResolver(), global)

	first := f.serve(newEvent())
	second := f.serve(newEvent())

	for _, phase := range []string{"beforeMatch", "afterMatch", "afterComplete"} {
		calls := global.callsForPhase(phase)
		require.Len(t, calls, 2, "phase %s", phase)
		assert.Equal(t, first.ID, calls[0].event.ID)
		assert.Equal(t, second.ID, calls[1].event.ID)
		// Global invocations always receive empty parameters.
		for _, c := range calls {
			assert.Empty(t, c.params)
		}
	}
}

func TestListeners_DeclaredNonGlobalListenerFiresWithDeclaredParameters(t *testing.T) {
	scoped := &spyListener{name: "webhook", global: false}
	params := stub.Parameters{"url": "http://example.org/hook"}

	resolver := ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.Response = &stub.ResponseDefinition{Status: http.StatusOK, Configured: true}
		event.Listeners = []stub.ServeEventListenerDefinition{
			{Name: "webhook", Parameters: params},
		}
		return event
	})

	f := newFixture(t, resolver, scoped)
	f.serve(newEvent())

	// Declarations are attached by the resolver, so the before-match pass
	// sees none; after-match and after-complete each fire once.
	assert.Empty(t, scoped.callsForPhase("beforeMatch"))
	afterMatchCalls := scoped.callsForPhase("afterMatch")
	require.Len(t, afterMatchCalls, 1)
	assert.Equal(t, params, afterMatchCalls[0].params)
	afterCompleteCalls := scoped.callsForPhase("afterComplete")
	require.Len(t, afterCompleteCalls, 1)
	assert.Equal(t, params, afterCompleteCalls[0].params)
	assert.Zero(t, f.notifier.errorCount())
}

func TestListeners_UnregisteredNameNotifiesOncePerPhaseAndSkips(t *testing.T) {
	resolver := ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.Response = &stub.ResponseDefinition{Status: http.StatusOK, Configured: true}
		event.Listeners = []stub.ServeEventListenerDefinition{
			{Name: "ghost"},
		}
		return event
	})

	f := newFixture(t, resolver)
	f.serve(newEvent())

	// The declaration is visible in the after-match and after-complete
	// passes; each emits exactly one notification naming the listener.
	require.Equal(t, 2, f.notifier.errorCount())
	for _, msg := range f.notifier.errors {
		assert.Contains(t, msg, "ghost")
	}
}

func TestListeners_DeclarationDuplicatingGlobalListenerIsSilentlyDropped(t *testing.T) {
	global := &spyListener{name: "audit", global: true}

	resolver := ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.Response = &stub.ResponseDefinition{Status: http.StatusOK, Configured: true}
		event.Listeners = []stub.ServeEventListenerDefinition{
			{Name: "audit", Parameters: stub.Parameters{"ignored": true}},
		}
		return event
	})

	f := newFixture(t, resolver, global)
	f.serve(newEvent())

	// Covered by the global pass: one invocation per phase, no notification.
	for _, phase := range []string{"beforeMatch", "afterMatch", "afterComplete"} {
		assert.Len(t, global.callsForPhase(phase), 1, "phase %s", phase)
	}
	assert.Zero(t, f.notifier.errorCount())
}

func TestListeners_SiblingsRunWhenOneDeclarationIsUnresolved(t *testing.T) {
	scoped := &spyListener{name: "webhook", global: false}

	resolver := ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.Response = &stub.ResponseDefinition{Status: http.StatusOK, Configured: true}
		event.Listeners = []stub.ServeEventListenerDefinition{
			{Name: "ghost"},
			{Name: "webhook", Parameters: stub.Parameters{"k": "v"}},
		}
		return event
	})

	f := newFixture(t, resolver, scoped)
	f.serve(newEvent())

	assert.Len(t, scoped.callsForPhase("afterMatch"), 1)
	assert.Len(t, scoped.callsForPhase("afterComplete"), 1)
	assert.Equal(t, 2, f.notifier.errorCount())
}

func TestPostServeActions_GlobalEntryPointFiresOncePerEvent(t *testing.T) {
	first := &spyAction{name: "record"}
	second := &spyAction{name: "publish"}
	f := newFixture(t, matchingResolver(), first, second)

	f.serve(newEvent())

	assert.Len(t, first.callsForEntry("global"), 1)
	assert.Len(t, second.callsForEntry("global"), 1)
	assert.Empty(t, first.callsForEntry("scoped"))
	assert.Empty(t, second.callsForEntry("scoped"))
}

func TestPostServeActions_DeclaredActionFiresScopedEntryWithParameters(t *testing.T) {
	action := &spyAction{name: "record"}
	params := stub.Parameters{"target": "s3://bucket"}

	resolver := ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.Response = &stub.ResponseDefinition{Status: http.StatusOK, Configured: true}
		event.PostServeActions = []stub.PostServeActionDefinition{
			{Name: "record", Parameters: params},
		}
		return event
	})

	f := newFixture(t, resolver, action)
	f.serve(newEvent())

	// Global entry fires unconditionally; scoped entry fires from the
	// declaration with the declared parameters.
	assert.Len(t, action.callsForEntry("global"), 1)
	scopedCalls := action.callsForEntry("scoped")
	require.Len(t, scopedCalls, 1)
	assert.Equal(t, params, scopedCalls[0].params)
	assert.Zero(t, f.notifier.errorCount())
}

func TestPostServeActions_UnregisteredNameNotifiesOnceAndSkips(t *testing.T) {
	action := &spyAction{name: "record"}

	resolver := ResolverFunc(func(event *stub.ServeEvent) *stub.ServeEvent {
		event.Response = &stub.ResponseDefinition{Status: http.StatusOK, Configured: true}
		event.PostServeActions = []stub.PostServeActionDefinition{
			{Name: "missing"},
			{Name: "record", Parameters: stub.Parameters{"k": "v"}},
		}
		return event
	})

	f := newFixture(t, resolver, action)
	f.serve(newEvent())

	require.Equal(t, 1, f.notifier.errorCount())
	assert.Contains(t, f.notifier.errors[0], "missing")
	// The sibling declaration still runs.
	assert.Len(t, action.callsForEntry("scoped"), 1)
}

func TestLogRequests_ReturnsNegationOfDisableFlag(t *testing.T) {
	tests := []struct {
		name     string
		disabled bool
		want     bool
	}{
		{name: "logging enabled", disabled: false, want: true},
		{name: "logging disabled", disabled: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := extension.NewRegistry()
			require.NoError(t, err)
			h := New(Config{
				Resolver:              matchingResolver(),
				Registry:              registry,
				Journal:               &recordingJournal{},
				Admin:                 fakeAdmin{},
				NotMatchedRenderer:    &staticRenderer{},
				DisableRequestLogging: tt.disabled,
			})
			assert.Equal(t, tt.want, h.LogRequests())
		})
	}
}

// Scenario: a request matched by a stub returning 200 flows through the
// whole lifecycle untouched, with the journal observing received then
// completed and every registered action firing once.
func TestScenario_MatchedRequest(t *testing.T) {
	action := &spyAction{name: "record"}
	f := newFixture(t, matchingResolver(), action)

	event := f.serve(newEvent())

	require.True(t, event.WasMatched())
	assert.Equal(t, http.StatusOK, event.Response.Status)
	assert.Empty(t, event.SubEventsOfType(stub.SubEventNonMatch))

	calls := f.journal.callsFor(event.ID)
	require.Len(t, calls, 2)
	assert.Equal(t, "received", calls[0].op)
	assert.Equal(t, "completed", calls[1].op)

	assert.Len(t, action.callsForEntry("global"), 1)
}

// Scenario: an unmatched request gains exactly one non-match sub-event
// carrying the renderer's literal output.
func TestScenario_UnmatchedRequest(t *testing.T) {
	f := newFixture(t, nonMatchingResolver())

	event := f.serve(newEvent())

	subEvents := event.SubEventsOfType(stub.SubEventNonMatch)
	require.Len(t, subEvents, 1)
	assert.Equal(t, &stub.NonMatchData{
		Status:      404,
		ContentType: "application/json",
		Body:        `{"error":"no match"}`,
	}, subEvents[0].NonMatch)
}

func TestHandle_ConcurrentEventsAreIndependent(t *testing.T) {
	global := &spyListener{name: "audit", global: true}
	f := newFixture(t, matchingResolver(), global)

	const n = 20
	done := make(chan *stub.ServeEvent, n)
	for i := 0; i < n; i++ {
		go func() {
			done <- f.serve(newEvent())
		}()
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		event := <-done
		require.Len(t, f.journal.callsFor(event.ID), 2)
		seen[event.ID.String()] = true
	}
	assert.Len(t, seen, n)
	assert.Len(t, global.callsForPhase("afterComplete"), n)
}
