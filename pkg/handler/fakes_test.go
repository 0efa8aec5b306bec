package handler

import (
	"sync"

	"github.com/google/uuid"

	"github.com/raycoarana/wiremock/pkg/extension"
	"github.com/raycoarana/wiremock/pkg/stub"
)

// recordingJournal records the order of journal calls per event.
type recordingJournal struct {
	mu    sync.Mutex
	calls []journalCall
}

type journalCall struct {
	op    string // "received" or "completed"
	id    uuid.UUID
	event *stub.ServeEvent
	// non-match sub-event count observed at call time
	nonMatchCount int
}

func (j *recordingJournal) record(op string, event *stub.ServeEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, journalCall{
		op:            op,
		id:            event.ID,
		event:         event,
		nonMatchCount: len(event.SubEventsOfType(stub.SubEventNonMatch)),
	})
}

func (j *recordingJournal) RequestReceived(event *stub.ServeEvent) { j.record("received", event) }
func (j *recordingJournal) ServeCompleted(event *stub.ServeEvent)  { j.record("completed", event) }

func (j *recordingJournal) callsFor(id uuid.UUID) []journalCall {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []journalCall
	for _, c := range j.calls {
		if c.id == id {
			out = append(out, c)
		}
	}
	return out
}

// recordingNotifier captures notifications.
type recordingNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) errorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}

// fakeAdmin is a stand-in admin handle.
type fakeAdmin struct{}

func (fakeAdmin) ServeEvents() []*stub.ServeEvent { return nil }
func (fakeAdmin) ResetRequests()                  {}

// staticRenderer returns a fixed diagnostic response and counts calls.
type staticRenderer struct {
	response *stub.ResponseDefinition
	calls    int
}

func (r *staticRenderer) Render(_ extension.Admin, _ *stub.ServeEvent, _ map[string]string) *stub.ResponseDefinition {
	r.calls++
	return r.response
}

// listenerCall captures one listener hook invocation.
type listenerCall struct {
	phase  string
	event  *stub.ServeEvent
	params stub.Parameters
}

// spyListener records every hook invocation.
type spyListener struct {
	name   string
	global bool
	mu     sync.Mutex
	calls  []listenerCall
}

func (l *spyListener) Name() string          { return l.name }
func (l *spyListener) AppliesGlobally() bool { return l.global }

func (l *spyListener) record(phase string, event *stub.ServeEvent, params stub.Parameters) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, listenerCall{phase: phase, event: event, params: params})
}

func (l *spyListener) BeforeMatch(event *stub.ServeEvent, params stub.Parameters) {
	l.record("beforeMatch", event, params)
}

func (l *spyListener) AfterMatch(event *stub.ServeEvent, params stub.Parameters) {
	l.record("afterMatch", event, params)
}

func (l *spyListener) AfterComplete(event *stub.ServeEvent, params stub.Parameters) {
	l.record("afterComplete", event, params)
}

func (l *spyListener) callsForPhase(phase string) []listenerCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []listenerCall
	for _, c := range l.calls {
		if c.phase == phase {
			out = append(out, c)
		}
	}
	return out
}

// actionCall captures one post-serve action invocation.
type actionCall struct {
	entry  string // "global" or "scoped"
	event  *stub.ServeEvent
	params stub.Parameters
}

// spyAction records both action entry points.
type spyAction struct {
	name  string
	mu    sync.Mutex
	calls []actionCall
}

func (a *spyAction) Name() string { return a.name }

func (a *spyAction) GlobalAction(event *stub.ServeEvent, _ extension.Admin) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, actionCall{entry: "global", event: event})
}

func (a *spyAction) Action(event *stub.ServeEvent, _ extension.Admin, params stub.Parameters) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, actionCall{entry: "scoped", event: event, params: params})
}

func (a *spyAction) callsForEntry(entry string) []actionCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []actionCall
	for _, c := range a.calls {
		if c.entry == entry {
			out = append(out, c)
		}
	}
	return out
}
