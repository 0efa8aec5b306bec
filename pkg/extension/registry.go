package extension

import (
	"errors"
	"fmt"
)

// ErrDuplicateExtension is returned when two extensions of the same kind are
// registered under one name.
var ErrDuplicateExtension = errors.New("duplicate extension name")

// Registry holds the name→instance mappings for post-serve actions and
// serve-event listeners. It is populated once at startup and read-only
// afterwards, so lookups during request handling need no locking.
type Registry struct {
	postServeActions map[string]PostServeAction
	listeners        map[string]ServeEventListener
}

// NewRegistry builds a registry from the given extensions. Each extension
// must implement PostServeAction, ServeEventListener, or both; names must be
// unique per kind.
func NewRegistry(extensions ...Extension) (*Registry, error) {
	r := &Registry{
		postServeActions: make(map[string]PostServeAction),
		listeners:        make(map[string]ServeEventListener),
	}
	for _, ext := range extensions {
		registered := false
		if action, ok := ext.(PostServeAction); ok {
			if _, exists := r.postServeActions[action.Name()]; exists {
				return nil, fmt.Errorf("%w: post-serve action %q", ErrDuplicateExtension, action.Name())
			}
			r.postServeActions[action.Name()] = action
			registered = true
		}
		if listener, ok := ext.(ServeEventListener); ok {
			if _, exists := r.listeners[listener.Name()]; exists {
				return nil, fmt.Errorf("%w: serve-event listener %q", ErrDuplicateExtension, listener.Name())
			}
			r.listeners[listener.Name()] = listener
			registered = true
		}
		if !registered {
			return nil, fmt.Errorf("extension %q implements no known capability", ext.Name())
		}
	}
	return r, nil
}

// PostServeAction looks up a post-serve action by name.
func (r *Registry) PostServeAction(name string) (PostServeAction, bool) {
	action, ok := r.postServeActions[name]
	return action, ok
}

// PostServeActions returns all registered post-serve actions. Iteration
// order is incidental and carries no guarantee.
func (r *Registry) PostServeActions() []PostServeAction {
	out := make([]PostServeAction, 0, len(r.postServeActions))
	for _, action := range r.postServeActions {
		out = append(out, action)
	}
	return out
}

// Listener looks up a serve-event listener by name.
func (r *Registry) Listener(name string) (ServeEventListener, bool) {
	listener, ok := r.listeners[name]
	return listener, ok
}

// Listeners returns all registered serve-event listeners. Iteration order is
// incidental and carries no guarantee.
func (r *Registry) Listeners() []ServeEventListener {
	out := make([]ServeEventListener, 0, len(r.listeners))
	for _, listener := range r.listeners {
		out = append(out, listener)
	}
	return out
}
