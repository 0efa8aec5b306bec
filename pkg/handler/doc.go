// Package handler contains the request handling pipeline that orchestrates
// stub serving.
//
// For each request the pipeline runs a fixed sequence: before-match listener
// hooks, stub resolution, after-match listener hooks, then — around response
// transmission by the caller — the non-match diagnostic (when nothing
// matched), journal receipt, journal completion, post-serve actions, and
// after-complete listener hooks. Every collaborator is injected through
// Config; the handler introduces no locking and no global state, so one
// instance serves concurrent requests over distinct serve events.
//
// The only fault the pipeline absorbs is a stub declaring an extension name
// that is not registered: that produces a single error notification and the
// remaining invocations of the phase still run. Faults from collaborators
// propagate to the caller untouched.
package handler
