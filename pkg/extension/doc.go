// Package extension defines the pluggable extension capabilities invoked
// around stub serving — post-serve actions and serve-event listeners — and
// the Registry that holds them.
//
// Registries are built once at startup and never mutated afterwards, so
// request handling looks extensions up without locking. An extension is
// registered under its Name(); a stub mapping references it by that name
// with per-invocation parameters.
package extension
