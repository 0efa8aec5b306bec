// Package server hosts the stub serving pipeline behind net/http.
//
// It provides the HTTP adapter that snapshots incoming requests into serve
// events and drives the pipeline's lifecycle callbacks around response
// transmission, the default exact-match mapping resolver, the default
// not-matched diagnostic renderer, and a Server that wires journal,
// extension registry, and pipeline together with functional options.
package server
