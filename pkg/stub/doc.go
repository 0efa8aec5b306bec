// Package stub defines the serve-event data model: the per-request record
// threaded through the request handling pipeline, its immutable sub-event
// annotations, the response definition, and the declarative extension
// invocations a stub mapping can attach.
//
// This is a leaf package with no internal dependencies, allowing it to be
// imported by any package without creating import cycles.
package stub
