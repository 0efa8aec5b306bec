// Package journal records serve events for later verification queries.
//
// The Journal interface is the write side used by the request handling
// pipeline; Store adds the read side used for inspection (list, count, get,
// reset). InMemory is the bundled implementation: a bounded FIFO buffer safe
// for concurrent use, which also satisfies the admin handle extensions
// receive.
package journal
