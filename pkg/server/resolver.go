package server

import (
	"github.com/raycoarana/wiremock/pkg/stub"
)

// MappingResolver resolves serve events against a fixed set of stub
// mappings by exact method and path lookup. The mapping set is built once at
// startup and read-only afterwards; richer matching strategies plug in by
// replacing the pipeline's StubResolver.
type MappingResolver struct {
	mappings []*stub.Mapping
}

// NewMappingResolver creates a resolver over the given mappings. Earlier
// mappings win when several cover the same method and path.
func NewMappingResolver(mappings []*stub.Mapping) *MappingResolver {
	return &MappingResolver{mappings: mappings}
}

// Resolve attaches the first applicable mapping's response and declared
// extension invocations to the event, or the synthesized default response
// when no mapping applies.
func (r *MappingResolver) Resolve(event *stub.ServeEvent) *stub.ServeEvent {
	for _, m := range r.mappings {
		if m.Applies(event.Request) {
			event.StubID = m.ID
			event.Response = m.ConfiguredResponse()
			event.PostServeActions = m.PostServeActions
			event.Listeners = m.Listeners
			return event
		}
	}

	event.Response = stub.NotConfigured()
	return event
}

// Mappings returns the resolver's mapping set.
func (r *MappingResolver) Mappings() []*stub.Mapping {
	return r.mappings
}
