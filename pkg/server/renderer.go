package server

import (
	"encoding/json"
	"net/http"

	"github.com/raycoarana/wiremock/pkg/extension"
	"github.com/raycoarana/wiremock/pkg/stub"
)

// DiagnosticRenderer builds the not-found diagnostic response for requests
// no stub matched: status 404 with a JSON body naming the request method and
// path.
type DiagnosticRenderer struct{}

// Render builds the diagnostic response definition for the event.
func (DiagnosticRenderer) Render(_ extension.Admin, event *stub.ServeEvent, _ map[string]string) *stub.ResponseDefinition {
	body := map[string]string{
		"error":   "no_match",
		"message": "No stub matched the request",
	}
	if event.Request != nil {
		body["method"] = event.Request.Method
		body["path"] = event.Request.Path
	}

	data, err := json.Marshal(body)
	if err != nil {
		data = []byte(`{"error":"no_match","message":"No stub matched the request"}`)
	}

	return &stub.ResponseDefinition{
		Status:  http.StatusNotFound,
		Headers: map[string][]string{"Content-Type": {"application/json"}},
		Body:    string(data),
	}
}
