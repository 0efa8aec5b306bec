package server

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/raycoarana/wiremock/pkg/handler"
	"github.com/raycoarana/wiremock/pkg/logging"
	"github.com/raycoarana/wiremock/pkg/stub"
)

// MaxRequestBodySize bounds request bodies accepted for stub serving (10MB).
const MaxRequestBodySize = 10 << 20

// HTTPAdapter bridges net/http and the request handling pipeline. Each
// request is snapshotted into a fresh ServeEvent, handled, transmitted, and
// completed, with the pipeline's lifecycle callbacks fired around the write.
type HTTPAdapter struct {
	pipeline *handler.StubRequestHandler
	log      *slog.Logger
}

// NewHTTPAdapter creates an adapter driving the given pipeline. A nil logger
// defaults to no-op.
func NewHTTPAdapter(pipeline *handler.StubRequestHandler, log *slog.Logger) *HTTPAdapter {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPAdapter{pipeline: pipeline, log: log}
}

// ServeHTTP implements the http.Handler interface.
func (a *HTTPAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	event := stub.NewServeEvent(snapshotRequest(w, r))

	event = a.pipeline.Handle(event)

	a.pipeline.BeforeResponseSent(event)

	writeResponse(w, event.Response)

	a.pipeline.AfterResponseSent(event)

	if a.pipeline.LogRequests() {
		a.log.Info("request served",
			"method", event.Request.Method,
			"path", event.Request.Path,
			"status", event.Response.Status,
			"matched", event.WasMatched(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// snapshotRequest captures the parts of the request the pipeline and journal
// need. The body read is bounded to prevent memory exhaustion from oversized
// payloads.
func snapshotRequest(w http.ResponseWriter, r *http.Request) *stub.Request {
	var body []byte
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
		body, _ = io.ReadAll(r.Body)
	}

	headers := make(map[string][]string, len(r.Header))
	for name, values := range r.Header {
		headers[name] = append([]string(nil), values...)
	}

	return &stub.Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		QueryString: r.URL.RawQuery,
		Headers:     headers,
		Body:        string(body),
		ClientIP:    r.RemoteAddr,
		ReceivedAt:  time.Now(),
	}
}

// writeResponse transmits a resolved response definition. Unmatched events
// carry the synthesized default, which has no body of its own; the caller is
// expected to have attached the diagnostic via the pipeline already, so the
// default is sent as-is.
func writeResponse(w http.ResponseWriter, resp *stub.ResponseDefinition) {
	if resp == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	for name, values := range resp.Headers {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	w.WriteHeader(resp.Status)
	if resp.Body != "" {
		_, _ = w.Write([]byte(resp.Body))
	}
}
