package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/raycoarana/wiremock/pkg/config"
	"github.com/raycoarana/wiremock/pkg/extension"
	"github.com/raycoarana/wiremock/pkg/handler"
	"github.com/raycoarana/wiremock/pkg/journal"
	"github.com/raycoarana/wiremock/pkg/logging"
	"github.com/raycoarana/wiremock/pkg/stub"
)

// Server wires the stub serving pipeline to an HTTP listener: it owns the
// journal, extension registry, resolver, and pipeline, and exposes start and
// shutdown lifecycle.
type Server struct {
	cfg      *config.Config
	log      *slog.Logger
	notifier logging.Notifier

	mappings   []*stub.Mapping
	extensions []extension.Extension
	resolver   handler.StubResolver
	renderer   handler.NotMatchedRenderer

	journal    *journal.InMemory
	httpServer *http.Server

	mu      sync.Mutex
	running bool
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNotifier sets the notification sink used for extension resolution
// errors. Defaults to routing through the operational logger.
func WithNotifier(n logging.Notifier) Option {
	return func(s *Server) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithMappings sets the stub mappings to serve.
func WithMappings(mappings []*stub.Mapping) Option {
	return func(s *Server) {
		s.mappings = mappings
	}
}

// WithExtensions registers post-serve actions and serve-event listeners.
func WithExtensions(extensions ...extension.Extension) Option {
	return func(s *Server) {
		s.extensions = append(s.extensions, extensions...)
	}
}

// WithResolver replaces the default exact-match mapping resolver.
func WithResolver(r handler.StubResolver) Option {
	return func(s *Server) {
		s.resolver = r
	}
}

// WithNotMatchedRenderer replaces the default diagnostic renderer.
func WithNotMatchedRenderer(r handler.NotMatchedRenderer) Option {
	return func(s *Server) {
		s.renderer = r
	}
}

// New creates a Server from the given configuration and options.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:      cfg,
		log:      logging.Nop(),
		renderer: DiagnosticRenderer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = logging.NewSlogNotifier(s.log)
	}
	if s.resolver == nil {
		s.resolver = NewMappingResolver(s.mappings)
	}

	registry, err := extension.NewRegistry(s.extensions...)
	if err != nil {
		return nil, fmt.Errorf("build extension registry: %w", err)
	}

	s.journal = journal.NewInMemory(cfg.JournalCapacity)

	pipeline := handler.New(handler.Config{
		Resolver:              s.resolver,
		Registry:              registry,
		Journal:               s.journal,
		Admin:                 s.journal,
		NotMatchedRenderer:    s.renderer,
		Notifier:              s.notifier,
		DisableRequestLogging: cfg.DisableRequestLogging,
	})

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           NewHTTPAdapter(pipeline, s.log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Journal returns the server's request journal store.
func (s *Server) Journal() journal.Store {
	return s.journal
}

// Start begins serving on the configured port, blocking until the listener
// stops. Use Shutdown to stop gracefully.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.mu.Unlock()

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	s.log.Info("stub server listening", "addr", listener.Addr().String(), "mappings", len(s.mappings))

	if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	return s.httpServer.Shutdown(ctx)
}
