// Package logging provides structured logging configuration for the mock
// server.
//
// It wraps log/slog to provide consistent logging across components, with
// configurable levels and text/json output formats. Components accept a
// *slog.Logger in their constructor; logging.Nop() serves as the no-op
// default.
//
// The package also defines Notifier, the sink for user-facing notifications
// produced while handling requests (for example when a stub references an
// extension that is not registered). SlogNotifier routes notifications to a
// logger; tests substitute their own recording implementation.
package logging
