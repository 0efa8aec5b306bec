package logging

import "log/slog"

// Notifier is the sink for human-readable notifications emitted while serving
// requests, such as a stub referencing an extension that was never registered.
// It is injected wherever notifications are produced so tests can substitute
// a recording implementation.
type Notifier interface {
	// Info reports an informational notification.
	Info(msg string)

	// Error reports an error-level notification.
	Error(msg string)
}

// SlogNotifier adapts a *slog.Logger to the Notifier interface.
type SlogNotifier struct {
	log *slog.Logger
}

// NewSlogNotifier creates a Notifier backed by the given logger.
// A nil logger falls back to Nop().
func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	if log == nil {
		log = Nop()
	}
	return &SlogNotifier{log: log}
}

// Info logs the message at info level.
func (n *SlogNotifier) Info(msg string) {
	n.log.Info(msg)
}

// Error logs the message at error level.
func (n *SlogNotifier) Error(msg string) {
	n.log.Error(msg)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Info discards the message.
func (NopNotifier) Info(string) {}

// Error discards the message.
func (NopNotifier) Error(string) {}
