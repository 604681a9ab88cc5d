// Package log wraps log/slog with component tagging and optional Sentry
// capture for degraded-path failures.
package log

import (
	"context"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
)

// Logger wraps slog.Logger with a component attribute.
type Logger struct {
	*slog.Logger
	component string
}

// Config holds logger configuration.
type Config struct {
	Level   slog.Level
	Handler slog.Handler
}

// New creates a component-tagged logger. A nil Handler falls back to a text
// handler on stdout.
func New(component string, cfg Config) *Logger {
	handler := cfg.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})
	}
	return &Logger{
		Logger:    slog.New(handler).With("component", component),
		component: component,
	}
}

// WithComponent returns a copy of the logger tagged for another component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With("component", component),
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}

// Swallowed records a failure that was deliberately degraded to a fallback
// value instead of propagating. It always logs; when Sentry is configured it
// also captures the error, so silent degradation stays observable.
func Swallowed(ctx context.Context, msg string, err error, args ...any) {
	slog.WarnContext(ctx, msg, append([]any{"error", err, "degraded", true}, args...)...)
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureException(err)
	}
}
