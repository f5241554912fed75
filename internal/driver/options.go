package driver

import (
	"context"
	"log/slog"
	"time"
)

type Option func(*Runner)

// WithLogger sets a custom logger for the Runner instance.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Runner instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Runner) {
		r.logger = slog.New(handler)
	}
}

// WithContext sets a custom parent context for the Runner instance.
func WithContext(ctx context.Context) Option {
	return func(r *Runner) {
		r.parentCtx = ctx
	}
}

// WithInterval sets the frame interval between machine ticks.
// Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithInitialState names the state entered when the runner starts.
func WithInitialState(name string) Option {
	return func(r *Runner) {
		r.initial = name
	}
}

// WithAutostart controls whether the initial state is entered when the
// runner reaches its running phase. Disabled, the runner still ticks
// but the machine stays inactive until a transition is requested,
// mirroring a design-time or editor mode.
func WithAutostart(enabled bool) Option {
	return func(r *Runner) {
		r.autostart = enabled
	}
}
