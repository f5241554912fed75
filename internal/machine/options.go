package machine

import (
	"log/slog"

	"github.com/calder-games/stagehand/internal/journal"
)

type Option func(*Machine)

// WithLogger sets a custom logger for the Machine instance.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLogHandler sets a custom log handler for the Machine instance.
func WithLogHandler(handler slog.Handler) Option {
	return func(m *Machine) {
		m.logger = slog.New(handler)
	}
}

// WithReentry permits transitions into the already-active state, which
// re-triggers its Exit and Enter hooks.
func WithReentry(allow bool) Option {
	return func(m *Machine) {
		m.allowReentry = allow
	}
}

// WithJournal records every transition attempt in the given journal.
func WithJournal(j *journal.Journal) Option {
	return func(m *Machine) {
		m.journal = j
	}
}
