// Package journal records the transition history of a state machine.
// Each transition attempt becomes an Entry with a unique ID, and the
// structured log lines emitted while recording are captured so they can
// be replayed to another handler later.
package journal

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"
)

// Outcome classifies the result of a transition attempt.
type Outcome string

const (
	// OutcomeEntered means a state was activated.
	OutcomeEntered Outcome = "entered"
	// OutcomeExited means the active state was deactivated with no successor.
	OutcomeExited Outcome = "exited"
	// OutcomeRejectedReentry means the target was already active and reentry is disallowed.
	OutcomeRejectedReentry Outcome = "rejected_reentry"
	// OutcomeRejectedForeign means the target does not belong to the machine's sequence.
	OutcomeRejectedForeign Outcome = "rejected_foreign"
	// OutcomeRejectedResolution means an index or name did not resolve to a state.
	OutcomeRejectedResolution Outcome = "rejected_resolution"
)

// Rejected reports whether the outcome is one of the rejection classes.
func (o Outcome) Rejected() bool {
	switch o {
	case OutcomeRejectedReentry, OutcomeRejectedForeign, OutcomeRejectedResolution:
		return true
	}
	return false
}

// Entry is one recorded transition attempt. From and To are state
// names; either may be empty when no state was active on that side.
type Entry struct {
	ID      uuid.UUID
	From    string
	To      string
	Outcome Outcome
	At      time.Time
}

// Journal is an append-only record of transition attempts.
type Journal struct {
	mu      sync.Mutex
	entries []Entry

	logger       *slog.Logger
	logCollector *loglater.LogCollector
}

// New creates a Journal that logs through the given handler while
// collecting the log records for later playback.
func New(handler slog.Handler) *Journal {
	logCollector := loglater.NewLogCollector(handler)
	return &Journal{
		logger:       slog.New(logCollector).WithGroup("journal"),
		logCollector: logCollector,
	}
}

// Record appends an entry for a transition attempt.
func (j *Journal) Record(from, to string, outcome Outcome) Entry {
	entry := Entry{
		ID:      uuid.Must(uuid.NewV6()),
		From:    from,
		To:      to,
		Outcome: outcome,
		At:      time.Now(),
	}

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	if outcome.Rejected() {
		j.logger.Warn("Transition rejected",
			"id", entry.ID,
			"from", from,
			"to", to,
			"outcome", outcome)
	} else {
		j.logger.Info("Transition recorded",
			"id", entry.ID,
			"from", from,
			"to", to,
			"outcome", outcome)
	}
	return entry
}

// Entries returns a copy of the recorded entries in order.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of recorded entries.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Last returns the most recent entry, or false when the journal is empty.
func (j *Journal) Last() (Entry, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}

// PlaybackLogs replays the collected log records to the given handler.
func (j *Journal) PlaybackLogs(handler slog.Handler) error {
	return j.logCollector.PlayLogs(handler)
}
