// Package machine implements an ordered-state finite state machine: a
// coordinator over an externally owned sequence of states that tracks
// which state is active and drives transitions by sibling order,
// explicit reference, or name lookup.
//
// The machine is owned by a single cooperative driver goroutine: all
// transition operations and Tick must come from it. Request and
// RequestName may be called from other goroutines, and the read-only
// accessors are safe everywhere. All invalid transition requests
// (reentry without permission, foreign state, unresolvable name or
// index) are absorbed as no-ops with a diagnostic log line; callers
// detect failure by the nil return.
package machine

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/calder-games/stagehand/internal/journal"
)

// none is the sentinel for "no active state".
const none = -1

// Machine navigates an ordered Sequence of states. Construct with New;
// the zero value is not usable.
type Machine struct {
	seq Sequence

	current atomic.Int64
	atFirst atomic.Bool
	atLast  atomic.Bool

	pendingMu sync.Mutex
	pending   State

	allowReentry bool
	logger       *slog.Logger
	journal      *journal.Journal
}

// New creates a Machine over the given sequence with no active state.
func New(seq Sequence, opts ...Option) *Machine {
	m := &Machine{
		seq:    seq,
		logger: slog.Default().WithGroup("machine"),
	}
	m.current.Store(none)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Current returns the active state, or nil when none is active.
func (m *Machine) Current() State {
	idx := m.CurrentIndex()
	if idx == none {
		return nil
	}
	return m.seq.At(idx)
}

// CurrentIndex returns the index of the active state, or -1 when none
// is active.
func (m *Machine) CurrentIndex() int {
	return int(m.current.Load())
}

// AtFirst reports whether the active state is at index 0. False when no
// state is active.
func (m *Machine) AtFirst() bool {
	return m.atFirst.Load()
}

// AtLast reports whether the active state is at the final index. False
// when no state is active.
func (m *Machine) AtLast() bool {
	return m.atLast.Load()
}

// AllowReentry reports whether transitions into the already-active
// state are permitted.
func (m *Machine) AllowReentry() bool {
	return m.allowReentry
}

// Start transitions into the named initial state. It is called once by
// the host driver after the runtime has reached its running phase; an
// empty name is a no-op. Returns the entered state, or nil.
func (m *Machine) Start(initial string) State {
	if initial == "" {
		return nil
	}
	return m.ChangeStateName(initial)
}

// Next advances to the following sibling state. With no active state it
// enters index 0. At the final index it exits when exitIfLast is set,
// otherwise it leaves the active state unchanged and returns it.
func (m *Machine) Next(exitIfLast bool) State {
	idx := m.CurrentIndex()
	if idx == none {
		return m.ChangeStateIndex(0)
	}
	if idx >= m.seq.Len()-1 {
		if exitIfLast {
			m.Exit()
			return nil
		}
		return m.Current()
	}
	return m.ChangeStateIndex(idx + 1)
}

// Previous moves to the preceding sibling state. With no active state
// it enters index 0. At index 0 it exits when exitIfFirst is set,
// otherwise it leaves the active state unchanged and returns it.
func (m *Machine) Previous(exitIfFirst bool) State {
	idx := m.CurrentIndex()
	if idx == none {
		return m.ChangeStateIndex(0)
	}
	if idx <= 0 {
		if exitIfFirst {
			m.Exit()
			return nil
		}
		return m.Current()
	}
	return m.ChangeStateIndex(idx - 1)
}

// Exit deactivates the current state, notifying its Exitable capability
// and clearing the boundary flags. No-op when no state is active.
func (m *Machine) Exit() {
	prev := m.Current()
	if prev == nil {
		return
	}
	m.current.Store(none)
	m.atFirst.Store(false)
	m.atLast.Store(false)

	m.logger.Debug("Exiting state", "state", prev.Name())
	m.record(prev.Name(), "", journal.OutcomeExited)
	if ex, ok := prev.(Exitable); ok {
		ex.Exit()
	}
}

// ChangeState transitions into the given state. The request is rejected
// with a nil return when target is nil, when target is the active state
// and reentry is disallowed, or when target is not a member of the
// machine's sequence.
func (m *Machine) ChangeState(target State) State {
	if target == nil {
		m.logger.Debug("Ignoring transition to nil state")
		return nil
	}

	cur := m.Current()
	if cur != nil && !m.allowReentry && target == cur {
		m.logger.Debug("Reentry disallowed, ignoring transition", "state", target.Name())
		m.record(cur.Name(), target.Name(), journal.OutcomeRejectedReentry)
		return nil
	}

	idx := m.seq.IndexOf(target)
	if idx < 0 {
		m.logger.Warn("State is not a member of this sequence", "state", target.Name())
		m.record(stateName(cur), target.Name(), journal.OutcomeRejectedForeign)
		return nil
	}

	return m.enter(target, idx)
}

// ChangeStateIndex transitions into the state at the given sequence
// index. Out-of-range indices are rejected with a nil return.
func (m *Machine) ChangeStateIndex(i int) State {
	target := m.seq.At(i)
	if target == nil {
		m.logger.Warn("State index out of range", "index", i, "len", m.seq.Len())
		m.record(stateName(m.Current()), "", journal.OutcomeRejectedResolution)
		return nil
	}
	return m.ChangeState(target)
}

// ChangeStateName transitions into the first state with the given name.
// Unknown names are rejected with a nil return.
func (m *Machine) ChangeStateName(name string) State {
	target := m.seq.ByName(name)
	if target == nil {
		m.logger.Warn("No state with this name", "name", name)
		m.record(stateName(m.Current()), name, journal.OutcomeRejectedResolution)
		return nil
	}
	return m.ChangeState(target)
}

// Request arms a pending transition into the given state. The request
// is consumed by the next Tick; a later Request overwrites an earlier
// one that has not yet been consumed.
func (m *Machine) Request(target State) {
	m.pendingMu.Lock()
	m.pending = target
	m.pendingMu.Unlock()
}

// RequestName arms a pending transition into the named state. Unknown
// names are ignored with a diagnostic.
func (m *Machine) RequestName(name string) {
	target := m.seq.ByName(name)
	if target == nil {
		m.logger.Warn("No state with this name", "name", name)
		return
	}
	m.Request(target)
}

// NeedTransition reports whether an externally requested transition is
// pending and, if so, which state it targets. It is the poll primitive
// behind Tick and does not consume the request.
func (m *Machine) NeedTransition() (State, bool) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	return m.pending, m.pending != nil
}

// Tick is the per-frame entry point called by the host driver. It
// consumes a pending transition request if one is armed, then forwards
// the frame to the active state's Tickable capability.
func (m *Machine) Tick() {
	if target, ok := m.takePending(); ok {
		m.ChangeState(target)
	}
	if cur := m.Current(); cur != nil {
		if t, ok := cur.(Tickable); ok {
			t.Tick()
		}
	}
}

// takePending consumes the pending request atomically.
func (m *Machine) takePending() (State, bool) {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	target := m.pending
	m.pending = nil
	return target, target != nil
}

// enter performs the transition: the previous state (if any) is exited
// first, then the target becomes current, boundary flags are
// recomputed, and the target's Enterable capability is notified. The
// exit-then-enter pair is atomic from the caller's perspective.
func (m *Machine) enter(target State, idx int) State {
	prev := m.Current()
	if prev != nil {
		m.logger.Debug("Exiting state", "state", prev.Name())
		if ex, ok := prev.(Exitable); ok {
			ex.Exit()
		}
	}

	m.current.Store(int64(idx))
	m.atFirst.Store(idx == 0)
	m.atLast.Store(idx == m.seq.Len()-1)

	m.logger.Debug("Entering state",
		"state", target.Name(),
		"index", idx,
		"at_first", m.AtFirst(),
		"at_last", m.AtLast())
	m.record(stateName(prev), target.Name(), journal.OutcomeEntered)

	if en, ok := target.(Enterable); ok {
		en.Enter()
	}
	return target
}

func (m *Machine) record(from, to string, outcome journal.Outcome) {
	if m.journal == nil {
		return
	}
	m.journal.Record(from, to, outcome)
}

func stateName(s State) string {
	if s == nil {
		return ""
	}
	return s.Name()
}
