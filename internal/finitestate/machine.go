// Package finitestate tracks the lifecycle of the tick driver with a
// small finite state machine, using the standard
// New/Booting/Running/Stopping/Stopped transition set.
package finitestate

import (
	"context"
	"log/slog"
	"time"

	"github.com/robbyt/go-fsm"
)

const (
	StatusNew      = fsm.StatusNew
	StatusBooting  = fsm.StatusBooting
	StatusRunning  = fsm.StatusRunning
	StatusStopping = fsm.StatusStopping
	StatusStopped  = fsm.StatusStopped
	StatusError    = fsm.StatusError
	StatusUnknown  = fsm.StatusUnknown
)

// TypicalTransitions is a set of standard transitions for a finite state machine.
var TypicalTransitions = fsm.TypicalTransitions

// Machine is the interface the driver uses to track its lifecycle.
// The abstraction keeps the driver testable with alternative FSM
// implementations.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// GetState returns the current state of the state machine.
	GetState() string

	// GetStateChan returns a channel that emits the state machine's state
	// whenever it changes. The channel is closed when the context is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// DriverFSM embeds fsm.Machine and overrides GetStateChan so state
// updates are still delivered during shutdown.
type DriverFSM struct {
	*fsm.Machine
}

// GetStateChan returns a sync broadcast channel with a 5 second timeout.
func (m *DriverFSM) GetStateChan(ctx context.Context) <-chan string {
	return m.GetStateChanWithOptions(ctx, fsm.WithSyncTimeout(5*time.Second))
}

// New creates a finite state machine in StatusNew using the standard
// lifecycle transitions.
func New(handler slog.Handler) (Machine, error) {
	machine, err := fsm.New(handler, StatusNew, TypicalTransitions)
	if err != nil {
		return nil, err
	}
	return &DriverFSM{Machine: machine}, nil
}
