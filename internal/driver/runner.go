// Package driver runs an ordered-state machine under a host scheduler.
// The Runner is a supervisor runnable that enters the machine's initial
// state once the runtime is actively executing, then polls the machine
// once per frame until it is stopped.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/calder-games/stagehand/internal/finitestate"
	"github.com/calder-games/stagehand/internal/machine"
	"github.com/robbyt/go-supervisor/supervisor"
)

var _ supervisor.Runnable = (*Runner)(nil)

// DefaultTickInterval is the frame interval used when no interval is
// configured, roughly 60 frames per second.
const DefaultTickInterval = time.Second / 60

// Runner drives a machine.Machine with a periodic tick.
type Runner struct {
	machine   *machine.Machine
	initial   string
	interval  time.Duration
	autostart bool

	logger *slog.Logger
	fsm    finitestate.Machine

	runCtx    context.Context
	runCancel context.CancelFunc
	parentCtx context.Context
}

// NewRunner creates a Runner for the given machine.
func NewRunner(m *machine.Machine, opts ...Option) (*Runner, error) {
	if m == nil {
		return nil, fmt.Errorf("machine is required")
	}

	runner := &Runner{
		machine:   m,
		interval:  DefaultTickInterval,
		autostart: true,
		logger:    slog.Default().WithGroup("driver.Runner"),
		parentCtx: context.Background(),
	}

	// Apply functional options
	for _, opt := range opts {
		opt(runner)
	}

	fsmLogger := runner.logger.WithGroup("fsm")
	fsm, err := finitestate.New(fsmLogger.Handler())
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	runner.fsm = fsm

	return runner, nil
}

// String implements the supervisor.Runnable interface
func (r *Runner) String() string {
	return "driver.Runner"
}

// Run implements the supervisor.Runnable interface. It ticks the
// machine once per interval until the context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting Runner")

	if err := r.fsm.Transition(finitestate.StatusBooting); err != nil {
		return fmt.Errorf("failed to transition to booting state: %w", err)
	}

	r.runCtx, r.runCancel = context.WithCancel(ctx)

	if err := r.fsm.Transition(finitestate.StatusRunning); err != nil {
		return fmt.Errorf("failed to transition to running state: %w", err)
	}

	// The initial transition happens only once the runtime is actively
	// executing; with autostart disabled (design-time mode) the machine
	// stays inactive until a transition is requested.
	if r.autostart && r.initial != "" {
		if st := r.machine.Start(r.initial); st == nil {
			r.logger.Warn("Initial state was not entered", "initial", r.initial)
		}
	} else {
		r.logger.Debug("Autostart skipped", "autostart", r.autostart, "initial", r.initial)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-r.parentCtx.Done():
			r.logger.Debug("Parent context canceled")
			break loop
		case <-r.runCtx.Done():
			r.logger.Debug("Run context canceled")
			break loop
		case <-ticker.C:
			r.machine.Tick()
		}
	}

	r.logger.Info("Runner shutting down")

	if r.fsm.GetState() != finitestate.StatusStopping {
		if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
			r.logger.Error("Failed to transition to stopping state", "error", err)
		}
	}

	// Leave no state active once the driver is gone.
	r.machine.Exit()

	if err := r.fsm.Transition(finitestate.StatusStopped); err != nil {
		return fmt.Errorf("failed to transition to stopped state: %w", err)
	}

	return nil
}

// Stop implements the supervisor.Runnable interface
func (r *Runner) Stop() {
	r.logger.Debug("Stopping Runner")
	if err := r.fsm.Transition(finitestate.StatusStopping); err != nil {
		r.logger.Error("Failed to transition to stopping state", "error", err)
	}
	if r.runCancel != nil {
		r.runCancel()
	}
}

// Machine returns the machine this runner drives.
func (r *Runner) Machine() *machine.Machine {
	return r.machine
}
