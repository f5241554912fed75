// Package scripted implements machine states whose lifecycle hooks run
// Risor scripts through go-polyscript. Each hook (enter, exit, tick)
// has its own evaluator; script failures are logged and absorbed, since
// the machine treats state hooks as non-failing.
package scripted

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"time"

	"github.com/calder-games/stagehand/internal/machine"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
)

var (
	_ machine.State     = (*State)(nil)
	_ machine.Enterable = (*State)(nil)
	_ machine.Exitable  = (*State)(nil)
	_ machine.Tickable  = (*State)(nil)
)

// State is a machine.State with script-backed lifecycle hooks. Hooks
// without an evaluator are no-ops.
type State struct {
	name string

	onEnter *Evaluator
	onExit  *Evaluator
	onTick  *Evaluator

	staticProvider data.Provider
	logger         *slog.Logger
}

// New creates a scripted state with the given name.
func New(name string, opts ...StateOption) *State {
	s := &State{
		name:           name,
		staticProvider: data.NewStaticProvider(nil),
		logger:         slog.Default().WithGroup("scripted.State"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("state", name)
	return s
}

type StateOption func(*State)

// WithEnterScript sets the evaluator run when the state is entered.
func WithEnterScript(ev *Evaluator) StateOption {
	return func(s *State) {
		s.onEnter = ev
	}
}

// WithExitScript sets the evaluator run when the state is exited.
func WithExitScript(ev *Evaluator) StateOption {
	return func(s *State) {
		s.onExit = ev
	}
}

// WithTickScript sets the evaluator run on every frame while active.
func WithTickScript(ev *Evaluator) StateOption {
	return func(s *State) {
		s.onTick = ev
	}
}

// WithStaticData supplies data made available to every hook script.
func WithStaticData(d map[string]any) StateOption {
	return func(s *State) {
		s.staticProvider = data.NewStaticProvider(d)
	}
}

// WithLogHandler sets a custom log handler for the State instance.
func WithLogHandler(handler slog.Handler) StateOption {
	return func(s *State) {
		s.logger = slog.New(handler)
	}
}

// Name returns the state's name.
func (s *State) Name() string {
	return s.name
}

// Validate checks and compiles all configured hook scripts.
func (s *State) Validate() error {
	var errs []error
	for _, ev := range []*Evaluator{s.onEnter, s.onExit, s.onTick} {
		if ev == nil {
			continue
		}
		if err := ev.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Enter runs the enter script, if configured.
func (s *State) Enter() {
	s.eval("enter", s.onEnter)
}

// Exit runs the exit script, if configured.
func (s *State) Exit() {
	s.eval("exit", s.onExit)
}

// Tick runs the tick script, if configured.
func (s *State) Tick() {
	s.eval("tick", s.onTick)
}

// eval executes one hook script with the state's static data plus the
// state name and hook event in scope.
func (s *State) eval(event string, ev *Evaluator) {
	if ev == nil {
		return
	}

	compiled, err := ev.GetCompiledEvaluator()
	if err != nil {
		s.logger.Error("Script compilation failed", "event", event, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ev.GetTimeout())
	defer cancel()

	scriptData, err := s.prepareScriptData(ctx, event)
	if err != nil {
		s.logger.Error("Failed to prepare script data", "event", event, "error", err)
		return
	}

	contextProvider := data.NewContextProvider(constants.EvalData)
	enrichedCtx, err := contextProvider.AddDataToContext(ctx, scriptData)
	if err != nil {
		s.logger.Error("Failed to add runtime data", "event", event, "error", err)
		return
	}

	start := time.Now()
	_, err = compiled.Eval(enrichedCtx)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("Script execution failed",
			"event", event,
			"error", err,
			"duration", duration)
		return
	}

	s.logger.Debug("Script executed", "event", event, "duration", duration)
}

// prepareScriptData merges the static data with the hook invocation
// metadata.
func (s *State) prepareScriptData(ctx context.Context, event string) (map[string]any, error) {
	staticData, err := s.staticProvider.GetData(ctx)
	if err != nil {
		return nil, err
	}

	scriptData := maps.Clone(staticData)
	if scriptData == nil {
		scriptData = map[string]any{}
	}
	scriptData["state"] = s.name
	scriptData["event"] = event
	return scriptData, nil
}
