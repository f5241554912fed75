// Package engine assembles a runnable machine from configuration: a
// scene graph holding the state nodes, the ordered-state machine over
// that graph, a transition journal, and the tick driver that runs the
// whole thing under a supervisor.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/calder-games/stagehand/internal/config"
	"github.com/calder-games/stagehand/internal/driver"
	"github.com/calder-games/stagehand/internal/journal"
	"github.com/calder-games/stagehand/internal/machine"
	"github.com/calder-games/stagehand/internal/scene"
	"github.com/calder-games/stagehand/internal/states/scripted"
	"github.com/robbyt/go-supervisor/supervisor"
)

// Engine is an assembled machine with its collaborators.
type Engine struct {
	Root    *scene.Node
	Machine *machine.Machine
	Journal *journal.Journal
	Runner  *driver.Runner
}

// Build wires a scene graph, machine, journal, and driver from cfg.
func Build(ctx context.Context, cfg *config.Config, logHandler slog.Handler) (*Engine, error) {
	root := scene.NewNode(cfg.Machine.Name)
	for _, sc := range cfg.States {
		node := scene.NewNode(sc.Name)
		if sc.Enter != nil || sc.Exit != nil || sc.Tick != nil {
			node.SetBehavior(scripted.New(sc.Name,
				scripted.WithEnterScript(sc.Enter.Evaluator()),
				scripted.WithExitScript(sc.Exit.Evaluator()),
				scripted.WithTickScript(sc.Tick.Evaluator()),
				scripted.WithLogHandler(logHandler),
			))
		}
		if err := root.AddChild(node); err != nil {
			return nil, fmt.Errorf("failed to add state %q: %w", sc.Name, err)
		}
	}

	jrnl := journal.New(logHandler)
	m := machine.New(scene.SequenceOf(root),
		machine.WithLogHandler(logHandler),
		machine.WithReentry(cfg.Machine.AllowReentry),
		machine.WithJournal(jrnl),
	)

	runner, err := driver.NewRunner(m,
		driver.WithContext(ctx),
		driver.WithLogHandler(logHandler),
		driver.WithInterval(cfg.Machine.TickInterval.AsDuration()),
		driver.WithInitialState(cfg.Machine.Initial),
		driver.WithAutostart(cfg.Machine.Autostart),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return &Engine{
		Root:    root,
		Machine: m,
		Journal: jrnl,
		Runner:  runner,
	}, nil
}

// Run builds the engine from cfg and runs it until ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	logHandler := logger.Handler()

	eng, err := Build(ctx, cfg, logHandler)
	if err != nil {
		return err
	}

	super, err := supervisor.New(
		supervisor.WithContext(ctx),
		supervisor.WithLogHandler(logHandler),
		supervisor.WithRunnables(eng.Runner),
	)
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}
	if err := super.Run(); err != nil {
		return fmt.Errorf("failed to run machine: %w", err)
	}

	logger.Info("Machine shutdown complete", "transitions", eng.Journal.Len())
	return nil
}
