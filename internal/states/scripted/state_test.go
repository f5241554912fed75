package scripted

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "intro", New("intro").Name())
}

func TestState_Validate(t *testing.T) {
	t.Parallel()

	t.Run("no scripts is valid", func(t *testing.T) {
		assert.NoError(t, New("bare").Validate())
	})

	t.Run("valid scripts compile", func(t *testing.T) {
		s := New("scripted",
			WithEnterScript(&Evaluator{Code: `ctx.get("state", "") + ":" + ctx.get("event", "")`}),
			WithTickScript(&Evaluator{Code: `1 + 1`}),
		)
		assert.NoError(t, s.Validate())
	})

	t.Run("collects every invalid hook", func(t *testing.T) {
		s := New("broken",
			WithEnterScript(&Evaluator{}),
			WithExitScript(&Evaluator{Code: `func (`}),
		)
		err := s.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoSource)
		assert.ErrorIs(t, err, ErrCompilationFailed)
	})
}

func TestState_Hooks(t *testing.T) {
	t.Parallel()

	t.Run("nil evaluators are no-ops", func(t *testing.T) {
		s := New("bare")
		assert.NotPanics(t, func() {
			s.Enter()
			s.Exit()
			s.Tick()
		})
	})

	t.Run("executes the hook script", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

		s := New("intro",
			WithEnterScript(&Evaluator{Code: `ctx.get("state", "") + "/" + ctx.get("event", "")`}),
			WithLogHandler(handler),
		)
		s.Enter()

		out := buf.String()
		assert.Contains(t, out, "Script executed")
		assert.Contains(t, out, "event=enter")
		assert.NotContains(t, out, "Script execution failed")
	})

	t.Run("static data is available to the script", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

		s := New("play",
			WithTickScript(&Evaluator{Code: `ctx.get("speed", 0) * 2`}),
			WithStaticData(map[string]any{"speed": 21}),
			WithLogHandler(handler),
		)
		s.Tick()

		assert.Contains(t, buf.String(), "Script executed")
	})

	t.Run("script failure is absorbed", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

		s := New("faulty",
			WithExitScript(&Evaluator{Code: `1 / 0`}),
			WithLogHandler(handler),
		)
		assert.NotPanics(t, s.Exit)
		assert.Contains(t, buf.String(), "Script execution failed")
	})
}
