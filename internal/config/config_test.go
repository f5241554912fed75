package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/calder-games/stagehand/internal/config/errz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTOML = `
version = "v1"

[logging]
level = "debug"
format = "json"

[machine]
name = "demo"
initial = "intro"
allow_reentry = true
tick_interval = "33ms"
autostart = true

[[states]]
name = "intro"
[states.enter]
code = '1 + 1'
timeout = "2s"

[[states]]
name = "play"
[states.tick]
code = '2 * 2'

[[states]]
name = "outro"
`

func TestNewConfigFromBytes(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfigFromBytes([]byte(validTOML))
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.Version)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.Equal(t, "demo", cfg.Machine.Name)
	assert.Equal(t, "intro", cfg.Machine.Initial)
	assert.True(t, cfg.Machine.AllowReentry)
	assert.True(t, cfg.Machine.Autostart)
	assert.Equal(t, 33*time.Millisecond, cfg.Machine.TickInterval.AsDuration())

	require.Len(t, cfg.States, 3)
	assert.Equal(t, []string{"intro", "play", "outro"}, cfg.StateNames())

	require.NotNil(t, cfg.States[0].Enter)
	assert.Equal(t, "1 + 1", cfg.States[0].Enter.Code)
	assert.Equal(t, 2*time.Second, cfg.States[0].Enter.Timeout.AsDuration())
	assert.Nil(t, cfg.States[0].Exit)
	assert.Nil(t, cfg.States[0].Tick)

	require.NotNil(t, cfg.States[1].Tick)
	assert.Nil(t, cfg.States[2].Enter)
}

func TestNewConfigFromBytes_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfigFromBytes([]byte(`
[[states]]
name = "only"
`))
	require.NoError(t, err)

	assert.Equal(t, Version, cfg.Version)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "machine", cfg.Machine.Name)
	assert.Equal(t, DefaultTickInterval, cfg.Machine.TickInterval.AsDuration())
	assert.True(t, cfg.Machine.Autostart)
	assert.False(t, cfg.Machine.AllowReentry)
	assert.Empty(t, cfg.Machine.Initial)
}

func TestNewConfigFromBytes_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		toml    string
		wantErr error
	}{
		{
			name:    "malformed toml",
			toml:    `version = `,
			wantErr: errz.ErrFailedToLoadConfig,
		},
		{
			name:    "bad duration string",
			toml:    "[machine]\ntick_interval = \"fast\"",
			wantErr: errz.ErrFailedToLoadConfig,
		},
		{
			name:    "unsupported version",
			toml:    `version = "v9"`,
			wantErr: errz.ErrUnsupportedConfigVer,
		},
		{
			name:    "zero tick interval",
			toml:    "[machine]\ntick_interval = \"0s\"",
			wantErr: errz.ErrInvalidInterval,
		},
		{
			name:    "bad log level",
			toml:    "[logging]\nlevel = \"loud\"",
			wantErr: errz.ErrInvalidLogLevel,
		},
		{
			name:    "bad log format",
			toml:    "[logging]\nformat = \"xml\"",
			wantErr: errz.ErrInvalidLogFormat,
		},
		{
			name:    "empty state name",
			toml:    "[[states]]\nname = \"\"",
			wantErr: errz.ErrEmptyStateName,
		},
		{
			name:    "duplicate state name",
			toml:    "[[states]]\nname = \"a\"\n[[states]]\nname = \"a\"",
			wantErr: errz.ErrDuplicateStateName,
		},
		{
			name:    "unknown initial state",
			toml:    "[machine]\ninitial = \"ghost\"\n[[states]]\nname = \"a\"",
			wantErr: errz.ErrUnknownInitial,
		},
		{
			name:    "script without source",
			toml:    "[[states]]\nname = \"a\"\n[states.enter]\ntimeout = \"1s\"",
			wantErr: errz.ErrInvalidScript,
		},
		{
			name:    "script that does not compile",
			toml:    "[[states]]\nname = \"a\"\n[states.enter]\ncode = \"func (\"",
			wantErr: errz.ErrInvalidScript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewConfigFromBytes([]byte(tt.toml))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfigFromBytes([]byte(`
version = "v2"

[machine]
initial = "missing"
tick_interval = "-1s"

[[states]]
name = ""
`))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, errz.ErrFailedToValidateConfig)
	assert.ErrorIs(t, err, errz.ErrUnsupportedConfigVer)
	assert.ErrorIs(t, err, errz.ErrInvalidInterval)
	assert.ErrorIs(t, err, errz.ErrEmptyStateName)
	assert.ErrorIs(t, err, errz.ErrUnknownInitial)
}

func TestNewConfig_FromFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "machine.toml")
		require.NoError(t, os.WriteFile(path, []byte(validTOML), 0o644))

		cfg, err := NewConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "demo", cfg.Machine.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, errz.ErrFailedToLoadConfig)
	})
}

func TestNewConfigFromReader(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfigFromReader(strings.NewReader(validTOML))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Machine.Name)
}

func TestConfig_EnvInterpolation(t *testing.T) {
	t.Setenv("STAGEHAND_TEST_NAME", "from-env")

	cfg, err := NewConfigFromBytes([]byte(`
[machine]
name = "${STAGEHAND_TEST_NAME}"

[logging]
output = "${STAGEHAND_TEST_OUT:stderr}"

[[states]]
name = "a"
[states.enter]
code = '"${STAGEHAND_TEST_NAME}"'
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Machine.Name)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, `"from-env"`, cfg.States[0].Enter.Code)
}

func TestConfig_EnvInterpolation_MissingVar(t *testing.T) {
	t.Setenv("STAGEHAND_TEST_NAME", "")
	os.Unsetenv("STAGEHAND_TEST_NAME")

	cfg, err := NewConfigFromBytes([]byte(`
[machine]
name = "${STAGEHAND_TEST_NAME}"

[[states]]
name = "a"
`))
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, errz.ErrFailedToLoadConfig)
}

func TestScriptConfig(t *testing.T) {
	t.Parallel()

	t.Run("builds the runtime evaluator", func(t *testing.T) {
		t.Parallel()
		sc := &ScriptConfig{Code: "1 + 1", Timeout: Duration(time.Second)}
		ev := sc.Evaluator()
		require.NotNil(t, ev)
		assert.Equal(t, "1 + 1", ev.Code)
		assert.Equal(t, time.Second, ev.Timeout)
	})

	t.Run("nil receiver yields nil evaluator", func(t *testing.T) {
		t.Parallel()
		var sc *ScriptConfig
		assert.Nil(t, sc.Evaluator())
	})

	t.Run("validate rejects missing source", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, (&ScriptConfig{}).Validate())
	})
}
