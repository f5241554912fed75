// Package config loads and validates the TOML configuration that
// describes a state machine: its ordered states, the initial state,
// reentry policy, tick interval, and the scripts attached to state
// lifecycle hooks.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/calder-games/stagehand/internal/config/errz"
	"github.com/calder-games/stagehand/internal/interpolation"
	"github.com/calder-games/stagehand/internal/states/scripted"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Version is the configuration schema version this build supports.
const Version = "v1"

// DefaultTickInterval is used when the config does not set one.
const DefaultTickInterval = time.Second / 60

// Config is the root configuration document.
type Config struct {
	Version string        `toml:"version"`
	Logging Logging       `toml:"logging"`
	Machine MachineConfig `toml:"machine"`
	States  []StateConfig `toml:"states"`
}

// Logging configures the process-wide log handler.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output" env_interpolation:"yes"`
}

// MachineConfig configures the ordered-state machine and its driver.
type MachineConfig struct {
	Name         string   `toml:"name" env_interpolation:"yes"`
	Initial      string   `toml:"initial"`
	AllowReentry bool     `toml:"allow_reentry"`
	TickInterval Duration `toml:"tick_interval"`
	Autostart    bool     `toml:"autostart"`
}

// StateConfig declares one state, in sequence order, with optional
// script hooks.
type StateConfig struct {
	Name  string        `toml:"name"`
	Enter *ScriptConfig `toml:"enter"`
	Exit  *ScriptConfig `toml:"exit"`
	Tick  *ScriptConfig `toml:"tick"`
}

// ScriptConfig declares a script source for one lifecycle hook.
// Exactly one of Code or URI must be set.
type ScriptConfig struct {
	Code    string   `toml:"code" env_interpolation:"yes"`
	URI     string   `toml:"uri" env_interpolation:"yes"`
	Timeout Duration `toml:"timeout"`
}

// Evaluator builds the runtime evaluator for this script source. A nil
// receiver yields nil, so hook fields can be passed through unchecked.
func (s *ScriptConfig) Evaluator() *scripted.Evaluator {
	if s == nil {
		return nil
	}
	return &scripted.Evaluator{
		Code:    s.Code,
		URI:     s.URI,
		Timeout: s.Timeout.AsDuration(),
	}
}

// Validate checks the script source and compiles it.
func (s *ScriptConfig) Validate() error {
	return s.Evaluator().Validate()
}

func (s *ScriptConfig) String() string {
	return s.Evaluator().String()
}

type hookRef struct {
	name string
	ev   *ScriptConfig
}

// hooks returns the state's script hooks in a stable order.
func (s *StateConfig) hooks() []hookRef {
	return []hookRef{
		{"enter", s.Enter},
		{"exit", s.Exit},
		{"tick", s.Tick},
	}
}

// NewConfig loads, interpolates, and validates configuration from a
// TOML file.
func NewConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}
	return NewConfigFromBytes(data)
}

// NewConfigFromReader loads configuration from a TOML stream.
func NewConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}
	return NewConfigFromBytes(data)
}

// NewConfigFromBytes loads configuration from TOML bytes.
func NewConfigFromBytes(data []byte) (*Config, error) {
	cfg := &Config{
		Version: Version,
		Logging: Logging{Level: "info", Format: "text"},
		Machine: MachineConfig{
			Name:         "machine",
			TickInterval: Duration(DefaultTickInterval),
			Autostart:    true,
		},
	}

	if err := gotoml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}

	if err := cfg.interpolate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errz.ErrFailedToLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// interpolate expands ${VAR:default} references in the tagged fields,
// including the script sources of every state.
func (c *Config) interpolate() error {
	return interpolation.InterpolateStruct(c)
}

// Validate checks the whole document, collecting every violation.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != Version {
		errs = append(errs, fmt.Errorf("%w: %q", errz.ErrUnsupportedConfigVer, c.Version))
	}

	if c.Machine.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s", errz.ErrInvalidInterval, c.Machine.TickInterval))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", errz.ErrInvalidLogLevel, c.Logging.Level))
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", errz.ErrInvalidLogFormat, c.Logging.Format))
	}

	seen := make(map[string]bool, len(c.States))
	for i, st := range c.States {
		if st.Name == "" {
			errs = append(errs, fmt.Errorf("%w: states[%d]", errz.ErrEmptyStateName, i))
			continue
		}
		if seen[st.Name] {
			errs = append(errs, fmt.Errorf("%w: %q", errz.ErrDuplicateStateName, st.Name))
		}
		seen[st.Name] = true

		for _, hook := range st.hooks() {
			if hook.ev == nil {
				continue
			}
			if err := hook.ev.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%w: state %q %s: %w",
					errz.ErrInvalidScript, st.Name, hook.name, err))
			}
		}
	}

	if c.Machine.Initial != "" && !seen[c.Machine.Initial] {
		errs = append(errs, fmt.Errorf("%w: %q", errz.ErrUnknownInitial, c.Machine.Initial))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", errz.ErrFailedToValidateConfig, err)
	}
	return nil
}

// StateNames returns the configured state names in sequence order.
func (c *Config) StateNames() []string {
	names := make([]string, len(c.States))
	for i, st := range c.States {
		names[i] = st.Name
	}
	return names
}
