package scripted

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robbyt/go-polyscript/engines/risor"
	"github.com/robbyt/go-polyscript/engines/risor/evaluator"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/script/loader"
)

// DefaultEvalTimeout bounds a single hook evaluation when no timeout is
// configured.
const DefaultEvalTimeout = 10 * time.Second

// Evaluator holds the source of a Risor script for one lifecycle hook
// and compiles it lazily on first use.
type Evaluator struct {
	// Code contains the Risor script source code.
	Code string
	// URI contains the location to load the script from (file://, https://, etc.)
	URI string
	// Timeout is the maximum execution time allowed for the script.
	Timeout time.Duration

	compiledEvaluator *evaluator.Evaluator
	buildOnce         sync.Once
	buildErr          error
}

// String returns a string representation of the Evaluator.
func (e *Evaluator) String() string {
	if e == nil {
		return "Risor(nil)"
	}
	if e.URI != "" {
		return fmt.Sprintf("Risor(uri=%s, timeout=%s)", e.URI, e.Timeout)
	}
	return fmt.Sprintf("Risor(code=%d chars, timeout=%s)", len(e.Code), e.Timeout)
}

// Validate checks the script source and triggers compilation.
func (e *Evaluator) Validate() error {
	var errs []error

	if e.Code == "" && e.URI == "" {
		errs = append(errs, ErrNoSource)
	}
	if e.Code != "" && e.URI != "" {
		errs = append(errs, ErrBothCodeAndURI)
	}
	if e.Timeout < 0 {
		errs = append(errs, ErrNegativeTimeout)
	}

	// If basic validation failed, don't attempt compilation
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	e.build()
	return e.buildErr
}

// build compiles the script - called lazily by Validate() or GetCompiledEvaluator()
func (e *Evaluator) build() {
	e.buildOnce.Do(func() {
		scriptLoader, err := newLoaderFromSource(e.Code, e.URI)
		if err != nil {
			e.buildErr = fmt.Errorf("%w: %w", ErrLoaderCreation, err)
			return
		}

		e.compiledEvaluator, err = risor.FromRisorLoader(slog.Default().Handler(), scriptLoader)
		if err != nil {
			e.buildErr = fmt.Errorf("%w: %w", ErrCompilationFailed, err)
		}
	})
}

// GetCompiledEvaluator returns the compiled script as the abstract
// platform.Evaluator interface, compiling it first if necessary.
func (e *Evaluator) GetCompiledEvaluator() (platform.Evaluator, error) {
	e.build()
	if e.buildErr != nil {
		return nil, e.buildErr
	}
	return e.compiledEvaluator, nil
}

// GetTimeout returns the timeout duration, with a default fallback.
func (e *Evaluator) GetTimeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultEvalTimeout
}

// newLoaderFromSource creates a go-polyscript loader based on code or URI.
// Supports inline code, file:// paths, and http/https URLs.
func newLoaderFromSource(code, uri string) (loader.Loader, error) {
	if code != "" {
		return loader.NewFromString(code)
	}

	if uri != "" {
		if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
			return loader.NewFromHTTP(uri)
		}

		path := strings.TrimPrefix(uri, "file://")
		if !filepath.IsAbs(path) {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve relative path %q: %w", path, err)
			}
			path = absPath
		}

		return loader.NewFromDisk(path)
	}

	return nil, ErrNoSource
}
