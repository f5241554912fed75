// Package errz provides shared error definitions for the config package and its subpackages.
package errz

import "errors"

// Top-level error categories
var (
	ErrFailedToLoadConfig     = errors.New("failed to load config")
	ErrFailedToValidateConfig = errors.New("failed to validate config")
	ErrUnsupportedConfigVer   = errors.New("unsupported config version")
)

// Validation specific errors
var (
	ErrEmptyStateName     = errors.New("empty state name")
	ErrDuplicateStateName = errors.New("duplicate state name")
	ErrUnknownInitial     = errors.New("initial state not defined")
	ErrInvalidInterval    = errors.New("invalid tick interval")
	ErrInvalidScript      = errors.New("invalid script")
	ErrInvalidLogLevel    = errors.New("invalid log level")
	ErrInvalidLogFormat   = errors.New("invalid log format")
)
