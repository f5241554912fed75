package scripted

import "errors"

var (
	ErrNoSource          = errors.New("no script code or URI provided")
	ErrBothCodeAndURI    = errors.New("both code and URI provided")
	ErrNegativeTimeout   = errors.New("negative timeout")
	ErrLoaderCreation    = errors.New("failed to create script loader")
	ErrCompilationFailed = errors.New("script compilation failed")
)
