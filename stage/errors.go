package stage

import (
	"errors"
	"fmt"
)

var (
	ErrNoCharacter   = errors.New("character not loaded")
	ErrLoadTimeout   = errors.New("load timed out")
	ErrInvalidSize   = errors.New("invalid viewport size")
	ErrInvalidConfig = errors.New("invalid config")
)

// LoadError reports a failed model load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load model %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
