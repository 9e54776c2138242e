package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTasks is returned when the configuration has no tasks mapping.
	ErrMissingTasks = errors.New("missing required tasks mapping")

	// ErrMissingNetwork is returned when a task has no network object.
	ErrMissingNetwork = errors.New("missing required network object")

	// ErrInvalidRole is returned when the execution role lacks the expected trust-policy shape.
	ErrInvalidRole = errors.New("execution role does not have the expected shape")
)

// ConfigurationError is a fatal violation of the compiler's input contract.
// Compilation stops at the first one; resources already written stay in the
// document.
type ConfigurationError struct {
	// Path locates the offending input, e.g. "tasks.my-worker.network".
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
