package host

import (
	"errors"
	"fmt"
)

// ErrShutDown is returned when a handle is driven after shutdown.
var ErrShutDown = errors.New("runtime host has been shut down")

// StartupError wraps any failure that prevents a run from starting: registry
// build errors, graph validation errors, and subsystem init errors. The core
// never starts ticking in an inconsistent configuration.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed: %v", e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}
