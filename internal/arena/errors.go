package arena

import (
	"errors"
	"fmt"

	"github.com/vk/tickcore/internal/subsystem"
)

var (
	// ErrDuplicateKey is returned when a resource key is declared twice.
	ErrDuplicateKey = errors.New("resource key already declared")

	// ErrUnknownKey is returned when an authorized access targets a key that
	// no subsystem has declared.
	ErrUnknownKey = errors.New("resource key not declared")

	// ErrReleased is returned for any access after the arena was released.
	ErrReleased = errors.New("arena has been released")
)

// UnauthorizedAccessError reports an access outside a subsystem's declared
// read or write set. It is a hard error at the accessor boundary, never a
// silent no-op.
type UnauthorizedAccessError struct {
	SubsystemID string
	Key         subsystem.ResourceKey
	Op          string // "read", "write", or "declare"
}

func (e *UnauthorizedAccessError) Error() string {
	return fmt.Sprintf("subsystem %q is not authorized to %s resource %q", e.SubsystemID, e.Op, e.Key)
}
