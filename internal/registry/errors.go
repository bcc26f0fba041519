package registry

import (
	"errors"
	"fmt"
)

// ErrDuplicateIdentifier is returned when a subsystem identifier is
// registered twice.
var ErrDuplicateIdentifier = errors.New("subsystem identifier already registered")

// UnknownFeatureError reports a requested feature with no registered
// constructor.
type UnknownFeatureError struct {
	Feature string
}

func (e *UnknownFeatureError) Error() string {
	return fmt.Sprintf("unknown feature %q: no subsystem registered under that identifier", e.Feature)
}

// MissingDependencyError reports a descriptor depending on an identifier that
// is absent from the selected subsystem set.
type MissingDependencyError struct {
	Subsystem  string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("subsystem %q requires %q, which is not in the enabled feature set", e.Subsystem, e.Dependency)
}
