package config

import "github.com/vk/tickcore/internal/subsystem"

// Model is the unified, format-agnostic representation of a runtime
// configuration: which features to enable, how to run them, and the settings
// handed to each subsystem's constructor.
type Model struct {
	// Features lists the enabled feature identifiers. Empty means the
	// caller's default feature set.
	Features []string

	// TickLimit bounds the run; nil runs until cancellation.
	TickLimit *uint64

	// FailurePolicy is the manifest spelling ("abort" or "continue").
	// Empty defaults to abort.
	FailurePolicy string

	// Parallel enables wave-concurrent tick execution.
	Parallel bool

	// Subsystems carries per-subsystem settings keyed by identifier.
	Subsystems map[string]subsystem.Settings
}

// New returns an empty model with allocated maps.
func New() *Model {
	return &Model{Subsystems: make(map[string]subsystem.Settings)}
}
