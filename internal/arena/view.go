package arena

import "github.com/vk/tickcore/internal/subsystem"

// View is the concrete capability-scoped accessor handed to subsystems. It
// enforces the descriptor's declared sets on every call.
type View struct {
	arena *Arena
	desc  subsystem.Descriptor
}

var _ subsystem.View = (*View)(nil)

// Get returns the committed value of a key in the declared read set.
func (v *View) Get(key subsystem.ResourceKey) (any, error) {
	if !v.desc.ReadsKey(key) {
		return nil, &UnauthorizedAccessError{SubsystemID: v.desc.ID, Key: key, Op: "read"}
	}
	return v.arena.get(key)
}

// Set stages a value for a key in the declared write set.
func (v *View) Set(key subsystem.ResourceKey, value any) error {
	if !v.desc.WritesKey(key) {
		return &UnauthorizedAccessError{SubsystemID: v.desc.ID, Key: key, Op: "write"}
	}
	return v.arena.set(key, value)
}

// Declare allocates a cell for a key in the declared write set.
func (v *View) Declare(key subsystem.ResourceKey, initial any) error {
	if !v.desc.WritesKey(key) {
		return &UnauthorizedAccessError{SubsystemID: v.desc.ID, Key: key, Op: "declare"}
	}
	return v.arena.Declare(key, initial)
}
