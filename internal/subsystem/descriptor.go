package subsystem

import "fmt"

// ResourceKey is a stable handle identifying one arena-owned cell.
type ResourceKey string

// Descriptor is the static metadata for a subsystem: its identity and its
// resource/dependency contract. Descriptors are created once, at registry
// population time, and are immutable thereafter.
type Descriptor struct {
	// ID is the unique subsystem identifier. It doubles as the feature name
	// that selects the subsystem into a build configuration.
	ID string

	// Reads is the set of keys the subsystem may read during Init and Tick.
	Reads []ResourceKey

	// Writes is the set of keys the subsystem may declare and write. A key
	// has at most one writer across the whole active set.
	Writes []ResourceKey

	// DependsOn names subsystems that must be ordered before this one. Edges
	// implied by resource flow (another subsystem writing a key this one
	// reads) are inferred by the graph builder and need not be listed.
	DependsOn []string
}

// ReadsKey reports whether key is in the declared read set.
func (d Descriptor) ReadsKey(key ResourceKey) bool {
	for _, k := range d.Reads {
		if k == key {
			return true
		}
	}
	return false
}

// WritesKey reports whether key is in the declared write set.
func (d Descriptor) WritesKey(key ResourceKey) bool {
	for _, k := range d.Writes {
		if k == key {
			return true
		}
	}
	return false
}

// Validate checks the descriptor's internal consistency.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("descriptor has empty identifier")
	}
	seen := make(map[ResourceKey]struct{}, len(d.Reads)+len(d.Writes))
	for _, k := range d.Reads {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("subsystem %q declares key %q twice in its read set", d.ID, k)
		}
		seen[k] = struct{}{}
	}
	seen = make(map[ResourceKey]struct{}, len(d.Writes))
	for _, k := range d.Writes {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("subsystem %q declares key %q twice in its write set", d.ID, k)
		}
		seen[k] = struct{}{}
	}
	for _, dep := range d.DependsOn {
		if dep == d.ID {
			return fmt.Errorf("subsystem %q depends on itself", d.ID)
		}
	}
	return nil
}
