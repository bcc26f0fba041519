package registry

import (
	"context"
	"fmt"

	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/subsystem"
)

// Module is the interface all compiled-in modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// entry pairs a constructor with its immutable descriptor.
type entry struct {
	ctor subsystem.Constructor
	desc subsystem.Descriptor
}

// Registry holds the feature-to-constructor table for a single application
// instance. It is populated once at startup and never mutated afterwards.
type Registry struct {
	entries map[string]*entry
	// order preserves registration order; Build emits instances in this
	// order so downstream tie-breaks are deterministic.
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register adds a constructor under the given identifier. The descriptor's ID
// is forced to the identifier. It fails with ErrDuplicateIdentifier when the
// identifier is already taken.
func (r *Registry) Register(id string, ctor subsystem.Constructor, desc subsystem.Descriptor) error {
	desc.ID = id
	if err := desc.Validate(); err != nil {
		return err
	}
	if ctor == nil {
		return fmt.Errorf("subsystem %q registered without a constructor", id)
	}
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateIdentifier, id)
	}
	r.entries[id] = &entry{ctor: ctor, desc: desc}
	r.order = append(r.order, id)
	return nil
}

// MustRegister is Register for module init paths, where a duplicate
// identifier is a programmer error.
func (r *Registry) MustRegister(id string, ctor subsystem.Constructor, desc subsystem.Descriptor) {
	if err := r.Register(id, ctor, desc); err != nil {
		panic(err)
	}
}

// Descriptor returns the registered descriptor for an identifier.
func (r *Registry) Descriptor(id string) (subsystem.Descriptor, bool) {
	e, ok := r.entries[id]
	if !ok {
		return subsystem.Descriptor{}, false
	}
	return e.desc, true
}

// Identifiers returns all registered identifiers in registration order.
func (r *Registry) Identifiers() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Instance pairs a constructed subsystem with its descriptor.
type Instance struct {
	Descriptor subsystem.Descriptor
	Subsystem  subsystem.Subsystem
}

// Build constructs the subsystem set for an enabled feature set. Instances
// come back in registration order regardless of the order of features. It
// fails with *UnknownFeatureError when a feature has no registered
// constructor and with *MissingDependencyError when a selected descriptor
// depends on an identifier outside the selected set.
func (r *Registry) Build(ctx context.Context, features subsystem.FeatureSet, settings map[string]subsystem.Settings) ([]*Instance, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry building subsystem set.", "features", []string(features))

	for _, feature := range features {
		if _, ok := r.entries[feature]; !ok {
			return nil, &UnknownFeatureError{Feature: feature}
		}
	}

	selected := make(map[string]struct{}, len(features))
	for _, feature := range features {
		selected[feature] = struct{}{}
	}
	for _, feature := range features {
		for _, dep := range r.entries[feature].desc.DependsOn {
			if _, ok := selected[dep]; !ok {
				return nil, &MissingDependencyError{Subsystem: feature, Dependency: dep}
			}
		}
	}

	instances := make([]*Instance, 0, len(features))
	for _, id := range r.order {
		if _, ok := selected[id]; !ok {
			continue
		}
		e := r.entries[id]
		sub, err := e.ctor(settings[id])
		if err != nil {
			return nil, fmt.Errorf("constructing subsystem %q: %w", id, err)
		}
		logger.Debug("Registry constructed subsystem.", "id", id)
		instances = append(instances, &Instance{Descriptor: e.desc, Subsystem: sub})
	}

	logger.Debug("Registry build complete.", "instance_count", len(instances))
	return instances, nil
}
