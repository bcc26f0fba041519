// Package clock is the mandatory core subsystem. It maintains the runtime's
// logical time: the current tick index and a fixed-timestep simulated clock.
// Resting on a fixed timestep rather than wall time keeps every run
// reproducible for a given tick count.
package clock

import (
	"context"

	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
)

// Feature is the identifier this subsystem registers under.
const Feature = subsystem.CoreFeature

// Resource keys owned by the clock.
const (
	// KeyTick holds the current tick index as uint64.
	KeyTick = subsystem.ResourceKey("clock.tick")

	// KeyTimeMS holds the simulated time in milliseconds as int64,
	// tick * tick_ms.
	KeyTimeMS = subsystem.ResourceKey("clock.time_ms")
)

// DefaultTickMS is the default simulated timestep per tick.
const DefaultTickMS = 16

// Subsystem advances logical time once per tick.
type Subsystem struct {
	tickMS int64
}

// New constructs the clock from its settings.
func New(settings subsystem.Settings) (subsystem.Subsystem, error) {
	tickMS, err := settings.Int("tick_ms", DefaultTickMS)
	if err != nil {
		return nil, err
	}
	return &Subsystem{tickMS: tickMS}, nil
}

// Init declares the clock's cells with their tick-zero values.
func (s *Subsystem) Init(ctx context.Context, view subsystem.View) error {
	if err := view.Declare(KeyTick, uint64(0)); err != nil {
		return err
	}
	return view.Declare(KeyTimeMS, int64(0))
}

// Tick publishes the current tick index and the simulated time.
func (s *Subsystem) Tick(ctx context.Context, view subsystem.View, tick uint64) error {
	if err := view.Set(KeyTick, tick); err != nil {
		return err
	}
	return view.Set(KeyTimeMS, int64(tick)*s.tickMS)
}

// Shutdown has nothing to release.
func (s *Subsystem) Shutdown(ctx context.Context, view subsystem.View) error {
	return nil
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the clock with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(Feature, New, subsystem.Descriptor{
		Writes: []subsystem.ResourceKey{KeyTick, KeyTimeMS},
	})
}
