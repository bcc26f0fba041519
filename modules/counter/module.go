// Package counter is a minimal stateful subsystem: it accumulates a running
// total, advancing by a configured step every tick the clock publishes.
package counter

import (
	"context"

	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
	"github.com/vk/tickcore/modules/clock"
)

// Feature is the identifier this subsystem registers under.
const Feature = "counter"

// KeyTotal holds the accumulated total as int64.
const KeyTotal = subsystem.ResourceKey("counter.total")

// Subsystem accumulates step once per tick.
type Subsystem struct {
	step int64
}

// New constructs the counter from its settings.
func New(settings subsystem.Settings) (subsystem.Subsystem, error) {
	step, err := settings.Int("step", 1)
	if err != nil {
		return nil, err
	}
	return &Subsystem{step: step}, nil
}

// Init declares the total cell.
func (s *Subsystem) Init(ctx context.Context, view subsystem.View) error {
	return view.Declare(KeyTotal, int64(0))
}

// Tick reads the committed total from the previous tick and stages the next.
func (s *Subsystem) Tick(ctx context.Context, view subsystem.View, tick uint64) error {
	raw, err := view.Get(KeyTotal)
	if err != nil {
		return err
	}
	return view.Set(KeyTotal, raw.(int64)+s.step)
}

// Shutdown has nothing to release.
func (s *Subsystem) Shutdown(ctx context.Context, view subsystem.View) error {
	return nil
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the counter with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(Feature, New, subsystem.Descriptor{
		Reads:     []subsystem.ResourceKey{clock.KeyTick, KeyTotal},
		Writes:    []subsystem.ResourceKey{KeyTotal},
		DependsOn: []string{clock.Feature},
	})
}
