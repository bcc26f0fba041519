// Package telemetry samples runtime state every sample_every ticks and logs
// it through the contextual logger. It demonstrates a read-mostly subsystem
// sitting downstream of the clock and counter.
package telemetry

import (
	"context"

	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
	"github.com/vk/tickcore/modules/clock"
	"github.com/vk/tickcore/modules/counter"
)

// Feature is the identifier this subsystem registers under.
const Feature = "telemetry"

// KeySamples holds the number of samples taken as uint64.
const KeySamples = subsystem.ResourceKey("telemetry.samples")

// Subsystem logs a sample line every sampleEvery ticks.
type Subsystem struct {
	sampleEvery uint64
}

// New constructs the telemetry subsystem from its settings.
func New(settings subsystem.Settings) (subsystem.Subsystem, error) {
	every, err := settings.Int("sample_every", 1)
	if err != nil {
		return nil, err
	}
	if every < 1 {
		every = 1
	}
	return &Subsystem{sampleEvery: uint64(every)}, nil
}

// Init declares the sample counter cell.
func (s *Subsystem) Init(ctx context.Context, view subsystem.View) error {
	return view.Declare(KeySamples, uint64(0))
}

// Tick samples on the configured cadence.
func (s *Subsystem) Tick(ctx context.Context, view subsystem.View, tick uint64) error {
	if tick%s.sampleEvery != 0 {
		return nil
	}

	clockTick, err := view.Get(clock.KeyTick)
	if err != nil {
		return err
	}
	total, err := view.Get(counter.KeyTotal)
	if err != nil {
		return err
	}
	raw, err := view.Get(KeySamples)
	if err != nil {
		return err
	}
	samples := raw.(uint64) + 1

	ctxlog.FromContext(ctx).Info("Telemetry sample.",
		"tick", tick, "clock_tick", clockTick, "counter_total", total, "samples", samples)

	return view.Set(KeySamples, samples)
}

// Shutdown has nothing to release.
func (s *Subsystem) Shutdown(ctx context.Context, view subsystem.View) error {
	return nil
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the telemetry subsystem with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(Feature, New, subsystem.Descriptor{
		Reads:     []subsystem.ResourceKey{clock.KeyTick, counter.KeyTotal, KeySamples},
		Writes:    []subsystem.ResourceKey{KeySamples},
		DependsOn: []string{clock.Feature, counter.Feature},
	})
}
