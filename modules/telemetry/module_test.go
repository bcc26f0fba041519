package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tickcore/internal/arena"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
	"github.com/vk/tickcore/modules/clock"
	"github.com/vk/tickcore/modules/counter"
)

// telemetryFixture declares the upstream cells the subsystem reads.
func telemetryFixture(t *testing.T) (*arena.Arena, subsystem.View) {
	t.Helper()
	ar := arena.New()
	require.NoError(t, ar.Declare(clock.KeyTick, uint64(0)))
	require.NoError(t, ar.Declare(counter.KeyTotal, int64(0)))

	r := registry.New()
	(&Module{}).Register(r)
	desc, ok := r.Descriptor(Feature)
	require.True(t, ok)
	return ar, ar.ViewFor(desc)
}

func TestTelemetry(t *testing.T) {
	ctx := context.Background()

	t.Run("samples every tick by default", func(t *testing.T) {
		ar, view := telemetryFixture(t)
		sub, err := New(nil)
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		for tick := uint64(0); tick < 4; tick++ {
			require.NoError(t, sub.Tick(ctx, view, tick))
			ar.Commit()
		}

		assert.Equal(t, uint64(4), ar.Snapshot(KeySamples)[KeySamples])
	})

	t.Run("sample_every thins the cadence", func(t *testing.T) {
		ar, view := telemetryFixture(t)
		sub, err := New(subsystem.Settings{"sample_every": cty.NumberIntVal(2)})
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		for tick := uint64(0); tick < 5; tick++ {
			require.NoError(t, sub.Tick(ctx, view, tick))
			ar.Commit()
		}

		// Ticks 0, 2 and 4 sample.
		assert.Equal(t, uint64(3), ar.Snapshot(KeySamples)[KeySamples])
	})

	t.Run("sample_every below one is clamped", func(t *testing.T) {
		ar, view := telemetryFixture(t)
		sub, err := New(subsystem.Settings{"sample_every": cty.NumberIntVal(0)})
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		require.NoError(t, sub.Tick(ctx, view, 0))
		ar.Commit()
		require.NoError(t, sub.Tick(ctx, view, 1))
		ar.Commit()

		assert.Equal(t, uint64(2), ar.Snapshot(KeySamples)[KeySamples])
	})

	t.Run("depends on clock and counter", func(t *testing.T) {
		r := registry.New()
		(&Module{}).Register(r)
		desc, ok := r.Descriptor(Feature)
		require.True(t, ok)
		assert.Equal(t, []string{clock.Feature, counter.Feature}, desc.DependsOn)
	})
}
