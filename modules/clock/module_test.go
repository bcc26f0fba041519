package clock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tickcore/internal/arena"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
)

func clockView(t *testing.T, ar *arena.Arena) subsystem.View {
	t.Helper()
	r := registry.New()
	(&Module{}).Register(r)
	desc, ok := r.Descriptor(Feature)
	require.True(t, ok)
	return ar.ViewFor(desc)
}

func TestClock(t *testing.T) {
	ctx := context.Background()

	t.Run("registers under the core feature", func(t *testing.T) {
		assert.Equal(t, subsystem.CoreFeature, Feature)
	})

	t.Run("init declares tick-zero values", func(t *testing.T) {
		ar := arena.New()
		sub, err := New(nil)
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, clockView(t, ar)))

		snap := ar.Snapshot(KeyTick, KeyTimeMS)
		assert.Equal(t, uint64(0), snap[KeyTick])
		assert.Equal(t, int64(0), snap[KeyTimeMS])
	})

	t.Run("advances fixed-timestep time", func(t *testing.T) {
		ar := arena.New()
		view := clockView(t, ar)
		sub, err := New(nil)
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		require.NoError(t, sub.Tick(ctx, view, 3))
		ar.Commit()

		snap := ar.Snapshot(KeyTick, KeyTimeMS)
		assert.Equal(t, uint64(3), snap[KeyTick])
		assert.Equal(t, int64(3*DefaultTickMS), snap[KeyTimeMS])
	})

	t.Run("tick_ms setting scales simulated time", func(t *testing.T) {
		ar := arena.New()
		view := clockView(t, ar)
		sub, err := New(subsystem.Settings{"tick_ms": cty.NumberIntVal(100)})
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		require.NoError(t, sub.Tick(ctx, view, 5))
		ar.Commit()

		assert.Equal(t, int64(500), ar.Snapshot(KeyTimeMS)[KeyTimeMS])
	})

	t.Run("malformed setting fails construction", func(t *testing.T) {
		_, err := New(subsystem.Settings{"tick_ms": cty.StringVal("fast")})
		assert.Error(t, err)
	})
}
