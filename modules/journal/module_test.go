package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/tickcore/internal/arena"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
	"github.com/vk/tickcore/modules/counter"
)

// journalFixture declares the counter cell the journal observes and returns a
// setter for driving it between ticks.
func journalFixture(t *testing.T) (*arena.Arena, subsystem.View, func(total int64)) {
	t.Helper()
	ar := arena.New()
	require.NoError(t, ar.Declare(counter.KeyTotal, int64(0)))

	r := registry.New()
	(&Module{}).Register(r)
	desc, ok := r.Descriptor(Feature)
	require.True(t, ok)

	writer := ar.ViewFor(subsystem.Descriptor{
		ID:     "producer",
		Writes: []subsystem.ResourceKey{counter.KeyTotal},
	})
	setTotal := func(total int64) {
		require.NoError(t, writer.Set(counter.KeyTotal, total))
	}
	return ar, ar.ViewFor(desc), setTotal
}

func TestJournal(t *testing.T) {
	ctx := context.Background()

	t.Run("records one entry per tick", func(t *testing.T) {
		ar, view, setTotal := journalFixture(t)
		sub, err := New(nil)
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		for tick := uint64(0); tick < 3; tick++ {
			setTotal(int64(tick) * 10)
			require.NoError(t, sub.Tick(ctx, view, tick))
			ar.Commit()
		}

		entries := ar.Snapshot(KeyEntries)[KeyEntries].([]Entry)
		assert.Equal(t, []Entry{
			{Tick: 0, Total: 0},
			{Tick: 1, Total: 0},
			{Tick: 2, Total: 10},
		}, entries, "each entry holds the total committed before its tick")
	})

	t.Run("evicts oldest entries beyond capacity", func(t *testing.T) {
		ar, view, setTotal := journalFixture(t)
		sub, err := New(subsystem.Settings{"capacity": cty.NumberIntVal(2)})
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		for tick := uint64(0); tick < 5; tick++ {
			setTotal(int64(tick))
			require.NoError(t, sub.Tick(ctx, view, tick))
			ar.Commit()
		}

		entries := ar.Snapshot(KeyEntries)[KeyEntries].([]Entry)
		require.Len(t, entries, 2)
		assert.Equal(t, uint64(3), entries[0].Tick)
		assert.Equal(t, uint64(4), entries[1].Tick)
	})

	t.Run("capacity below one is clamped", func(t *testing.T) {
		ar, view, setTotal := journalFixture(t)
		sub, err := New(subsystem.Settings{"capacity": cty.NumberIntVal(0)})
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		for tick := uint64(0); tick < 3; tick++ {
			setTotal(int64(tick))
			require.NoError(t, sub.Tick(ctx, view, tick))
			ar.Commit()
		}

		entries := ar.Snapshot(KeyEntries)[KeyEntries].([]Entry)
		assert.Len(t, entries, 1)
	})

	t.Run("shutdown reads the final journal", func(t *testing.T) {
		ar, view, _ := journalFixture(t)
		sub, err := New(nil)
		require.NoError(t, err)
		require.NoError(t, sub.Init(ctx, view))

		require.NoError(t, sub.Tick(ctx, view, 0))
		ar.Commit()
		assert.NoError(t, sub.Shutdown(ctx, view))
	})
}
