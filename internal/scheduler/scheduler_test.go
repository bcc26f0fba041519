package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tickcore/internal/arena"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
)

// stubSub is a scriptable subsystem for scheduler tests.
type stubSub struct {
	tickFn func(ctx context.Context, view subsystem.View, tick uint64) error
}

func (s *stubSub) Init(context.Context, subsystem.View) error {
	return nil
}

func (s *stubSub) Tick(ctx context.Context, view subsystem.View, tick uint64) error {
	if s.tickFn == nil {
		return nil
	}
	return s.tickFn(ctx, view, tick)
}

func (s *stubSub) Shutdown(context.Context, subsystem.View) error {
	return nil
}

func instance(desc subsystem.Descriptor, tickFn func(ctx context.Context, view subsystem.View, tick uint64) error) *registry.Instance {
	return &registry.Instance{Descriptor: desc, Subsystem: &stubSub{tickFn: tickFn}}
}

func record(log *[]string, id string) func(context.Context, subsystem.View, uint64) error {
	return func(context.Context, subsystem.View, uint64) error {
		*log = append(*log, id)
		return nil
	}
}

func mustOrder(t *testing.T, instances []*registry.Instance) *TickOrder {
	t.Helper()
	descriptors := make([]subsystem.Descriptor, len(instances))
	for i, inst := range instances {
		descriptors[i] = inst.Descriptor
	}
	order, err := ComputeOrder(context.Background(), descriptors)
	require.NoError(t, err)
	return order
}

func TestComputeOrder(t *testing.T) {
	t.Run("orders dependencies first", func(t *testing.T) {
		order, err := ComputeOrder(context.Background(), []subsystem.Descriptor{
			{ID: "y", DependsOn: []string{"x"}},
			{ID: "x"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y"}, order.IDs)
		assert.Equal(t, [][]string{{"x"}, {"y"}}, order.Waves)
	})

	t.Run("cycle fails without partial order", func(t *testing.T) {
		order, err := ComputeOrder(context.Background(), []subsystem.Descriptor{
			{ID: "a", DependsOn: []string{"b"}},
			{ID: "b", DependsOn: []string{"a"}},
		})
		assert.Nil(t, order)
		assert.ErrorContains(t, err, "dependency cycle detected: a -> b -> a")
	})
}

func TestRunTickSequential(t *testing.T) {
	ctx := context.Background()

	t.Run("invokes every subsystem in tick order", func(t *testing.T) {
		var log []string
		instances := []*registry.Instance{
			instance(subsystem.Descriptor{ID: "second", DependsOn: []string{"first"}}, record(&log, "second")),
			instance(subsystem.Descriptor{ID: "first"}, record(&log, "first")),
			instance(subsystem.Descriptor{ID: "third", DependsOn: []string{"second"}}, record(&log, "third")),
		}

		s := New(mustOrder(t, instances), instances, arena.New(), AbortOnFailure, false)
		require.NoError(t, s.RunTick(ctx, 0))
		assert.Equal(t, []string{"first", "second", "third"}, log)
	})

	t.Run("commits staged writes at the tick boundary", func(t *testing.T) {
		ar := arena.New()
		require.NoError(t, ar.Declare("value", uint64(0)))

		writer := instance(subsystem.Descriptor{
			ID:     "writer",
			Writes: []subsystem.ResourceKey{"value"},
		}, func(_ context.Context, view subsystem.View, tick uint64) error {
			return view.Set("value", tick+1)
		})

		var seen []uint64
		reader := instance(subsystem.Descriptor{
			ID:    "reader",
			Reads: []subsystem.ResourceKey{"value"},
		}, func(_ context.Context, view subsystem.View, _ uint64) error {
			raw, err := view.Get("value")
			if err != nil {
				return err
			}
			seen = append(seen, raw.(uint64))
			return nil
		})

		instances := []*registry.Instance{writer, reader}
		s := New(mustOrder(t, instances), instances, ar, AbortOnFailure, false)

		for tick := uint64(0); tick < 3; tick++ {
			require.NoError(t, s.RunTick(ctx, tick))
		}

		// The reader always observes the value committed by the previous
		// tick, even though the writer runs earlier in the same tick.
		assert.Equal(t, []uint64{0, 1, 2}, seen)
		assert.Equal(t, uint64(3), ar.Snapshot("value")["value"])
	})
}

func TestRunTickFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	// fixture: "bad" fails on tick 1, "late" runs after it, "early" before.
	build := func(policy FailurePolicy) (*Scheduler, *arena.Arena, *[]string) {
		ar := arena.New()
		require.NoError(t, ar.Declare("touched", false))

		var log []string
		early := instance(subsystem.Descriptor{ID: "early", Writes: []subsystem.ResourceKey{"touched"}},
			func(_ context.Context, view subsystem.View, _ uint64) error {
				log = append(log, "early")
				return view.Set("touched", true)
			})
		bad := instance(subsystem.Descriptor{ID: "bad", DependsOn: []string{"early"}},
			func(_ context.Context, _ subsystem.View, tick uint64) error {
				log = append(log, "bad")
				if tick == 1 {
					return boom
				}
				return nil
			})
		late := instance(subsystem.Descriptor{ID: "late", DependsOn: []string{"bad"}}, record(&log, "late"))

		instances := []*registry.Instance{early, bad, late}
		return New(mustOrder(t, instances), instances, ar, policy, false), ar, &log
	}

	t.Run("continue policy abandons the tick and keeps running", func(t *testing.T) {
		s, ar, log := build(ContinueOnFailure)

		require.NoError(t, s.RunTick(ctx, 0))
		require.NoError(t, s.RunTick(ctx, 1), "failure is swallowed under the continue policy")
		require.NoError(t, s.RunTick(ctx, 2))

		// "late" is skipped on the failed tick only.
		assert.Equal(t, []string{"early", "bad", "late", "early", "bad", "early", "bad", "late"}, *log)

		failures := s.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, uint64(1), failures[0].Tick)
		assert.Equal(t, "bad", failures[0].SubsystemID)
		assert.ErrorIs(t, failures[0].Err, boom)

		// The failed tick's staged write was discarded, but the following
		// successful tick committed normally.
		assert.Equal(t, true, ar.Snapshot("touched")["touched"])
	})

	t.Run("abort policy surfaces a fatal error", func(t *testing.T) {
		s, _, _ := build(AbortOnFailure)

		require.NoError(t, s.RunTick(ctx, 0))
		err := s.RunTick(ctx, 1)

		var fatal *FatalTickError
		require.ErrorAs(t, err, &fatal)
		assert.Equal(t, "bad", fatal.Failure.SubsystemID)
		assert.Equal(t, uint64(1), fatal.Failure.Tick)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("failed tick leaves no committed trace", func(t *testing.T) {
		ar := arena.New()
		require.NoError(t, ar.Declare("value", 0))

		writer := instance(subsystem.Descriptor{ID: "writer", Writes: []subsystem.ResourceKey{"value"}},
			func(_ context.Context, view subsystem.View, _ uint64) error {
				return view.Set("value", 99)
			})
		failer := instance(subsystem.Descriptor{ID: "failer", DependsOn: []string{"writer"}},
			func(context.Context, subsystem.View, uint64) error {
				return boom
			})

		instances := []*registry.Instance{writer, failer}
		s := New(mustOrder(t, instances), instances, ar, ContinueOnFailure, false)

		require.NoError(t, s.RunTick(ctx, 0))
		assert.Equal(t, 0, ar.Snapshot("value")["value"])
	})
}

func TestParseFailurePolicy(t *testing.T) {
	p, err := ParseFailurePolicy("abort")
	require.NoError(t, err)
	assert.Equal(t, AbortOnFailure, p)

	p, err = ParseFailurePolicy("continue")
	require.NoError(t, err)
	assert.Equal(t, ContinueOnFailure, p)

	p, err = ParseFailurePolicy("")
	require.NoError(t, err)
	assert.Equal(t, AbortOnFailure, p, "abort is the default")

	_, err = ParseFailurePolicy("explode")
	assert.ErrorContains(t, err, "invalid failure policy")
}
