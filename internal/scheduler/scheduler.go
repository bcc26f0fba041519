package scheduler

import (
	"context"
	"sync"

	"github.com/vk/tickcore/internal/arena"
	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
)

// Scheduler executes one tick at a time over a fixed subsystem set. It owns
// the capability views and the commit/discard decision at every tick
// boundary; the host owns when ticks happen.
type Scheduler struct {
	order    *TickOrder
	arena    *arena.Arena
	policy   FailurePolicy
	parallel bool

	instances map[string]*registry.Instance
	views     map[string]subsystem.View

	mu       sync.Mutex
	failures []TickFailure
}

// New creates a scheduler for the given order and instances. Every instance
// gets a capability view scoped to its descriptor.
func New(order *TickOrder, instances []*registry.Instance, ar *arena.Arena, policy FailurePolicy, parallel bool) *Scheduler {
	s := &Scheduler{
		order:     order,
		arena:     ar,
		policy:    policy,
		parallel:  parallel,
		instances: make(map[string]*registry.Instance, len(instances)),
		views:     make(map[string]subsystem.View, len(instances)),
	}
	for _, inst := range instances {
		s.instances[inst.Descriptor.ID] = inst
		s.views[inst.Descriptor.ID] = ar.ViewFor(inst.Descriptor)
	}
	return s
}

// View returns the capability view for an instance. Used by the host during
// init and shutdown so every lifecycle phase sees identical authorization.
func (s *Scheduler) View(id string) subsystem.View {
	return s.views[id]
}

// Failures returns every recorded tick failure, in occurrence order.
func (s *Scheduler) Failures() []TickFailure {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TickFailure, len(s.failures))
	copy(out, s.failures)
	return out
}

// RunTick invokes every subsystem once for the given tick index. On success
// the tick's staged writes are committed. On a subsystem failure the rest of
// the tick is abandoned and its staged writes discarded; the return value is
// nil under ContinueOnFailure and a *FatalTickError under AbortOnFailure.
func (s *Scheduler) RunTick(ctx context.Context, tick uint64) error {
	if s.parallel {
		return s.runTickParallel(ctx, tick)
	}

	logger := ctxlog.FromContext(ctx)
	for _, id := range s.order.IDs {
		inst := s.instances[id]
		if err := inst.Subsystem.Tick(ctx, s.views[id], tick); err != nil {
			return s.failTick(ctx, TickFailure{Tick: tick, SubsystemID: id, Err: err})
		}
		logger.Debug("Subsystem ticked.", "id", id, "tick", tick)
	}

	s.arena.Commit()
	return nil
}

// failTick records a failure, discards the tick's staged writes, and applies
// the failure policy.
func (s *Scheduler) failTick(ctx context.Context, failure TickFailure) error {
	logger := ctxlog.FromContext(ctx)
	logger.Warn("Subsystem failed, abandoning tick.",
		"id", failure.SubsystemID, "tick", failure.Tick, "error", failure.Err)

	s.mu.Lock()
	s.failures = append(s.failures, failure)
	s.mu.Unlock()

	s.arena.Discard()

	if s.policy == AbortOnFailure {
		return &FatalTickError{Failure: failure}
	}
	return nil
}
