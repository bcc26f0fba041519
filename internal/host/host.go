package host

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/tickcore/internal/arena"
	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/scheduler"
	"github.com/vk/tickcore/internal/subsystem"
)

// Options configures one runtime instance.
type Options struct {
	// Registry supplies the feature-to-constructor table. Required.
	Registry *registry.Registry

	// Features is the enabled feature set. The mandatory core feature is
	// added if absent.
	Features subsystem.FeatureSet

	// Policy selects the reaction to per-tick failures.
	Policy scheduler.FailurePolicy

	// Parallel enables wave-concurrent tick execution. The sequential model
	// remains the reference; this is an optimization only.
	Parallel bool

	// Settings carries per-subsystem configuration, keyed by identifier.
	Settings map[string]subsystem.Settings
}

// Handle is a started runtime instance. One goroutine drives it: RunUntil
// must not race with Shutdown — cancel the run's context first, then shut
// down. TickIndex is safe from any goroutine.
type Handle struct {
	arena     *arena.Arena
	sched     *scheduler.Scheduler
	order     *scheduler.TickOrder
	instances map[string]*registry.Instance

	nextTick atomic.Uint64
	down     atomic.Bool

	mu    sync.Mutex
	diags []error
}

// Start assembles and initializes a runtime instance: build the subsystem set
// from the feature set, compute the tick order, then run every Init in tick
// order so each subsystem's dependencies have declared their resources before
// the dependents initialize. Any failure aborts the attempt, shuts down the
// already-initialized subsystems in reverse order, and surfaces as a
// *StartupError; the original cause stays reachable through errors.As.
func Start(ctx context.Context, opts Options) (*Handle, error) {
	logger := ctxlog.FromContext(ctx)

	if opts.Registry == nil {
		return nil, &StartupError{Err: fmt.Errorf("no registry provided")}
	}
	features := opts.Features.WithCore()
	logger.Debug("Host starting.", "features", []string(features), "policy", opts.Policy.String(), "parallel", opts.Parallel)

	instances, err := opts.Registry.Build(ctx, features, opts.Settings)
	if err != nil {
		return nil, &StartupError{Err: err}
	}

	descriptors := make([]subsystem.Descriptor, len(instances))
	for i, inst := range instances {
		descriptors[i] = inst.Descriptor
	}
	order, err := scheduler.ComputeOrder(ctx, descriptors)
	if err != nil {
		return nil, &StartupError{Err: err}
	}
	logger.Debug("Tick order computed.", "order", order.IDs, "waves", len(order.Waves))

	ar := arena.New()
	sched := scheduler.New(order, instances, ar, opts.Policy, opts.Parallel)

	h := &Handle{
		arena:     ar,
		sched:     sched,
		order:     order,
		instances: make(map[string]*registry.Instance, len(instances)),
	}
	for _, inst := range instances {
		h.instances[inst.Descriptor.ID] = inst
	}

	for i, id := range order.IDs {
		inst := h.instances[id]
		if err := inst.Subsystem.Init(ctx, sched.View(id)); err != nil {
			logger.Error("Subsystem init failed, unwinding startup.", "id", id, "error", err)
			h.unwindInit(ctx, order.IDs[:i])
			return nil, &StartupError{Err: fmt.Errorf("init subsystem %q: %w", id, err)}
		}
		logger.Debug("Subsystem initialized.", "id", id)
	}
	// Publish any values staged during init so tick 0 observes them.
	ar.Commit()

	logger.Info("Runtime host started.", "subsystems", len(instances))
	return h, nil
}

// unwindInit shuts down the already-initialized prefix in reverse order and
// releases the arena.
func (h *Handle) unwindInit(ctx context.Context, initialized []string) {
	logger := ctxlog.FromContext(ctx)
	for i := len(initialized) - 1; i >= 0; i-- {
		id := initialized[i]
		if err := h.instances[id].Subsystem.Shutdown(ctx, h.sched.View(id)); err != nil {
			logger.Warn("Subsystem shutdown failed during startup unwind.", "id", id, "error", err)
		}
	}
	h.arena.Release()
}

// RunUntil drives ticks until the stop condition reports done, the context is
// cancelled, or the failure policy aborts the run. A nil stop condition runs
// until cancellation. Both checks happen only between ticks, never mid-tick.
// Tick indices start at zero and continue across successive RunUntil calls.
func (h *Handle) RunUntil(ctx context.Context, stop StopCondition) error {
	if h.down.Load() {
		return ErrShutDown
	}
	logger := ctxlog.FromContext(ctx)

	for {
		next := h.nextTick.Load()
		if stop != nil && stop(next) {
			logger.Debug("Stop condition met.", "next_tick", next)
			return nil
		}
		select {
		case <-ctx.Done():
			logger.Debug("Run cancelled between ticks.", "next_tick", next)
			return ctx.Err()
		default:
		}

		if err := h.sched.RunTick(ctx, next); err != nil {
			return err
		}
		h.nextTick.Add(1)
	}
}

// Shutdown tears the instance down: every subsystem's Shutdown runs in
// reverse tick order, then the arena is released. Per-subsystem errors are
// collected as diagnostics, never propagated as failure. Shutdown is
// idempotent and safe after a failed RunUntil; repeated calls return the same
// diagnostics without re-running anything.
func (h *Handle) Shutdown(ctx context.Context) []error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.down.Swap(true) {
		return h.diags
	}
	logger := ctxlog.FromContext(ctx)

	for i := len(h.order.IDs) - 1; i >= 0; i-- {
		id := h.order.IDs[i]
		if err := h.instances[id].Subsystem.Shutdown(ctx, h.sched.View(id)); err != nil {
			logger.Warn("Subsystem shutdown reported an error.", "id", id, "error", err)
			h.diags = append(h.diags, fmt.Errorf("shutdown subsystem %q: %w", id, err))
		} else {
			logger.Debug("Subsystem shut down.", "id", id)
		}
	}
	h.arena.Release()
	logger.Info("Runtime host shut down.", "diagnostics", len(h.diags))
	return h.diags
}

// TickIndex returns the number of completed ticks, which is also the index
// the next tick will run under.
func (h *Handle) TickIndex() uint64 {
	return h.nextTick.Load()
}

// TickOrder returns the computed execution order.
func (h *Handle) TickOrder() []string {
	out := make([]string, len(h.order.IDs))
	copy(out, h.order.IDs)
	return out
}

// Failures returns the tick failures recorded so far.
func (h *Handle) Failures() []scheduler.TickFailure {
	return h.sched.Failures()
}

// Snapshot returns committed resource values for the given keys. Diagnostics
// and test oracle only; subsystems keep going through their views.
func (h *Handle) Snapshot(keys ...subsystem.ResourceKey) map[subsystem.ResourceKey]any {
	return h.arena.Snapshot(keys...)
}
