package scheduler

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vk/tickcore/internal/ctxlog"
)

// runTickParallel executes the tick wave by wave, running the subsystems
// inside a wave concurrently. Waves are dependency levels, so no subsystem
// runs before its dependencies and no two concurrent subsystems share a
// resource key (overlap always materializes an edge, which forces separate
// waves). One wave's failure abandons the tick exactly like the sequential
// path; remaining waves never start.
func (s *Scheduler) runTickParallel(ctx context.Context, tick uint64) error {
	logger := ctxlog.FromContext(ctx)

	for _, wave := range s.order.Waves {
		var (
			mu    sync.Mutex
			first *TickFailure
		)
		g, gctx := errgroup.WithContext(ctx)
		for _, id := range wave {
			inst := s.instances[id]
			view := s.views[id]
			g.Go(func() error {
				if err := inst.Subsystem.Tick(gctx, view, tick); err != nil {
					mu.Lock()
					if first == nil {
						first = &TickFailure{Tick: tick, SubsystemID: inst.Descriptor.ID, Err: err}
					}
					mu.Unlock()
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			failure := TickFailure{Tick: tick, Err: err}
			if first != nil {
				failure = *first
			}
			return s.failTick(ctx, failure)
		}
		logger.Debug("Wave completed.", "size", len(wave), "tick", tick)
	}

	s.arena.Commit()
	return nil
}
