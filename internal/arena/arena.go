package arena

import (
	"sync"

	"github.com/vk/tickcore/internal/subsystem"
)

// cell owns one piece of shared state. committed holds the value visible to
// readers; staged holds an in-flight write awaiting the tick boundary.
type cell struct {
	committed any
	staged    any
	dirty     bool
}

// Arena owns all shared resource cells for one runtime instance. Cells are
// declared during startup, accessed through views during ticks, and dropped
// when the host releases the arena at shutdown.
type Arena struct {
	mu       sync.RWMutex
	cells    map[subsystem.ResourceKey]*cell
	released bool
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{cells: make(map[subsystem.ResourceKey]*cell)}
}

// Declare allocates a cell for key with an immediately-committed initial
// value. It fails with ErrDuplicateKey if the key already exists.
func (a *Arena) Declare(key subsystem.ResourceKey, initial any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return ErrReleased
	}
	if _, exists := a.cells[key]; exists {
		return ErrDuplicateKey
	}
	a.cells[key] = &cell{committed: initial}
	return nil
}

// Has reports whether a cell exists for key.
func (a *Arena) Has(key subsystem.ResourceKey) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.cells[key]
	return ok
}

// ViewFor returns the capability-scoped accessor for a descriptor. The view
// exposes exactly the descriptor's declared reads and writes.
func (a *Arena) ViewFor(desc subsystem.Descriptor) *View {
	return &View{arena: a, desc: desc}
}

// Commit publishes all staged writes, making them the committed values
// observed by readers from the next tick on.
func (a *Arena) Commit() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range a.cells {
		if c.dirty {
			c.committed = c.staged
			c.staged = nil
			c.dirty = false
		}
	}
}

// Discard drops all staged writes, restoring the arena to the state committed
// by the last successful tick.
func (a *Arena) Discard() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, c := range a.cells {
		c.staged = nil
		c.dirty = false
	}
}

// Snapshot returns the committed values for the given keys. Keys without a
// cell are omitted. Intended for diagnostics and test oracles.
func (a *Arena) Snapshot(keys ...subsystem.ResourceKey) map[subsystem.ResourceKey]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[subsystem.ResourceKey]any, len(keys))
	for _, key := range keys {
		if c, ok := a.cells[key]; ok {
			out[key] = c.committed
		}
	}
	return out
}

// Release drops every cell. Further access through any view fails with
// ErrReleased. Releasing twice is a no-op.
func (a *Arena) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.released {
		return
	}
	a.released = true
	a.cells = make(map[subsystem.ResourceKey]*cell)
}

// get returns the committed value for key. Callers hold authorization.
func (a *Arena) get(key subsystem.ResourceKey) (any, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.released {
		return nil, ErrReleased
	}
	c, ok := a.cells[key]
	if !ok {
		return nil, ErrUnknownKey
	}
	return c.committed, nil
}

// set stages a value for key. Callers hold authorization; the scheduler's
// serialized order guarantees a single writer per key within a tick, so no
// per-cell locking is needed beyond the map guard.
func (a *Arena) set(key subsystem.ResourceKey, value any) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.released {
		return ErrReleased
	}
	c, ok := a.cells[key]
	if !ok {
		return ErrUnknownKey
	}
	c.staged = value
	c.dirty = true
	return nil
}
