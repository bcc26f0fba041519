// Package journal keeps a bounded in-memory history of the counter's state,
// one entry per tick, oldest entries evicted first.
package journal

import (
	"context"

	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/registry"
	"github.com/vk/tickcore/internal/subsystem"
	"github.com/vk/tickcore/modules/counter"
)

// Feature is the identifier this subsystem registers under.
const Feature = "journal"

// KeyEntries holds the journal as []Entry, newest last.
const KeyEntries = subsystem.ResourceKey("journal.entries")

// DefaultCapacity bounds the journal when no capacity setting is given.
const DefaultCapacity = 16

// Entry is one journaled observation.
type Entry struct {
	Tick  uint64
	Total int64
}

// Subsystem appends one entry per tick, evicting beyond capacity.
type Subsystem struct {
	capacity int
}

// New constructs the journal from its settings.
func New(settings subsystem.Settings) (subsystem.Subsystem, error) {
	capacity, err := settings.Int("capacity", DefaultCapacity)
	if err != nil {
		return nil, err
	}
	if capacity < 1 {
		capacity = 1
	}
	return &Subsystem{capacity: int(capacity)}, nil
}

// Init declares the entries cell.
func (s *Subsystem) Init(ctx context.Context, view subsystem.View) error {
	return view.Declare(KeyEntries, []Entry(nil))
}

// Tick appends the counter's committed total for this tick.
func (s *Subsystem) Tick(ctx context.Context, view subsystem.View, tick uint64) error {
	raw, err := view.Get(KeyEntries)
	if err != nil {
		return err
	}
	total, err := view.Get(counter.KeyTotal)
	if err != nil {
		return err
	}

	prev := raw.([]Entry)
	entries := make([]Entry, 0, len(prev)+1)
	entries = append(entries, prev...)
	entries = append(entries, Entry{Tick: tick, Total: total.(int64)})
	if len(entries) > s.capacity {
		entries = entries[len(entries)-s.capacity:]
	}

	return view.Set(KeyEntries, entries)
}

// Shutdown logs the final journal length.
func (s *Subsystem) Shutdown(ctx context.Context, view subsystem.View) error {
	raw, err := view.Get(KeyEntries)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Journal closing.", "entries", len(raw.([]Entry)))
	return nil
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the journal with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(Feature, New, subsystem.Descriptor{
		Reads:     []subsystem.ResourceKey{counter.KeyTotal, KeyEntries},
		Writes:    []subsystem.ResourceKey{KeyEntries},
		DependsOn: []string{counter.Feature},
	})
}
