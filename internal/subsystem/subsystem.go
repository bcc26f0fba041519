package subsystem

import "context"

// View is a capability-scoped accessor onto the resource arena. A view only
// exposes the keys its descriptor declared: reads are readable, writes are
// writable and declarable. Any access outside the declared sets fails at the
// accessor boundary rather than silently succeeding.
type View interface {
	// Get returns the committed value of a key in the declared read set.
	// Committed means the value as published by the most recent prior tick;
	// writes staged during the current tick are never visible to readers.
	Get(key ResourceKey) (any, error)

	// Set stages a new value for a key in the declared write set. The value
	// becomes visible to readers when the tick commits.
	Set(key ResourceKey, value any) error

	// Declare allocates a new arena cell for a key in the declared write set.
	// Intended for Init; the initial value is immediately committed.
	Declare(key ResourceKey, initial any) error
}

// Subsystem is the uniform lifecycle every unit of work implements.
type Subsystem interface {
	// Init runs once, before the first tick, in tick order. Dependencies are
	// initialized first, so any cells they declare already exist. A non-nil
	// error aborts the whole startup attempt.
	Init(ctx context.Context, view View) error

	// Tick runs once per tick in tick order. It may only touch cells through
	// the view, per the descriptor's declared sets.
	Tick(ctx context.Context, view View, tick uint64) error

	// Shutdown runs in reverse tick order during teardown. Errors are
	// recorded as diagnostics and never fail the shutdown sequence.
	Shutdown(ctx context.Context, view View) error
}

// Constructor builds a subsystem instance from its configured settings.
type Constructor func(settings Settings) (Subsystem, error)
