// Package arena owns the runtime's shared mutable state. Every piece of state
// a subsystem exchanges with another lives in an arena cell; subsystems borrow
// access through capability-scoped views and never hold a cell directly.
//
// Writes are staged: during a tick, Set records the new value in a staging
// slot while readers keep observing the value committed at the end of the
// previous tick. The host commits staged writes at the tick boundary, or
// discards them when the tick fails, so a failed tick leaves no trace.
package arena
