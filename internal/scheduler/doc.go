// Package scheduler drives subsystem execution within a tick. It computes the
// deterministic tick order from the dependency graph and invokes every
// subsystem once per tick in that order, sequentially by default.
//
// Failure handling follows the policy the host selects at construction time:
// a failing subsystem always aborts the remainder of its tick and discards
// that tick's staged writes; the policy decides whether the run then
// continues with the next tick or stops with a fatal error. The order is
// computed once and never changes on failure.
//
// The optional parallel mode executes the order wave by wave, running the
// subsystems inside one wave concurrently. It is a pure optimization; the
// sequential mode is the reference for every correctness question.
package scheduler
