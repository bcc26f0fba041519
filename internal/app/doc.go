// Package app wires the runtime together: logger, manifest loading, registry
// population, and the host lifecycle. It owns the process-level run (start,
// tick loop, shutdown) that cmd/cli translates into an exit status.
package app
