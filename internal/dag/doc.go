// Package dag builds and validates the subsystem dependency graph. It links
// explicit depends_on edges and edges inferred from resource flow (the writer
// of a key precedes its readers), rejects configurations with more than one
// writer per key, detects cycles with a full cycle path, and produces the
// deterministic topological order the scheduler executes each tick.
//
// The graph is an adjacency structure over identifiers, not over live
// subsystem instances, so validation and error reporting stay decoupled from
// object lifetime.
package dag
