package dag

import (
	"context"
	"fmt"

	"github.com/vk/tickcore/internal/ctxlog"
	"github.com/vk/tickcore/internal/subsystem"
)

// Graph is the dependency graph over subsystem identifiers. It is built once
// from the active descriptor set and read-only afterwards.
type Graph struct {
	nodes map[string]*node
	// order preserves declaration order, which drives every deterministic
	// tie-break in this package.
	order []string
}

// node is a single vertex. Edges are stored by identifier in both directions
// so traversal never touches subsystem instances.
type node struct {
	id         string
	deps       map[string]struct{}
	dependents map[string]struct{}
}

// Build constructs and validates the graph for a descriptor set. It links the
// explicit DependsOn edges, infers writer-to-reader edges from overlapping
// resource declarations, and rejects duplicate writers. Cycle detection is
// deferred to TopoOrder so callers get the full cycle path with the order.
func Build(ctx context.Context, descriptors []subsystem.Descriptor) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting graph construction.", "descriptor_count", len(descriptors))

	g := &Graph{nodes: make(map[string]*node, len(descriptors))}

	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, exists := g.nodes[d.ID]; exists {
			return nil, fmt.Errorf("duplicate subsystem identifier %q in descriptor set", d.ID)
		}
		g.nodes[d.ID] = &node{
			id:         d.ID,
			deps:       make(map[string]struct{}),
			dependents: make(map[string]struct{}),
		}
		g.order = append(g.order, d.ID)
	}

	// Explicit edges first.
	for _, d := range descriptors {
		for _, dep := range d.DependsOn {
			if _, ok := g.nodes[dep]; !ok {
				return nil, fmt.Errorf("subsystem %q depends on unknown subsystem %q", d.ID, dep)
			}
			g.addEdge(dep, d.ID)
		}
	}

	// Implicit edges: the writer of a key precedes every reader of that key.
	// Overlapping access without such an edge would make tick results depend
	// on accidental ordering, so the edge is always materialized.
	writers := make(map[subsystem.ResourceKey]string)
	for _, d := range descriptors {
		for _, key := range d.Writes {
			if prev, taken := writers[key]; taken {
				return nil, fmt.Errorf("resource %q has more than one writer: %q and %q", key, prev, d.ID)
			}
			writers[key] = d.ID
		}
	}
	for _, d := range descriptors {
		for _, key := range d.Reads {
			writer, ok := writers[key]
			if !ok || writer == d.ID {
				continue
			}
			logger.Debug("Build: inferred edge from resource flow.", "writer", writer, "reader", d.ID, "key", key)
			g.addEdge(writer, d.ID)
		}
	}

	logger.Debug("Build: graph construction complete.", "node_count", len(g.nodes))
	return g, nil
}

// addEdge records that toID depends on fromID. Duplicate edges collapse.
func (g *Graph) addEdge(fromID, toID string) {
	g.nodes[toID].deps[fromID] = struct{}{}
	g.nodes[fromID].dependents[toID] = struct{}{}
}

// Dependencies returns the identifiers the given node depends on, in
// declaration order.
func (g *Graph) Dependencies(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return g.inDeclarationOrder(n.deps), nil
}

// Dependents returns the identifiers that depend on the given node, in
// declaration order.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return g.inDeclarationOrder(n.dependents), nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// inDeclarationOrder materializes a set of identifiers as a slice sorted by
// declaration order.
func (g *Graph) inDeclarationOrder(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for _, id := range g.order {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
