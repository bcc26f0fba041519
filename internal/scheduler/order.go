package scheduler

import (
	"context"

	"github.com/vk/tickcore/internal/dag"
	"github.com/vk/tickcore/internal/subsystem"
)

// TickOrder is the fixed execution plan for every tick: the serialized order
// plus its partition into waves for the optional parallel mode.
type TickOrder struct {
	// IDs is the topological order; ties break by declaration order.
	IDs []string

	// Waves groups IDs into dependency levels. Concatenating the waves
	// yields IDs again.
	Waves [][]string
}

// ComputeOrder derives the tick order for a descriptor set. It fails with a
// *dag.CycleError when the dependency graph is not acyclic, and never returns
// a partial order.
func ComputeOrder(ctx context.Context, descriptors []subsystem.Descriptor) (*TickOrder, error) {
	g, err := dag.Build(ctx, descriptors)
	if err != nil {
		return nil, err
	}
	ids, err := g.TopoOrder()
	if err != nil {
		return nil, err
	}
	waves, err := g.Waves()
	if err != nil {
		return nil, err
	}
	return &TickOrder{IDs: ids, Waves: waves}, nil
}
