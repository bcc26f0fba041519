package dag

// TopoOrder returns a topological order of the graph: every dependency
// precedes its dependents. Ties break by declaration order, so the result is
// stable across runs. If the graph contains a cycle, a *CycleError naming the
// full cycle path is returned and no partial order is produced.
func (g *Graph) TopoOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		indegree[id] = len(n.deps)
	}

	emitted := make(map[string]bool, len(g.nodes))
	out := make([]string, 0, len(g.nodes))

	for len(out) < len(g.order) {
		picked := ""
		for _, id := range g.order {
			if !emitted[id] && indegree[id] == 0 {
				picked = id
				break
			}
		}
		if picked == "" {
			// Every remaining node has an unsatisfied dependency, which can
			// only happen when those nodes form at least one cycle.
			return nil, g.findCycle(emitted)
		}

		emitted[picked] = true
		out = append(out, picked)
		for dep := range g.nodes[picked].dependents {
			indegree[dep]--
		}
	}

	return out, nil
}

// findCycle locates one cycle among the nodes not yet emitted and reports it
// as a path along dependency edges, starting node repeated at the end. The
// search visits nodes and neighbors in declaration order, so the reported
// cycle is deterministic.
func (g *Graph) findCycle(emitted map[string]bool) *CycleError {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(g.nodes))
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = onStack
		stack = append(stack, id)

		for _, dep := range g.inDeclarationOrder(g.nodes[id].deps) {
			if emitted[dep] {
				continue
			}
			switch state[dep] {
			case onStack:
				for i, s := range stack {
					if s == dep {
						cycle = append(append([]string{}, stack[i:]...), dep)
						return true
					}
				}
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}

		state[id] = done
		stack = stack[:len(stack)-1]
		return false
	}

	for _, id := range g.order {
		if emitted[id] || state[id] != unvisited {
			continue
		}
		if visit(id) {
			return &CycleError{Path: cycle}
		}
	}

	// Unreachable when callers only invoke findCycle after a stalled sort.
	return &CycleError{Path: nil}
}
