package dag

// Waves partitions the topological order into dependency levels: every node
// in wave N has all its dependencies in waves < N. Nodes within one wave have
// no path between them, so a parallel scheduler may run a wave concurrently.
// Within a wave, nodes keep their topological (declaration) order.
func (g *Graph) Waves() ([][]string, error) {
	order, err := g.TopoOrder()
	if err != nil {
		return nil, err
	}

	level := make(map[string]int, len(order))
	maxLevel := 0
	for _, id := range order {
		l := 0
		for dep := range g.nodes[id].deps {
			if level[dep]+1 > l {
				l = level[dep] + 1
			}
		}
		level[id] = l
		if l > maxLevel {
			maxLevel = l
		}
	}

	waves := make([][]string, maxLevel+1)
	for _, id := range order {
		waves[level[id]] = append(waves[level[id]], id)
	}
	return waves, nil
}
