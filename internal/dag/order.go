package dag

import (
	"fmt"
	"sort"

	"github.com/osmg/osmg/internal/addr"
)

// TopologicalOrder returns the node addresses in an order where every
// node comes after all of its dependencies. Among the nodes ready at
// each step the one with the smallest address string goes first, so the
// order is stable for a given graph. An error is returned if the graph
// has a cycle.
func (g *Graph) TopologicalOrder() ([]addr.Address, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Kahn's algorithm over a ready list kept sorted by address.
	inDegree := make(map[addr.Address]int, len(g.nodes))
	var ready []addr.Address
	for id, n := range g.nodes {
		inDegree[id] = len(n.deps)
		if len(n.deps) == 0 {
			ready = append(ready, id)
		}
	}
	sortAddrs(ready)

	order := make([]addr.Address, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var released []addr.Address
		for _, dep := range sortedKeys(g.nodes[id].dependents) {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				released = append(released, dep)
			}
		}
		if len(released) > 0 {
			ready = append(ready, released...)
			sortAddrs(ready)
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("cannot order graph: %d of %d nodes are part of a cycle",
			len(g.nodes)-len(order), len(g.nodes))
	}
	return order, nil
}

func sortAddrs(ids []addr.Address) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
