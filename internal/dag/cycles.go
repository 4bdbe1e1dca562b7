package dag

import (
	"fmt"
	"strings"

	"github.com/osmg/osmg/internal/addr"
)

// DetectCycles checks the graph for any cycles. It returns a non-nil
// error if a cycle is found, spelling out the cycle path.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[addr.Address]bool)
	temporary := make(map[addr.Address]bool)
	var stack []addr.Address

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			// The node is already in the recursion stack, so we have a cycle.
			return fmt.Errorf("cycle detected: %s", cyclePath(stack, n.id))
		}

		temporary[n.id] = true
		stack = append(stack, n.id)

		for _, dep := range sortedKeys(n.dependents) {
			if err := visit(g.nodes[dep]); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if !permanent[id] {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
	}

	return nil
}

// cyclePath renders the portion of the recursion stack that forms the
// cycle, closing it with the repeated address.
func cyclePath(stack []addr.Address, repeat addr.Address) string {
	start := 0
	for i, id := range stack {
		if id == repeat {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(stack)-start+1)
	for _, id := range stack[start:] {
		parts = append(parts, id.String())
	}
	parts = append(parts, repeat.String())
	return strings.Join(parts, " -> ")
}
