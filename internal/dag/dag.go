package dag

import (
	"fmt"
	"sort"
	"sync"

	"github.com/osmg/osmg/internal/addr"
)

// Graph is a collection of nodes and their dependencies, representing a
// DAG. All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by block address.
	nodes map[addr.Address]*node
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using
// addresses), not by direct struct manipulation.
type node struct {
	// id is the block address of the node.
	id addr.Address
	// deps holds the set of nodes that this node depends on (predecessors).
	deps map[addr.Address]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[addr.Address]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[addr.Address]*node),
	}
}

// AddNode adds a new node with the given address to the graph. Adding
// the same address twice is an error.
func (g *Graph) AddNode(id addr.Address) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("duplicate node: %s", id)
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[addr.Address]*node),
		dependents: make(map[addr.Address]*node),
	}
	return nil
}

// Has reports whether a node with the given address exists.
func (g *Graph) Has(id addr.Address) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return len(g.nodes)
}

// AddEdge creates a directed edge from the `from` node to the `to`
// node. This signifies that `to` has a dependency on `from`. An error
// is returned if either node does not exist or if the edge would create
// a self-reference. Adding an existing edge again does nothing.
func (g *Graph) AddEdge(from, to addr.Address) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", from, from)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("source node not found: %s", from)
	}

	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("destination node not found: %s", to)
	}

	toNode.deps[from] = fromNode
	fromNode.dependents[to] = toNode

	return nil
}

// Dependencies returns the sorted addresses that the given node depends on.
func (g *Graph) Dependencies(id addr.Address) ([]addr.Address, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the sorted addresses that depend on the given node.
func (g *Graph) Dependents(id addr.Address) ([]addr.Address, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

func sortedKeys(m map[addr.Address]*node) []addr.Address {
	out := make([]addr.Address, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
