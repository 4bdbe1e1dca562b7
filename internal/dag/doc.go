// Package dag builds the Directed Acyclic Graph (DAG) of configuration
// blocks and derives the order they are evaluated in.
//
// Nodes are block addresses. Edges point from a block to the blocks
// that depend on it, so a valid evaluation order is any topological
// order of the graph. Ordering ties are broken by address string to
// keep evaluation deterministic across runs.
package dag
