// Package building holds the physical model: levels, gridlines, nodes,
// and the frame elements that connect them.
package building

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/osmg/osmg/internal/geom"
)

var ids atomic.Int64

// nextID hands out model-wide unique identifiers.
func nextID() int64 { return ids.Add(1) }

// Restraint describes how a node is supported. Free, pinned and fixed
// are user-assignable through levels; parent and internal are assigned
// automatically.
type Restraint string

const (
	RestraintFree     Restraint = "free"
	RestraintPinned   Restraint = "pinned"
	RestraintFixed    Restraint = "fixed"
	RestraintParent   Restraint = "parent"
	RestraintInternal Restraint = "internal"
)

// ParseLevelRestraint validates a restraint name for level definitions.
func ParseLevelRestraint(s string) (Restraint, error) {
	switch r := Restraint(s); r {
	case RestraintFree, RestraintPinned, RestraintFixed:
		return r, nil
	}
	return "", fmt.Errorf("invalid restraint type: %s", s)
}

// ErrNodeExists reports a positional duplicate in a node collection.
var ErrNodeExists = errors.New("node already exists")

// Node is a structural node. Mass and loads are expressed in the global
// system; indices 0-2 are translations x, y, z and 3-5 rotations.
// LoadFl and the floor part of Mass come from preprocessing.
type Node struct {
	UID           int64
	Coords        geom.Vec3
	Restraint     Restraint
	Mass          [6]float64
	Load          [6]float64
	LoadFl        [6]float64
	TributaryArea float64
}

// NewNode creates a node at the given coordinates.
func NewNode(coords geom.Vec3, restraint Restraint) *Node {
	return &Node{UID: nextID(), Coords: coords, Restraint: restraint}
}

// SamePlace reports positional equality within the coordinate fudge
// distance.
func (n *Node) SamePlace(other *Node) bool {
	return n.Coords.Dist(other.Coords) < geom.Epsilon
}

// OrderKey is the plan-ordering key of the node.
func (n *Node) OrderKey() float64 {
	return n.Coords.Y*geom.Alpha + n.Coords.X
}

// LoadTotal sums the generic and floor load contributions.
func (n *Node) LoadTotal() [6]float64 {
	var out [6]float64
	for i := range out {
		out[i] = n.Load[i] + n.LoadFl[i]
	}
	return out
}

// Nodes collects the primary nodes of a level, sorted on the plan.
type Nodes struct {
	list []*Node
}

// Add inserts a node. Two nodes cannot occupy the same point.
func (ns *Nodes) Add(n *Node) error {
	for _, other := range ns.list {
		if other.SamePlace(n) {
			return fmt.Errorf("%w: (%g, %g, %g)", ErrNodeExists,
				n.Coords.X, n.Coords.Y, n.Coords.Z)
		}
	}
	ns.list = append(ns.list, n)
	sort.SliceStable(ns.list, func(i, j int) bool {
		return ns.list[i].OrderKey() < ns.list[j].OrderKey()
	})
	return nil
}

// Find returns the node occupying the given point, if any.
func (ns *Nodes) Find(coords geom.Vec3) *Node {
	probe := Node{Coords: coords}
	for _, n := range ns.list {
		if n.SamePlace(&probe) {
			return n
		}
	}
	return nil
}

// List returns the nodes in plan order.
func (ns *Nodes) List() []*Node {
	return ns.list
}
