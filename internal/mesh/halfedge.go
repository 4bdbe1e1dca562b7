// Package mesh implements the planar halfedge data structure used for
// floor tributary-area analysis and for cross-section outlines, along
// with the polygon math that goes with it.
package mesh

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/osmg/osmg/internal/geom"
)

var (
	vertexIDs   atomic.Int64
	edgeIDs     atomic.Int64
	halfedgeIDs atomic.Int64
)

// Vertex is a point on the plane. It knows the edges connected to it and
// the halfedges leaving from it.
type Vertex struct {
	UID       int64
	Coords    geom.Vec2
	Edges     []*Edge
	Halfedges []*Halfedge
}

// NewVertex creates a vertex at the given coordinates.
func NewVertex(coords geom.Vec2) *Vertex {
	return &Vertex{UID: vertexIDs.Add(1), Coords: coords}
}

// Edge connects two vertices and owns up to two halfedges, one leaving
// from each end.
type Edge struct {
	UID int64
	VI  *Vertex
	VJ  *Vertex
	HI  *Halfedge
	HJ  *Halfedge
}

// NewEdge creates an edge between two vertices and registers it with
// both of them.
func NewEdge(vi, vj *Vertex) *Edge {
	e := &Edge{UID: edgeIDs.Add(1), VI: vi, VJ: vj}
	vi.Edges = append(vi.Edges, e)
	vj.Edges = append(vj.Edges, e)
	return e
}

// OtherVertex returns the edge's vertex that is not the given one. The
// edge must be connected to the given vertex.
func (e *Edge) OtherVertex(v *Vertex) *Vertex {
	switch v {
	case e.VI:
		return e.VJ
	case e.VJ:
		return e.VI
	}
	panic(fmt.Sprintf("mesh: edge E%d is not connected to vertex V%d", e.UID, v.UID))
}

// DefineHalfedge creates the halfedge of this edge that leaves from the
// given vertex. Each of the two halfedges can only be defined once.
func (e *Edge) DefineHalfedge(v *Vertex) (*Halfedge, error) {
	switch v {
	case e.VI:
		if e.HI != nil {
			return nil, fmt.Errorf("halfedge leaving V%d already defined on E%d", v.UID, e.UID)
		}
		e.HI = newHalfedge(v, e)
		return e.HI, nil
	case e.VJ:
		if e.HJ != nil {
			return nil, fmt.Errorf("halfedge leaving V%d already defined on E%d", v.UID, e.UID)
		}
		e.HJ = newHalfedge(v, e)
		return e.HJ, nil
	}
	return nil, fmt.Errorf("edge E%d is not connected to vertex V%d", e.UID, v.UID)
}

// Halfedge is one of the two directed sides of an edge. It leaves from
// Vertex and points to the edge's other vertex. Next chains halfedges
// into closed loops.
type Halfedge struct {
	UID    int64
	Vertex *Vertex
	Edge   *Edge
	Next   *Halfedge
}

func newHalfedge(v *Vertex, e *Edge) *Halfedge {
	return &Halfedge{UID: halfedgeIDs.Add(1), Vertex: v, Edge: e}
}

// Direction returns the angular direction of the halfedge.
func (h *Halfedge) Direction() float64 {
	d := h.Edge.OtherVertex(h.Vertex).Coords.Sub(h.Vertex.Coords)
	return d.Angle()
}

// Head returns the vertex the halfedge points to.
func (h *Halfedge) Head() *Vertex {
	return h.Edge.OtherVertex(h.Vertex)
}

// conjugatePenalty keeps a halfedge from selecting the opposite side of
// its own edge as next unless nothing else leaves the head vertex.
const conjugatePenalty = 1000.0

// DefineHalfedges creates both halfedges of every edge and wires each
// halfedge's Next. Among the halfedges leaving the head vertex, Next is
// the one whose direction minimizes the reduced angle from the reversed
// direction of the current halfedge, which makes loop traversal hug the
// boundary of each enclosed region.
func DefineHalfedges(edges []*Edge) ([]*Halfedge, error) {
	all := make([]*Halfedge, 0, 2*len(edges))
	for _, e := range edges {
		hi, err := e.DefineHalfedge(e.VI)
		if err != nil {
			return nil, err
		}
		hj, err := e.DefineHalfedge(e.VJ)
		if err != nil {
			return nil, err
		}
		all = append(all, hi, hj)
		e.VI.Halfedges = append(e.VI.Halfedges, hi)
		e.VJ.Halfedges = append(e.VJ.Halfedges, hj)
	}

	for _, h := range all {
		candidates := h.Head().Halfedges
		if len(candidates) == 0 {
			return nil, fmt.Errorf("no halfedge leaves vertex V%d", h.Head().UID)
		}
		best := candidates[0]
		bestScore := math.Inf(1)
		for _, cand := range candidates {
			var score float64
			if cand.Edge == h.Edge {
				score = conjugatePenalty
			} else {
				score = geom.AngReduce((h.Direction() - math.Pi) - cand.Direction())
			}
			if score < bestScore {
				bestScore = score
				best = cand
			}
		}
		h.Next = best
	}

	return all, nil
}

// ObtainClosedLoops groups halfedges into the closed loops formed by
// their Next chains. Every halfedge belongs to exactly one loop.
func ObtainClosedLoops(halfedges []*Halfedge) []Loop {
	var loops []Loop
	seen := make(map[int64]bool, len(halfedges))
	for _, h := range halfedges {
		if seen[h.UID] {
			continue
		}
		loop := Loop{h}
		seen[h.UID] = true
		for next := h.Next; next != h; next = next.Next {
			loop = append(loop, next)
			seen[next.UID] = true
		}
		loops = append(loops, loop)
	}
	return loops
}

// OrientLoops splits loops by their signed area: internal loops run
// counterclockwise, external loops clockwise, and loops that enclose no
// area are trivial.
func OrientLoops(loops []Loop) (external, internal, trivial []Loop) {
	for _, loop := range loops {
		area := PolygonArea(loop.Coords())
		switch {
		case area > geom.Epsilon:
			internal = append(internal, loop)
		case area < -geom.Epsilon:
			external = append(external, loop)
		default:
			trivial = append(trivial, loop)
		}
	}
	return external, internal, trivial
}

// SanityChecks verifies the assumptions of a closed planar subdivision:
// no trivial loops and a single external loop.
func SanityChecks(external, trivial []Loop) error {
	if len(trivial) > 0 {
		coords := trivial[0].Coords()
		return fmt.Errorf("found %d trivial loop(s), first at %v: dangling or duplicate edges", len(trivial), coords)
	}
	if len(external) > 1 {
		return fmt.Errorf("found %d external loops: the floor outline is not connected", len(external))
	}
	return nil
}
