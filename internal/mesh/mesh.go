package mesh

import (
	"fmt"
	"math"

	"github.com/osmg/osmg/internal/geom"
)

// Loop is an ordered sequence of halfedges whose Next chain closes on
// the first element.
type Loop []*Halfedge

// Coords returns the tail vertex coordinates of the loop's halfedges in
// traversal order, forming an open coordinate ring.
func (l Loop) Coords() []geom.Vec2 {
	coords := make([]geom.Vec2, len(l))
	for i, h := range l {
		coords[i] = h.Vertex.Coords
	}
	return coords
}

// Area returns the signed area enclosed by the loop.
func (l Loop) Area() float64 {
	return PolygonArea(l.Coords())
}

// Mesh is a flat shape traced by closed loops: the first loop is the
// outline, any further loops are holes.
type Mesh struct {
	Loops []Loop
}

// FromPolygon builds a mesh from an outline ring and optional hole
// rings. The outline is stored counterclockwise and holes clockwise so
// signed-area sums subtract hole contributions. Rings need at least
// three points.
func FromPolygon(outline []geom.Vec2, holes ...[]geom.Vec2) (*Mesh, error) {
	outer, err := ringLoop(outline, true)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	m := &Mesh{Loops: []Loop{outer}}
	for i, hole := range holes {
		inner, err := ringLoop(hole, false)
		if err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
		m.Loops = append(m.Loops, inner)
	}
	return m, nil
}

// ringLoop turns a coordinate ring into a closed halfedge loop with the
// requested orientation.
func ringLoop(ring []geom.Vec2, ccw bool) (Loop, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("ring needs at least 3 points, got %d", len(ring))
	}
	area := PolygonArea(ring)
	if math.Abs(area) <= geom.Epsilon {
		return nil, fmt.Errorf("ring encloses no area")
	}
	coords := ring
	if (area > 0) != ccw {
		coords = make([]geom.Vec2, len(ring))
		for i, c := range ring {
			coords[len(ring)-1-i] = c
		}
	}

	vertices := make([]*Vertex, len(coords))
	for i, c := range coords {
		vertices[i] = NewVertex(c)
	}
	loop := make(Loop, len(coords))
	for i := range coords {
		vi := vertices[i]
		vj := vertices[(i+1)%len(coords)]
		e := NewEdge(vi, vj)
		h, err := e.DefineHalfedge(vi)
		if err != nil {
			return nil, err
		}
		vi.Halfedges = append(vi.Halfedges, h)
		loop[i] = h
	}
	for i := range loop {
		loop[i].Next = loop[(i+1)%len(loop)]
	}
	return loop, nil
}

// GeometricProperties sums the signed contributions of every loop, so
// holes traced opposite to the outline subtract from area and inertia.
func (m *Mesh) GeometricProperties() Properties {
	var area float64
	var weighted geom.Vec2
	for _, loop := range m.Loops {
		coords := loop.Coords()
		a := PolygonArea(coords)
		c := PolygonCentroid(coords)
		area += a
		weighted = weighted.Add(c.Scale(a))
	}
	centroid := weighted.Scale(1 / area)

	var ixx, iyy, ixy float64
	for _, loop := range m.Loops {
		coords := loop.Coords()
		centered := make([]geom.Vec2, len(coords))
		for i, c := range coords {
			centered[i] = c.Sub(centroid)
		}
		lxx, lyy, lxy := PolygonInertia(centered)
		ixx += lxx
		iyy += lyy
		ixy += lxy
	}
	ir := ixx + iyy
	return Properties{
		Area:     area,
		Centroid: centroid,
		Ixx:      ixx,
		Iyy:      iyy,
		Ixy:      ixy,
		Ir:       ir,
		IrMass:   ir / area,
	}
}

// BoundingBox returns the min and max corners over all loop vertices.
func (m *Mesh) BoundingBox() (min, max geom.Vec2) {
	min = geom.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	max = geom.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, loop := range m.Loops {
		for _, h := range loop {
			c := h.Vertex.Coords
			min.X = math.Min(min.X, c.X)
			min.Y = math.Min(min.Y, c.Y)
			max.X = math.Max(max.X, c.X)
			max.Y = math.Max(max.Y, c.Y)
		}
	}
	return min, max
}

// Outline returns the mesh's first loop.
func (m *Mesh) Outline() Loop {
	return m.Loops[0]
}

// Holes returns the mesh's hole loops, if any.
func (m *Mesh) Holes() []Loop {
	if len(m.Loops) < 2 {
		return nil
	}
	return m.Loops[1:]
}
