package building

import (
	"errors"
	"math"

	"github.com/osmg/osmg/internal/geom"
)

// SplitBeamAt splits the internal element of a beam that lies closest
// to the given point, at the projection of that point onto it. An
// existing internal node within Epsilon of the split point is reused.
// Returns the node at the split and the remaining offset from it to the
// requested point.
func (b *Building) SplitBeamAt(beam *BeamColumn, point geom.Vec3) (*Node, geom.Vec3, error) {
	best := -1
	bestDist := math.Inf(1)
	var splitPoint geom.Vec3
	for i, elm := range beam.InternalElems {
		dist, proj, ok := pointToSegment(point, elm.InternalPointI(), elm.InternalPointJ())
		if !ok || dist >= bestDist {
			continue
		}
		best, bestDist, splitPoint = i, dist, proj
	}
	if best < 0 {
		return nil, geom.Vec3{}, errors.New("point does not project onto the beam")
	}

	for _, inode := range beam.InternalNodes {
		if inode.Coords.Dist(splitPoint) < geom.Epsilon {
			return inode, point.Sub(inode.Coords), nil
		}
	}

	elm := beam.InternalElems[best]
	middle := NewNode(splitPoint, RestraintInternal)
	partI, err := NewLinearElement(elm.NodeI, middle, elm.Section, elm.Ang,
		elm.OffsetI, geom.Vec3{})
	if err != nil {
		return nil, geom.Vec3{}, err
	}
	partJ, err := NewLinearElement(middle, elm.NodeJ, elm.Section, elm.Ang,
		geom.Vec3{}, elm.OffsetJ)
	if err != nil {
		return nil, geom.Vec3{}, err
	}

	nodes := make([]*Node, 0, len(beam.InternalNodes)+1)
	nodes = append(nodes, beam.InternalNodes[:best]...)
	nodes = append(nodes, middle)
	nodes = append(nodes, beam.InternalNodes[best:]...)
	beam.InternalNodes = nodes

	elems := make([]*LinearElement, 0, len(beam.InternalElems)+1)
	elems = append(elems, beam.InternalElems[:best]...)
	elems = append(elems, partI, partJ)
	elems = append(elems, beam.InternalElems[best+1:]...)
	beam.InternalElems = elems
	beam.NSub = len(elems)

	return middle, point.Sub(middle.Coords), nil
}

// pointToSegment projects p onto the segment ab. ok is false when the
// projection falls outside the segment or the segment is degenerate.
func pointToSegment(p, a, b geom.Vec3) (dist float64, proj geom.Vec3, ok bool) {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den < geom.Epsilon {
		return 0, geom.Vec3{}, false
	}
	t := p.Sub(a).Dot(ab) / den
	if t < 0 || t > 1 {
		return 0, geom.Vec3{}, false
	}
	proj = a.Add(ab.Scale(t))
	return p.Dist(proj), proj, true
}
