package mesh

import (
	"math"

	"github.com/osmg/osmg/internal/geom"
)

// OverlapsOrCrosses reports whether two edges interfere: they cross in
// their interiors, or they are colinear and share more than a single
// point. Sharing one endpoint does not count.
func (e *Edge) OverlapsOrCrosses(other *Edge) bool {
	ra := e.VI.Coords
	da := e.VJ.Coords.Sub(ra)
	rb := other.VI.Coords
	db := other.VJ.Coords.Sub(rb)

	det := da.X*(-db.Y) - (-db.X)*da.Y
	if math.Abs(det) <= geom.Epsilon {
		// Parallel. If they are not colinear they cannot interfere.
		diff := rb.Sub(ra)
		proj := ra.Add(da.Scale(diff.Dot(da) / da.Dot(da)))
		if rb.Dist(proj) > geom.Epsilon {
			return false
		}

		// Colinear. Express both endpoints of the other edge as
		// parameters along this one: 0 is VI, 1 is VJ.
		ci := da.Dot(rb.Sub(ra)) / da.Dot(da)
		cj := da.Dot(rb.Add(db).Sub(ra)) / da.Dot(da)

		isClose := func(a, b float64) bool { return math.Abs(a-b) <= geom.Epsilon }
		switch {
		case ci < -geom.Epsilon && isClose(cj, 0),
			ci > 1+geom.Epsilon && isClose(cj, 1),
			isClose(ci, 1) && cj > 1+geom.Epsilon,
			isClose(ci, 0) && cj < -geom.Epsilon:
			// They share one vertex and extend away from each other.
			return false
		case ci < -geom.Epsilon && cj < -geom.Epsilon,
			ci > 1+geom.Epsilon && cj > 1+geom.Epsilon:
			// Entirely before or entirely after this edge.
			return false
		}
		return true
	}

	// Not parallel: a unique intersection of the two carrier lines
	// exists. The edges interfere only when it falls strictly inside
	// both segments.
	sa, sb, ok := geom.Solve2(da.X, -db.X, da.Y, -db.Y, rb.X-ra.X, rb.Y-ra.Y)
	if !ok {
		return false
	}
	return sa > geom.Epsilon && sa < 1-geom.Epsilon &&
		sb > geom.Epsilon && sb < 1-geom.Epsilon
}
