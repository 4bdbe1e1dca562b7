package mesh

import (
	"math"

	"github.com/osmg/osmg/internal/geom"
)

// Piece is a fiber of a subdivided cross-section.
type Piece struct {
	Area     float64
	Centroid geom.Vec2
}

// SubdividePolygon tiles the outline's bounding box with a grid of
// nx by ny points and clips every tile against the outline and the
// holes. Tiles that retain area become fibers. Holes are traced
// opposite to the outline, so their clipped area subtracts.
func SubdividePolygon(outline Loop, holes []Loop, nx, ny int) []Piece {
	outlineCoords := outline.Coords()
	min, max := ringBounds(outlineCoords)
	xs := linspace(min.X, max.X, nx)
	ys := linspace(min.Y, max.Y, ny)

	rings := make([][]geom.Vec2, 0, 1+len(holes))
	rings = append(rings, outlineCoords)
	for _, hole := range holes {
		rings = append(rings, hole.Coords())
	}

	var pieces []Piece
	for i := 0; i < len(xs)-1; i++ {
		for j := 0; j < len(ys)-1; j++ {
			if p, ok := clipTile(rings, xs[i], ys[j], xs[i+1], ys[j+1]); ok {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// SubdivideHSS refines a rectangular tube spanning [-h, h] x [-b, b]
// with wall thickness t: the box is cut into a 3x3 band grid whose
// outer bands are t wide, and each band is tiled 4x4. Tiles inside the
// void drop out.
func SubdivideHSS(h, b, t float64) []Piece {
	outer := []geom.Vec2{{X: h, Y: b}, {X: -h, Y: b}, {X: -h, Y: -b}, {X: h, Y: -b}}
	hole := []geom.Vec2{{X: h - t, Y: b - t}, {X: h - t, Y: -b + t}, {X: -h + t, Y: -b + t}, {X: -h + t, Y: b - t}}
	rings := [][]geom.Vec2{outer, hole}

	xmin, xmax := -h, h
	ymin, ymax := -b, b
	xBands := [][2]float64{{xmin, xmin + t}, {xmin + t, xmax - t}, {xmax - t, xmax}}
	yBands := [][2]float64{{ymin, ymin + t}, {ymin + t, ymax - t}, {ymax - t, ymax}}

	var pieces []Piece
	for _, yb := range yBands {
		for _, xb := range xBands {
			xs := linspace(xb[0], xb[1], 5)
			ys := linspace(yb[0], yb[1], 5)
			for i := 0; i < len(xs)-1; i++ {
				for j := 0; j < len(ys)-1; j++ {
					if p, ok := clipTile(rings, xs[i], ys[j], xs[i+1], ys[j+1]); ok {
						pieces = append(pieces, p)
					}
				}
			}
		}
	}
	return pieces
}

// clipTile clips every ring against a rectangular tile and sums the
// signed areas and first moments. Rings keep their orientation through
// clipping, so hole rings come out negative.
func clipTile(rings [][]geom.Vec2, xmin, ymin, xmax, ymax float64) (Piece, bool) {
	var area float64
	var moment geom.Vec2
	for _, ring := range rings {
		clipped := clipRect(ring, xmin, ymin, xmax, ymax)
		if len(clipped) < 3 {
			continue
		}
		a := PolygonArea(clipped)
		if math.Abs(a) <= 1e-12 {
			continue
		}
		area += a
		moment = moment.Add(PolygonCentroid(clipped).Scale(a))
	}
	if math.Abs(area) <= geom.Epsilon {
		return Piece{}, false
	}
	return Piece{Area: area, Centroid: moment.Scale(1 / area)}, true
}

// clipRect clips a polygon against an axis-aligned rectangle with the
// Sutherland-Hodgman algorithm, one rectangle side at a time.
func clipRect(subject []geom.Vec2, xmin, ymin, xmax, ymax float64) []geom.Vec2 {
	out := subject
	out = clipHalfPlane(out, func(p geom.Vec2) float64 { return p.X - xmin })
	out = clipHalfPlane(out, func(p geom.Vec2) float64 { return xmax - p.X })
	out = clipHalfPlane(out, func(p geom.Vec2) float64 { return p.Y - ymin })
	out = clipHalfPlane(out, func(p geom.Vec2) float64 { return ymax - p.Y })
	return out
}

// clipHalfPlane keeps the part of the polygon where inside(p) >= 0.
func clipHalfPlane(subject []geom.Vec2, inside func(geom.Vec2) float64) []geom.Vec2 {
	if len(subject) == 0 {
		return nil
	}
	var out []geom.Vec2
	prev := subject[len(subject)-1]
	prevIn := inside(prev) >= 0
	for _, cur := range subject {
		curIn := inside(cur) >= 0
		if curIn != prevIn {
			// The edge crosses the clip line.
			dPrev := inside(prev)
			dCur := inside(cur)
			t := dPrev / (dPrev - dCur)
			out = append(out, prev.Add(cur.Sub(prev).Scale(t)))
		}
		if curIn {
			out = append(out, cur)
		}
		prev = cur
		prevIn = curIn
	}
	return out
}

// linspace returns n evenly spaced values from a to b inclusive.
func linspace(a, b float64, n int) []float64 {
	if n < 2 {
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

// ringBounds returns the bounding box of a coordinate ring.
func ringBounds(coords []geom.Vec2) (min, max geom.Vec2) {
	min = geom.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	max = geom.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, c := range coords {
		min.X = math.Min(min.X, c.X)
		min.Y = math.Min(min.Y, c.Y)
		max.X = math.Max(max.X, c.X)
		max.Y = math.Max(max.Y, c.Y)
	}
	return min, max
}
