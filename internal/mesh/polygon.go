package mesh

import "github.com/osmg/osmg/internal/geom"

// Properties aggregates the geometric properties of a planar shape.
// Inertia terms are about the centroid; Ir is the polar moment and
// IrMass the mass moment of in-plane rotation per unit area.
type Properties struct {
	Area     float64
	Centroid geom.Vec2
	Ixx      float64
	Iyy      float64
	Ixy      float64
	Ir       float64
	IrMass   float64
}

// PolygonArea returns the signed shoelace area of a polygon. The first
// point must not be repeated at the end; the wrap-around is implied.
// Counterclockwise polygons have positive area.
func PolygonArea(coords []geom.Vec2) float64 {
	n := len(coords)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p := coords[i]
		q := coords[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// PolygonCentroid returns the centroid of a polygon with non-zero area.
func PolygonCentroid(coords []geom.Vec2) geom.Vec2 {
	n := len(coords)
	area := PolygonArea(coords)
	var cx, cy float64
	for i := 0; i < n; i++ {
		p := coords[i]
		q := coords[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return geom.Vec2{X: cx / (6 * area), Y: cy / (6 * area)}
}

// PolygonInertia returns the planar moments of inertia of a polygon
// about the origin of the supplied coordinates.
func PolygonInertia(coords []geom.Vec2) (ixx, iyy, ixy float64) {
	n := len(coords)
	for i := 0; i < n; i++ {
		p := coords[i]
		q := coords[(i+1)%n]
		cross := p.X*q.Y - q.X*p.Y
		ixx += (p.Y*p.Y + p.Y*q.Y + q.Y*q.Y) * cross
		iyy += (p.X*p.X + p.X*q.X + q.X*q.X) * cross
		ixy += (p.X*q.Y + 2*p.X*p.Y + 2*q.X*q.Y + q.X*p.Y) * cross
	}
	return ixx / 12, iyy / 12, ixy / 24
}

// GeometricProperties computes area, centroid and centroidal inertia of
// a single polygon given as an open coordinate ring.
func GeometricProperties(coords []geom.Vec2) Properties {
	area := PolygonArea(coords)
	centroid := PolygonCentroid(coords)
	centered := make([]geom.Vec2, len(coords))
	for i, c := range coords {
		centered[i] = c.Sub(centroid)
	}
	ixx, iyy, ixy := PolygonInertia(centered)
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
