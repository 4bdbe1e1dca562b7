package building

import (
	"fmt"
	"sort"

	"github.com/osmg/osmg/internal/geom"
)

// GridLine is a tagged line segment on the plan used to lay out
// elements. Gridlines do not have to be permanent: they can be defined,
// used, and discarded to define other elements.
type GridLine struct {
	Tag       string
	Start     geom.Vec2
	End       geom.Vec2
	Length    float64
	Direction geom.Vec2
}

// NewGridLine creates a gridline between two points.
func NewGridLine(tag string, start, end geom.Vec2) (*GridLine, error) {
	length := end.Sub(start).Norm()
	dir, err := end.Sub(start).Unit()
	if err != nil {
		return nil, fmt.Errorf("gridline %s: %w", tag, err)
	}
	return &GridLine{Tag: tag, Start: start, End: end, Length: length, Direction: dir}, nil
}

// Intersect returns the point where two gridlines meet, if they do.
// Parallel lines and intersections beyond either segment (with an
// Epsilon allowance) yield ok == false.
func (g *GridLine) Intersect(other *GridLine) (geom.Vec2, bool) {
	u, v, solvable := geom.Solve2(
		g.Direction.X, -other.Direction.X,
		g.Direction.Y, -other.Direction.Y,
		other.Start.X-g.Start.X, other.Start.Y-g.Start.Y,
	)
	if !solvable {
		return geom.Vec2{}, false
	}
	if u < -geom.Epsilon || v < -geom.Epsilon {
		return geom.Vec2{}, false
	}
	if u > g.Length+geom.Epsilon || v > other.Length+geom.Epsilon {
		return geom.Vec2{}, false
	}
	return g.Start.Add(g.Direction.Scale(u)), true
}

// GridSystem collects gridlines, sorted by tag.
type GridSystem struct {
	grids []*GridLine
}

// Add inserts a gridline. Tags are unique.
func (gs *GridSystem) Add(g *GridLine) error {
	for _, other := range gs.grids {
		if other.Tag == g.Tag {
			return fmt.Errorf("gridline already exists: %s", g.Tag)
		}
	}
	gs.grids = append(gs.grids, g)
	sort.Slice(gs.grids, func(i, j int) bool { return gs.grids[i].Tag < gs.grids[j].Tag })
	return nil
}

// Remove drops a gridline by tag.
func (gs *GridSystem) Remove(tag string) {
	for i, g := range gs.grids {
		if g.Tag == tag {
			gs.grids = append(gs.grids[:i], gs.grids[i+1:]...)
			return
		}
	}
}

// Clear drops all gridlines.
func (gs *GridSystem) Clear() {
	gs.grids = nil
}

// Grids returns the gridlines sorted by tag.
func (gs *GridSystem) Grids() []*GridLine {
	return gs.grids
}

// IntersectionPoints returns the deduplicated points where gridlines
// meet.
func (gs *GridSystem) IntersectionPoints() []geom.Vec2 {
	var pts []geom.Vec2
	for i, a := range gs.grids {
		for _, b := range gs.grids[i+1:] {
			if pt, ok := a.Intersect(b); ok && !pointInList(pt, pts) {
				pts = append(pts, pt)
			}
		}
	}
	return pts
}

// Intersect returns the points where the given gridline meets all the
// others, sorted by distance from its start.
func (gs *GridSystem) Intersect(g *GridLine) []geom.Vec2 {
	var pts []geom.Vec2
	for _, other := range gs.grids {
		if other.Tag == g.Tag {
			continue
		}
		if pt, ok := g.Intersect(other); ok && !pointInList(pt, pts) {
			pts = append(pts, pt)
		}
	}
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Dist(g.Start) < pts[j].Dist(g.Start)
	})
	return pts
}

// pointInList reports whether pt coincides with a listed point within
// Epsilon.
func pointInList(pt geom.Vec2, pts []geom.Vec2) bool {
	for _, other := range pts {
		if pt.Dist(other) < geom.Epsilon {
			return true
		}
	}
	return false
}
