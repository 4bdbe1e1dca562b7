package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/geom"
)

func mustGrid(t *testing.T, tag string, x1, y1, x2, y2 float64) *GridLine {
	t.Helper()
	g, err := NewGridLine(tag, geom.Vec2{X: x1, Y: y1}, geom.Vec2{X: x2, Y: y2})
	require.NoError(t, err)
	return g
}

func TestNewGridLineZeroLength(t *testing.T) {
	_, err := NewGridLine("A", geom.Vec2{X: 1, Y: 1}, geom.Vec2{X: 1, Y: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, geom.ErrZeroLength)
}

func TestGridLineIntersect(t *testing.T) {
	testCases := []struct {
		name  string
		a     *GridLine
		b     *GridLine
		want  geom.Vec2
		found bool
	}{
		{
			name:  "perpendicular crossing",
			a:     mustGrid(t, "A", 0, 0, 10, 0),
			b:     mustGrid(t, "1", 4, -5, 4, 5),
			want:  geom.Vec2{X: 4, Y: 0},
			found: true,
		},
		{
			name:  "meeting at segment ends",
			a:     mustGrid(t, "A", 0, 0, 10, 0),
			b:     mustGrid(t, "1", 10, 0, 10, 5),
			want:  geom.Vec2{X: 10, Y: 0},
			found: true,
		},
		{
			name: "parallel",
			a:    mustGrid(t, "A", 0, 0, 10, 0),
			b:    mustGrid(t, "B", 0, 1, 10, 1),
		},
		{
			name: "crossing beyond the segment",
			a:    mustGrid(t, "A", 0, 0, 10, 0),
			b:    mustGrid(t, "1", 12, -5, 12, 5),
		},
		{
			name: "crossing before the segment start",
			a:    mustGrid(t, "A", 0, 0, 10, 0),
			b:    mustGrid(t, "1", -2, -5, -2, 5),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pt, ok := tc.a.Intersect(tc.b)
			require.Equal(t, tc.found, ok)
			if tc.found {
				assert.InDelta(t, tc.want.X, pt.X, 1e-9)
				assert.InDelta(t, tc.want.Y, pt.Y, 1e-9)
			}
		})
	}
}

func TestGridSystemAddDuplicateTag(t *testing.T) {
	gs := &GridSystem{}
	require.NoError(t, gs.Add(mustGrid(t, "A", 0, 0, 10, 0)))

	err := gs.Add(mustGrid(t, "A", 0, 5, 10, 5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gridline already exists")
}

func TestGridSystemIntersectionPoints(t *testing.T) {
	gs := &GridSystem{}
	require.NoError(t, gs.Add(mustGrid(t, "A", 0, 0, 10, 0)))
	require.NoError(t, gs.Add(mustGrid(t, "B", 0, 5, 10, 5)))
	require.NoError(t, gs.Add(mustGrid(t, "1", 2, -1, 2, 6)))
	require.NoError(t, gs.Add(mustGrid(t, "2", 8, -1, 8, 6)))

	pts := gs.IntersectionPoints()
	assert.Len(t, pts, 4)

	// A diagonal through an existing intersection adds no duplicate
	// point there.
	require.NoError(t, gs.Add(mustGrid(t, "D", 2, 0, 8, 5)))
	pts = gs.IntersectionPoints()
	assert.Len(t, pts, 4)
}

func TestGridSystemIntersectSortsByDistance(t *testing.T) {
	gs := &GridSystem{}
	a := mustGrid(t, "A", 0, 0, 10, 0)
	require.NoError(t, gs.Add(a))
	require.NoError(t, gs.Add(mustGrid(t, "1", 7, -1, 7, 1)))
	require.NoError(t, gs.Add(mustGrid(t, "2", 3, -1, 3, 1)))
	require.NoError(t, gs.Add(mustGrid(t, "3", 5, -1, 5, 1)))

	pts := gs.Intersect(a)
	require.Len(t, pts, 3)
	assert.InDelta(t, 3, pts[0].X, 1e-9)
	assert.InDelta(t, 5, pts[1].X, 1e-9)
	assert.InDelta(t, 7, pts[2].X, 1e-9)
}

func TestGridSystemRemoveAndClear(t *testing.T) {
	gs := &GridSystem{}
	require.NoError(t, gs.Add(mustGrid(t, "A", 0, 0, 10, 0)))
	require.NoError(t, gs.Add(mustGrid(t, "B", 0, 5, 10, 5)))

	gs.Remove("A")
	require.Len(t, gs.Grids(), 1)
	assert.Equal(t, "B", gs.Grids()[0].Tag)

	gs.Clear()
	assert.Empty(t, gs.Grids())
}
