package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/mesh"
)

// rectSection builds a 4 wide, 2 tall test section centered on the
// origin.
func rectSection(t *testing.T, name string) *Section {
	t.Helper()
	m, err := mesh.FromPolygon([]geom.Vec2{
		{X: -2, Y: -1}, {X: 2, Y: -1}, {X: 2, Y: 1}, {X: -2, Y: 1},
	})
	require.NoError(t, err)
	return New("rect", name, material.Steel02A992(), m, map[string]float64{"A": 8})
}

func TestParsePlacement(t *testing.T) {
	p, err := ParsePlacement("top_center")
	require.NoError(t, err)
	assert.Equal(t, PlacementTopCenter, p)

	_, err = ParsePlacement("middle")
	assert.ErrorContains(t, err, "invalid placement")
}

func TestSectionOffset(t *testing.T) {
	sec := rectSection(t, "probe")

	testCases := []struct {
		placement Placement
		dz, dy    float64
	}{
		{PlacementCentroid, 0, 0},
		{PlacementTopCenter, 0, -1},
		{PlacementTopLeft, 2, -1},
		{PlacementTopRight, -2, -1},
		{PlacementCenterLeft, 2, 0},
		{PlacementCenterRight, -2, 0},
		{PlacementBottomCenter, 0, 1},
		{PlacementBottomLeft, 2, 1},
		{PlacementBottomRight, -2, 1},
	}

	for _, tc := range testCases {
		t.Run(string(tc.placement), func(t *testing.T) {
			dz, dy, err := sec.Offset(tc.placement)
			require.NoError(t, err)
			assert.InDelta(t, tc.dz, dz, 1e-9)
			assert.InDelta(t, tc.dy, dy, 1e-9)
		})
	}

	_, _, err := sec.Offset(Placement("nowhere"))
	assert.Error(t, err)
}

func TestSectionSubdivide(t *testing.T) {
	sec := rectSection(t, "fibers")

	pieces := sec.Subdivide(5, 3)
	require.Len(t, pieces, 8)
	var total float64
	for _, p := range pieces {
		total += p.Area
	}
	assert.InDelta(t, 8.0, total, 1e-9)
}

func TestSectionSubdivideTube(t *testing.T) {
	outer := []geom.Vec2{{X: 3, Y: -3}, {X: 3, Y: 3}, {X: -3, Y: 3}, {X: -3, Y: -3}}
	inner := []geom.Vec2{{X: 2.5, Y: -2.5}, {X: 2.5, Y: 2.5}, {X: -2.5, Y: 2.5}, {X: -2.5, Y: -2.5}}
	m, err := mesh.FromPolygon(outer, inner)
	require.NoError(t, err)
	sec := New("HSS", "HSS6X6X1/2", material.Steel02A992(), m,
		map[string]float64{"Ht": 6, "B": 6, "tdes": 0.5})

	// The grid arguments are ignored for rectangular tubes; the wall
	// bands decide the fiber layout.
	pieces := sec.Subdivide(2, 2)
	require.Len(t, pieces, 128)
	var total float64
	for _, p := range pieces {
		total += p.Area
	}
	assert.InDelta(t, 36.0-25.0, total, 1e-9)
}

func TestStore(t *testing.T) {
	s := NewStore()

	require.NoError(t, s.Add(rectSection(t, "a")))
	require.NoError(t, s.Add(rectSection(t, "b")))
	assert.ErrorContains(t, s.Add(rectSection(t, "a")), "already exists")

	sec, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", sec.Name)

	_, err = s.Get("missing")
	assert.ErrorContains(t, err, "does not exist")

	require.NoError(t, s.SetActive("b"))
	assert.Equal(t, "b", s.Active().Name)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
}

func TestEmbeddedDatabase(t *testing.T) {
	db, err := Embedded()
	require.NoError(t, err)

	row, err := db.Row("W24X94")
	require.NoError(t, err)
	assert.InDelta(t, 27.7, row["A"], 1e-9)
	assert.InDelta(t, 2700.0, row["Ix"], 1e-9)
	assert.InDelta(t, 9.07, row["bf"], 1e-9)

	_, err = db.Row("W99X999")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "W99X999")

	labels := db.Labels()
	assert.Contains(t, labels, "HSS6X6X1/2")
	assert.Contains(t, labels, "HSS8.625X0.500")
}

func TestLoadDatabaseYAML(t *testing.T) {
	src := `
W99X1:
  A: 1.5
  Ix: 10
`
	db, err := LoadDatabase(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)

	row, err := db.Row("W99X1")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, row["A"], 1e-9)
}

func TestLoadDatabaseBadFormat(t *testing.T) {
	_, err := LoadDatabase(strings.NewReader("{}"), Format("toml"))
	assert.ErrorContains(t, err, "unknown shape database format")

	_, err = LoadDatabase(strings.NewReader("not json"), FormatJSON)
	assert.Error(t, err)
}

func TestOpenDatabaseExtension(t *testing.T) {
	_, err := OpenDatabase("shapes.txt")
	assert.ErrorContains(t, err, "unsupported extension")
}
