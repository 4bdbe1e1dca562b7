package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/section"
)

func TestLevelAddAndLookForNode(t *testing.T) {
	lvl := NewLevel("1", 144, RestraintFree)

	n, err := lvl.AddNode(5, 7)
	require.NoError(t, err)
	assert.InDelta(t, 144, n.Coords.Z, 1e-12)
	assert.Equal(t, RestraintFree, n.Restraint)

	assert.Same(t, n, lvl.LookForNode(5, 7))
	assert.Nil(t, lvl.LookForNode(5, 8))

	_, err = lvl.AddNode(5, 7)
	assert.ErrorIs(t, err, ErrNodeExists)
}

func TestLevelListOfAllNodes(t *testing.T) {
	lvl := NewLevel("1", 120, RestraintFree)
	sec := testSection(t, "L1")

	ni, err := lvl.AddNode(0, 0)
	require.NoError(t, err)
	nj, err := lvl.AddNode(10, 0)
	require.NoError(t, err)

	beam, err := NewBeamColumn(ni, nj, 0, sec, 2, section.PlacementCentroid,
		geom.Vec3{}, geom.Vec3{})
	require.NoError(t, err)
	require.NoError(t, lvl.Beams.Add(beam))

	all := lvl.ListOfAllNodes()
	assert.Len(t, all, 3)
	assert.Contains(t, all, beam.InternalNodes[0])
}

func TestLevelsAddValidation(t *testing.T) {
	testCases := []struct {
		name      string
		level     *Level
		errSubstr string
		errIs     error
	}{
		{
			name:      "duplicate name",
			level:     NewLevel("base", 100, RestraintFree),
			errSubstr: "level name already exists",
		},
		{
			name:      "duplicate elevation",
			level:     NewLevel("mezzanine", 0, RestraintFree),
			errSubstr: "level elevation already exists",
		},
		{
			name:      "out of order",
			level:     NewLevel("cellar", -120, RestraintFree),
			errSubstr: "levels must be defined from the bottom up",
			errIs:     ErrLevelOrder,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ls := &Levels{}
			require.NoError(t, ls.Add(NewLevel("base", 0, RestraintFixed)))
			err := ls.Add(tc.level)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errSubstr)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			}
		})
	}
}

func TestLevelsAddWiresPreviousLevel(t *testing.T) {
	ls := &Levels{}
	base := NewLevel("base", 0, RestraintFixed)
	first := NewLevel("1", 144, RestraintFree)
	second := NewLevel("2", 288, RestraintFree)
	for _, lvl := range []*Level{base, first, second} {
		require.NoError(t, ls.Add(lvl))
	}

	assert.Nil(t, base.PreviousLevel)
	assert.Same(t, base, first.PreviousLevel)
	assert.Same(t, first, second.PreviousLevel)

	// The first level added becomes active.
	require.Len(t, ls.Active(), 1)
	assert.Same(t, base, ls.Active()[0])
}

func TestLevelsSetActive(t *testing.T) {
	newLevels := func(t *testing.T) *Levels {
		t.Helper()
		ls := &Levels{}
		require.NoError(t, ls.Add(NewLevel("base", 0, RestraintFixed)))
		require.NoError(t, ls.Add(NewLevel("1", 144, RestraintFree)))
		require.NoError(t, ls.Add(NewLevel("2", 288, RestraintFree)))
		return ls
	}

	t.Run("all", func(t *testing.T) {
		ls := newLevels(t)
		require.NoError(t, ls.SetActive([]string{"all"}))
		assert.Len(t, ls.Active(), 3)
	})

	t.Run("all_above_base", func(t *testing.T) {
		ls := newLevels(t)
		require.NoError(t, ls.SetActive([]string{"all_above_base"}))
		require.Len(t, ls.Active(), 2)
		assert.Equal(t, "1", ls.Active()[0].Name)
		assert.Equal(t, "2", ls.Active()[1].Name)
	})

	t.Run("by name", func(t *testing.T) {
		ls := newLevels(t)
		require.NoError(t, ls.SetActive([]string{"2"}))
		require.Len(t, ls.Active(), 1)
		assert.Equal(t, "2", ls.Active()[0].Name)
	})

	t.Run("unknown name", func(t *testing.T) {
		ls := newLevels(t)
		err := ls.SetActive([]string{"roof"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "level roof does not exist")
	})
}

func TestLevelsGet(t *testing.T) {
	ls := &Levels{}
	require.NoError(t, ls.Add(NewLevel("base", 0, RestraintFixed)))

	lvl, err := ls.Get("base")
	require.NoError(t, err)
	assert.Equal(t, "base", lvl.Name)

	_, err = ls.Get("penthouse")
	require.Error(t, err)
}
