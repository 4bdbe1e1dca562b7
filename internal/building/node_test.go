package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/geom"
)

func TestParseLevelRestraint(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		want      Restraint
		expectErr bool
	}{
		{name: "free", input: "free", want: RestraintFree},
		{name: "pinned", input: "pinned", want: RestraintPinned},
		{name: "fixed", input: "fixed", want: RestraintFixed},
		{name: "parent is not user-assignable", input: "parent", expectErr: true},
		{name: "internal is not user-assignable", input: "internal", expectErr: true},
		{name: "unknown", input: "clamped", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseLevelRestraint(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNodesAddRejectsPositionalDuplicates(t *testing.T) {
	ns := &Nodes{}
	require.NoError(t, ns.Add(NewNode(geom.Vec3{X: 1, Y: 2, Z: 0}, RestraintFree)))

	err := ns.Add(NewNode(geom.Vec3{X: 1, Y: 2, Z: 0}, RestraintFree))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNodeExists)

	// A nearby but distinct point is fine.
	require.NoError(t, ns.Add(NewNode(geom.Vec3{X: 1.001, Y: 2, Z: 0}, RestraintFree)))
	assert.Len(t, ns.List(), 2)
}

func TestNodesSortedOnPlan(t *testing.T) {
	ns := &Nodes{}
	n1 := NewNode(geom.Vec3{X: 5, Y: 1}, RestraintFree)
	n2 := NewNode(geom.Vec3{X: 0, Y: 1}, RestraintFree)
	n3 := NewNode(geom.Vec3{X: 9, Y: 0}, RestraintFree)
	for _, n := range []*Node{n1, n2, n3} {
		require.NoError(t, ns.Add(n))
	}

	// Sorted by y first, then x.
	assert.Equal(t, []*Node{n3, n2, n1}, ns.List())
}

func TestNodesFind(t *testing.T) {
	ns := &Nodes{}
	n := NewNode(geom.Vec3{X: 3, Y: 4, Z: 12}, RestraintPinned)
	require.NoError(t, ns.Add(n))

	assert.Same(t, n, ns.Find(geom.Vec3{X: 3, Y: 4, Z: 12}))
	assert.Nil(t, ns.Find(geom.Vec3{X: 3, Y: 4.5, Z: 12}))
}

func TestNodeLoadTotal(t *testing.T) {
	n := NewNode(geom.Vec3{}, RestraintFree)
	n.Load[2] = -10
	n.LoadFl[2] = -5
	n.LoadFl[0] = 1

	total := n.LoadTotal()
	assert.InDelta(t, -15, total[2], 1e-12)
	assert.InDelta(t, 1, total[0], 1e-12)
}
