package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osmg/osmg/internal/geom"
)

func edgeAt(x1, y1, x2, y2 float64) *Edge {
	return NewEdge(
		NewVertex(geom.Vec2{X: x1, Y: y1}),
		NewVertex(geom.Vec2{X: x2, Y: y2}),
	)
}

func TestOverlapsOrCrosses(t *testing.T) {
	testCases := []struct {
		name string
		a    *Edge
		b    *Edge
		want bool
	}{
		{
			name: "crossing diagonals",
			a:    edgeAt(0, 0, 10, 10),
			b:    edgeAt(0, 10, 10, 0),
			want: true,
		},
		{
			name: "parallel not colinear",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(0, 5, 10, 5),
			want: false,
		},
		{
			name: "colinear overlapping",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(5, 0, 15, 0),
			want: true,
		},
		{
			name: "colinear contained",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(2, 0, 8, 0),
			want: true,
		},
		{
			name: "colinear disjoint",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(20, 0, 30, 0),
			want: false,
		},
		{
			name: "colinear sharing an endpoint",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(10, 0, 20, 0),
			want: false,
		},
		{
			name: "sharing an endpoint at an angle",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(10, 0, 20, 10),
			want: false,
		},
		{
			name: "tee touch does not cross",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(5, 0, 5, 10),
			want: false,
		},
		{
			name: "separated segments",
			a:    edgeAt(0, 0, 10, 0),
			b:    edgeAt(0, 5, 10, 15),
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.OverlapsOrCrosses(tc.b))
			assert.Equal(t, tc.want, tc.b.OverlapsOrCrosses(tc.a))
		})
	}
}
