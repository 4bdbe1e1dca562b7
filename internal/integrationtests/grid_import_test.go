package integration_tests

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/testutil"
)

// dxfPlan is a minimal DXF entity stream with four LINE entities
// closing a 240 by 240 square.
const dxfPlan = `0
SECTION
2
ENTITIES
0
LINE
100
AcDbLine
10
0.0
20
0.0
11
240.0
21
0.0
0
LINE
100
AcDbLine
10
240.0
20
0.0
11
240.0
21
240.0
0
LINE
100
AcDbLine
10
240.0
20
240.0
11
0.0
21
240.0
0
LINE
100
AcDbLine
10
0.0
20
240.0
11
0.0
21
0.0
0
ENDSEC
0
EOF
`

const importedPlanModel = `
model {
  description = "imported plan"
}

material "steel" {
  preset = "A992Fy50"
}

level "base" {
  elevation = 0
  restraint = "fixed"
}

level "roof" {
  elevation = 144
}

grid_import {
  path = "plans/grid.dxf"
}

section "W24X94" {
  family   = "W"
  material = material.steel
  source   = "aisc"
}

columns "posts" {
  section = section.W24X94
}

beams "girders" {
  section = section.W24X94
}
`

func TestGridImport_DXFLines(t *testing.T) {
	t.Parallel()

	result := testutil.RunBuild(t, map[string]string{
		"tower.osmg.hcl": importedPlanModel,
		"plans/grid.dxf": dxfPlan,
	})
	require.NoError(t, result.Err)

	b := result.Result.Building
	grids := b.GridSystem.Grids()
	require.Len(t, grids, 4)
	for i, g := range grids {
		require.Equal(t, strconv.Itoa(i), g.Tag)
		require.Equal(t, 240.0, g.Length)
	}

	require.Len(t, b.Columns(), 4)
	require.Len(t, b.Beams(), 4)
	require.Len(t, b.PrimaryNodes(), 8)
}
