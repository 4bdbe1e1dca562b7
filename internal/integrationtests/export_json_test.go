package integration_tests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/app"
	"github.com/osmg/osmg/internal/testutil"
)

func TestExportJSON_Document(t *testing.T) {
	t.Parallel()

	result := testutil.RunBuildWithConfig(t,
		map[string]string{"slab.osmg.hcl": slabTower},
		app.Config{ExportFormat: "json"},
	)
	require.NoError(t, result.Err)

	var doc struct {
		Units  string `json:"units"`
		Levels []struct {
			Name       string  `json:"name"`
			Elevation  float64 `json:"elevation"`
			Restraint  string  `json:"restraint"`
			SurfaceDL  float64 `json:"surface_dl"`
			ParentNode *struct {
				Coords [3]float64 `json:"coords"`
				Mass   [6]float64 `json:"mass"`
			} `json:"parent_node"`
			FloorPolygon [][2]float64 `json:"floor_polygon"`
		} `json:"levels"`
		Nodes    []json.RawMessage `json:"nodes"`
		Elements []struct {
			Section string `json:"section"`
			NSub    int    `json:"n_sub"`
		} `json:"elements"`
		Sections []struct {
			Name   string `json:"name"`
			Family string `json:"family"`
		} `json:"sections"`
		Materials []struct {
			Name  string `json:"name"`
			Model string `json:"model"`
		} `json:"materials"`
		LevelMasses []float64 `json:"level_masses"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Output), &doc))

	require.Equal(t, "lb-in-s", doc.Units)
	require.Len(t, doc.Levels, 2)

	base, roof := doc.Levels[0], doc.Levels[1]
	require.Equal(t, "base", base.Name)
	require.Equal(t, "fixed", base.Restraint)
	require.Nil(t, base.ParentNode)

	require.Equal(t, "roof", roof.Name)
	require.Equal(t, "free", roof.Restraint)
	require.Equal(t, 144.0, roof.Elevation)
	require.InDelta(t, 0.003472, roof.SurfaceDL, 1e-12)
	require.NotNil(t, roof.ParentNode)
	require.InDelta(t, 120, roof.ParentNode.Coords[0], 1e-9)
	require.InDelta(t, 120, roof.ParentNode.Coords[1], 1e-9)
	require.Positive(t, roof.ParentNode.Mass[0])
	require.Len(t, roof.FloorPolygon, 4)

	// Four corner nodes per level plus the roof parent node.
	require.Len(t, doc.Nodes, 9)
	require.Len(t, doc.Elements, 8)
	for _, e := range doc.Elements {
		require.Equal(t, "W24X94", e.Section)
		require.Equal(t, 1, e.NSub)
	}

	require.Len(t, doc.Sections, 1)
	require.Equal(t, "W", doc.Sections[0].Family)
	require.Len(t, doc.Materials, 1)
	require.Equal(t, "Steel02", doc.Materials[0].Model)

	require.Len(t, doc.LevelMasses, 2)
	require.Zero(t, doc.LevelMasses[0])
	require.Positive(t, doc.LevelMasses[1])
}
