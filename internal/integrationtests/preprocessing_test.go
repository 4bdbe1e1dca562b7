package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/testutil"
)

const slabTower = `
model {
  description = "slab tower"
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

gridline "A" {
  start = [0, 0]
  end   = [240, 0]
}

gridline "B" {
  start = [0, 240]
  end   = [240, 240]
}

gridline "g1" {
  start = [0, 0]
  end   = [0, 240]
}

gridline "g2" {
  start = [240, 0]
  end   = [240, 240]
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

surface_load "roof_dl" {
  magnitude = 0.003472
}

preprocess {
  self_weight = false
}
`

func TestPreprocessing_DistributesFloorLoad(t *testing.T) {
	t.Parallel()

	result := testutil.RunBuild(t, map[string]string{"slab.osmg.hcl": slabTower})
	require.NoError(t, result.Err)

	b := result.Result.Building
	roof := b.Levels.List()[1]
	require.NotNil(t, roof.ParentNode)
	require.InDelta(t, 120, roof.ParentNode.Coords.X, 1e-9)
	require.InDelta(t, 120, roof.ParentNode.Coords.Y, 1e-9)
	require.Equal(t, 144.0, roof.ParentNode.Coords.Z)

	// The centroid fan splits the square floor evenly among its four
	// boundary beams, and each beam carries its share as a distributed
	// load over the clear span. Local y points up on horizontal beams,
	// so the gravity load lands there, negative.
	for _, beam := range roof.Beams.List() {
		require.InDelta(t, 14400, beam.TributaryArea, 1e-9)
		udl := beam.InternalElems[0].UDLTotal()
		require.InDelta(t, -14400*0.003472/240, udl.Y, 1e-12)
		require.Zero(t, udl.Z)
	}

	masses := b.LevelMasses()
	require.InDelta(t, 0.003472*240*240/geom.G, masses[1], 1e-9)
	require.Zero(t, masses[0])

	testutil.AssertLogged(t, result, "✅ Floor loads distributed")
	testutil.AssertLogged(t, result, "✅ Parent nodes placed")
	require.NotContains(t, result.LogOutput, "✅ Self-weight applied")
}

const bareFrame = `
model {
  description = "bare frame"
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

section "W24X94" {
  family   = "W"
  material = material.steel
  source   = "aisc"
}

columns "posts" {
  section = section.W24X94
  n_sub   = 2
  points  = [[0, 0], [240, 0]]
}

preprocess {
  floor_slabs = false
}
`

func TestPreprocessing_AppliesSelfWeight(t *testing.T) {
	t.Parallel()

	result := testutil.RunBuild(t, map[string]string{"frame.osmg.hcl": bareFrame})
	require.NoError(t, result.Err)

	b := result.Result.Building
	mat := b.Materials.List()[0]
	sec := b.Sections.List()[0]
	perLength := sec.Properties["A"] * mat.Density

	// A column's local x axis points from its top node down to its base,
	// so its own weight is a positive axial load.
	for _, col := range b.Columns() {
		udl := col.InternalElems[0].UDLTotal()
		require.InDelta(t, perLength*geom.G, udl.X, 1e-9)
	}

	// Each column splits into two 72-long elements. The roof node takes
	// half of the upper element's mass; the mid-height subdivision node
	// and the fixed base node stay out of the story total.
	masses := b.LevelMasses()
	require.InDelta(t, 2*perLength*72/2, masses[1], 1e-9)
	require.Zero(t, masses[0])

	require.Nil(t, b.Levels.List()[1].ParentNode)
	testutil.AssertLogged(t, result, "✅ Self-weight applied")
	require.NotContains(t, result.LogOutput, "✅ Floor loads distributed")
}
