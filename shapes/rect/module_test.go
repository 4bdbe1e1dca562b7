package rect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/registry"
)

func TestGenerate(t *testing.T) {
	mat := material.Steel02A992()
	in := &Input{B: 10, H: 20}

	sec, err := generate("10x20", mat, in)
	require.NoError(t, err)

	assert.Equal(t, "rect", sec.Family)
	require.Len(t, sec.Mesh.Loops, 1)
	assert.Len(t, sec.Mesh.Loops[0], 4)

	min, max := sec.Mesh.BoundingBox()
	assert.InDelta(t, -5, min.X, 1e-9)
	assert.InDelta(t, -10, min.Y, 1e-9)
	assert.InDelta(t, 5, max.X, 1e-9)
	assert.InDelta(t, 10, max.Y, 1e-9)

	assert.InDelta(t, 200, sec.Properties["A"], 1e-9)
	assert.InDelta(t, 10*20*20*20/12.0, sec.Properties["Ix"], 1e-6)
	assert.InDelta(t, 20*10*10*10/12.0, sec.Properties["Iy"], 1e-6)
	assert.InDelta(t, 73241.6667, sec.Properties["J"], 1e-3)
}

func TestGenerateDegenerate(t *testing.T) {
	_, err := generate("flat", material.Steel02A992(), &Input{B: 10, H: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape flat")
}

func TestRegisterMatchesManifest(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	_, err := r.Shape("rect")
	require.NoError(t, err)
	require.NoError(t, r.ValidateParity(ctxlog.Discard(context.Background())))
}
