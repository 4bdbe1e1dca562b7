// Package hss generates hollow structural cross-sections. The shape
// label selects the variant: two X separators mean a rectangular tube
// (HSS8X6X1/2), one means a round one (HSS6X0.250).
package hss

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/mesh"
	"github.com/osmg/osmg/internal/registry"
	"github.com/osmg/osmg/internal/section"
)

// circlePoints is the resolution of the round tube rings.
const circlePoints = 25

//go:embed manifest.hcl
var manifestSrc []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input holds the shape table properties the outline is built from.
// Rectangular tubes read Ht and B, round ones read OD; both share the
// design wall thickness tdes.
type Input struct {
	Ht   float64 `osmg:"Ht,optional"`
	B    float64 `osmg:"B,optional"`
	OD   float64 `osmg:"OD,optional"`
	Tdes float64 `osmg:"tdes"`
}

// Register registers the shape handler and its manifest.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterShape("HSS", &registry.ShapeHandler{
		NewInput: func() any { return new(Input) },
		Generate: generate,
	})
	r.RegisterManifest("HSS", "shapes/hss/manifest.hcl", manifestSrc)
}

func init() {
	(&Module{}).Register(registry.Default())
}

func generate(name string, mat *material.Material, input any) (*section.Section, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T for family HSS", input)
	}
	switch strings.Count(name, "X") {
	case 2:
		return rectangularTube(name, mat, in)
	case 1:
		return roundTube(name, mat, in)
	}
	return nil, fmt.Errorf("cannot tell the HSS variant from label %q: want two X separators for rectangular, one for round", name)
}

func rectangularTube(name string, mat *material.Material, in *Input) (*section.Section, error) {
	if in.Ht <= 0 || in.B <= 0 {
		return nil, fmt.Errorf("shape %s: rectangular tube needs Ht and B", name)
	}
	if 2*in.Tdes >= in.Ht || 2*in.Tdes >= in.B {
		return nil, fmt.Errorf("shape %s: wall thickness %g leaves no void in a %gx%g tube", name, in.Tdes, in.Ht, in.B)
	}
	outer := rectangle(in.B, in.Ht)
	inner := rectangle(in.B-2*in.Tdes, in.Ht-2*in.Tdes)
	m, err := mesh.FromPolygon(outer, inner)
	if err != nil {
		return nil, fmt.Errorf("shape %s: %w", name, err)
	}
	return section.New("HSS", name, mat, m, nil), nil
}

func roundTube(name string, mat *material.Material, in *Input) (*section.Section, error) {
	if in.OD <= 0 {
		return nil, fmt.Errorf("shape %s: round tube needs OD", name)
	}
	if 2*in.Tdes >= in.OD {
		return nil, fmt.Errorf("shape %s: wall thickness %g leaves no void in a %g tube", name, in.Tdes, in.OD)
	}
	outer := circle(in.OD/2, circlePoints)
	inner := circle(in.OD/2-in.Tdes, circlePoints)
	m, err := mesh.FromPolygon(outer, inner)
	if err != nil {
		return nil, fmt.Errorf("shape %s: %w", name, err)
	}
	return section.New("HSS", name, mat, m, nil), nil
}

// rectangle traces a w by h rectangle counterclockwise, centered on the
// origin.
func rectangle(w, h float64) []geom.Vec2 {
	return []geom.Vec2{
		{X: w / 2, Y: -h / 2},
		{X: w / 2, Y: h / 2},
		{X: -w / 2, Y: h / 2},
		{X: -w / 2, Y: -h / 2},
	}
}

// circle traces n points counterclockwise around the origin.
func circle(r float64, n int) []geom.Vec2 {
	pts := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}
