// Package rect generates solid rectangular cross-sections. The family
// is not covered by the shape database, so the analysis properties are
// computed from the outline instead of copied from a table row.
package rect

import (
	_ "embed"
	"fmt"

	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/mesh"
	"github.com/osmg/osmg/internal/registry"
	"github.com/osmg/osmg/internal/section"
)

//go:embed manifest.hcl
var manifestSrc []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input holds the rectangle dimensions, width b along the local z axis
// and height h along y.
type Input struct {
	B float64 `osmg:"b"`
	H float64 `osmg:"h"`
}

// Register registers the shape handler and its manifest.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterShape("rect", &registry.ShapeHandler{
		NewInput: func() any { return new(Input) },
		Generate: generate,
	})
	r.RegisterManifest("rect", "shapes/rect/manifest.hcl", manifestSrc)
}

func init() {
	(&Module{}).Register(registry.Default())
}

func generate(name string, mat *material.Material, input any) (*section.Section, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T for family rect", input)
	}
	b, h := in.B, in.H
	m, err := mesh.FromPolygon([]geom.Vec2{
		{X: b / 2, Y: -h / 2},
		{X: b / 2, Y: h / 2},
		{X: -b / 2, Y: h / 2},
		{X: -b / 2, Y: -h / 2},
	})
	if err != nil {
		return nil, fmt.Errorf("shape %s: %w", name, err)
	}
	props := m.GeometricProperties()
	b3 := b * b * b
	b4 := b3 * b
	h4 := h * h * h * h
	return section.New("rect", name, mat, m, map[string]float64{
		"A":  props.Area,
		"Ix": props.Ixx,
		"Iy": props.Iyy,
		"J":  h * b3 * (16.0/3.0 - 3.36*(b/h)*(1-b4/(12*h4))),
	}), nil
}
