// Package w generates wide-flange (I) cross-sections.
package w

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

// Input holds the shape table properties the outline is built from.
type Input struct {
	Bf float64 `osmg:"bf"`
	D  float64 `osmg:"d"`
	Tw float64 `osmg:"tw"`
	Tf float64 `osmg:"tf"`
}

// Register registers the shape handler and its manifest.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterShape("W", &registry.ShapeHandler{
		NewInput: func() any { return new(Input) },
		Generate: generate,
	})
	r.RegisterManifest("W", "shapes/w/manifest.hcl", manifestSrc)
}

func init() {
	(&Module{}).Register(registry.Default())
}

func generate(name string, mat *material.Material, input any) (*section.Section, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T for family W", input)
	}
	m, err := mesh.FromPolygon(outline(in.Bf, in.D, in.Tw, in.Tf))
	if err != nil {
		return nil, fmt.Errorf("shape %s: %w", name, err)
	}
	return section.New("W", name, mat, m, nil), nil
}

// outline traces the twelve corners of the I polygon counterclockwise,
// starting at the bottom right corner of the bottom flange. The shape
// is doubly symmetric, so it is already centered on its centroid.
func outline(b, h, tw, tf float64) []geom.Vec2 {
	return []geom.Vec2{
		{X: b / 2, Y: -h / 2},
		{X: b / 2, Y: -h/2 + tf},
		{X: tw / 2, Y: -h/2 + tf},
		{X: tw / 2, Y: h/2 - tf},
		{X: b / 2, Y: h/2 - tf},
		{X: b / 2, Y: h / 2},
		{X: -b / 2, Y: h / 2},
		{X: -b / 2, Y: h/2 - tf},
		{X: -tw / 2, Y: h/2 - tf},
		{X: -tw / 2, Y: -h/2 + tf},
		{X: -b / 2, Y: -h/2 + tf},
		{X: -b / 2, Y: -h / 2},
	}
}
