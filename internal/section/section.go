// Package section defines element cross-sections, their placement
// offsets, and the shape databases they are generated from.
package section

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/mesh"
)

var ids atomic.Int64

// Placement selects which point of the cross-section the element axis
// passes through.
type Placement string

const (
	PlacementCentroid     Placement = "centroid"
	PlacementTopCenter    Placement = "top_center"
	PlacementTopLeft      Placement = "top_left"
	PlacementTopRight     Placement = "top_right"
	PlacementCenterLeft   Placement = "center_left"
	PlacementCenterRight  Placement = "center_right"
	PlacementBottomCenter Placement = "bottom_center"
	PlacementBottomLeft   Placement = "bottom_left"
	PlacementBottomRight  Placement = "bottom_right"
)

// ParsePlacement validates a placement name.
func ParsePlacement(s string) (Placement, error) {
	switch p := Placement(s); p {
	case PlacementCentroid, PlacementTopCenter, PlacementTopLeft,
		PlacementTopRight, PlacementCenterLeft, PlacementCenterRight,
		PlacementBottomCenter, PlacementBottomLeft, PlacementBottomRight:
		return p, nil
	}
	return "", fmt.Errorf("invalid placement %q", s)
}

// Section is a cross-section: a shape family, an outline mesh in the
// local (z, y) plane centered on the centroid, and the analysis
// properties A, Ix, Iy, J.
type Section struct {
	UID        int64
	Family     string
	Name       string
	Material   *material.Material
	Mesh       *mesh.Mesh
	Properties map[string]float64
}

// New creates a section with a fresh unique id.
func New(family, name string, mat *material.Material, m *mesh.Mesh, props map[string]float64) *Section {
	return &Section{
		UID:        ids.Add(1),
		Family:     family,
		Name:       name,
		Material:   mat,
		Mesh:       m,
		Properties: props,
	}
}

// Offset returns the local (z, y) vector from the given placement point
// to the section centroid, from the outline bounding box.
func (s *Section) Offset(p Placement) (dz, dy float64, err error) {
	min, max := s.Mesh.BoundingBox()
	zMin, yMin, zMax, yMax := min.X, min.Y, max.X, max.Y
	switch p {
	case PlacementCentroid:
		return 0, 0, nil
	case PlacementTopCenter:
		return 0, -yMax, nil
	case PlacementTopLeft:
		return -zMin, -yMax, nil
	case PlacementTopRight:
		return -zMax, -yMax, nil
	case PlacementCenterLeft:
		return -zMin, 0, nil
	case PlacementCenterRight:
		return -zMax, 0, nil
	case PlacementBottomCenter:
		return 0, -yMin, nil
	case PlacementBottomLeft:
		return -zMin, -yMin, nil
	case PlacementBottomRight:
		return -zMax, -yMin, nil
	}
	return 0, 0, fmt.Errorf("invalid placement %q", p)
}

// Subdivide cuts the section into fibers on an nx by ny grid.
// Rectangular tubes take the wall-band refinement instead, so their
// thin walls keep fibers at any grid size.
func (s *Section) Subdivide(nx, ny int) []mesh.Piece {
	if s.Family == "HSS" {
		ht, b, t := s.Properties["Ht"], s.Properties["B"], s.Properties["tdes"]
		if ht > 0 && b > 0 && t > 0 {
			return mesh.SubdivideHSS(b/2, ht/2, t)
		}
	}
	return mesh.SubdividePolygon(s.Mesh.Outline(), s.Mesh.Holes(), nx, ny)
}

// Store collects sections and tracks the active one.
type Store struct {
	sections map[string]*Section
	active   *Section
}

// NewStore returns an empty section store.
func NewStore() *Store {
	return &Store{sections: make(map[string]*Section)}
}

// Add registers a section. Names are unique.
func (s *Store) Add(sec *Section) error {
	if _, ok := s.sections[sec.Name]; ok {
		return fmt.Errorf("section already exists: %s", sec.Name)
	}
	s.sections[sec.Name] = sec
	return nil
}

// Get looks a section up by name.
func (s *Store) Get(name string) (*Section, error) {
	sec, ok := s.sections[name]
	if !ok {
		return nil, fmt.Errorf("section %s does not exist", name)
	}
	return sec, nil
}

// SetActive assigns the active section by name.
func (s *Store) SetActive(name string) error {
	sec, err := s.Get(name)
	if err != nil {
		return err
	}
	s.active = sec
	return nil
}

// Active returns the active section, or nil when none is set.
func (s *Store) Active() *Section {
	return s.active
}

// List returns all sections sorted by name.
func (s *Store) List() []*Section {
	out := make([]*Section, 0, len(s.sections))
	for _, sec := range s.sections {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
