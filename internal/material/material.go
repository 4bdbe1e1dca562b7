// Package material defines the materials elements are made of and the
// collection that tracks them.
package material

import (
	"fmt"
	"sort"
	"sync/atomic"
)

var ids atomic.Int64

// Material describes a structural material. Model names the OpenSees
// uniaxial material model; Params carries the model's parameters.
// Density is mass per unit volume in lb-s^2/in^4.
type Material struct {
	UID     int64
	Name    string
	Model   string
	Density float64
	Params  map[string]float64
}

// New creates a material with a fresh unique id.
func New(name, model string, density float64, params map[string]float64) *Material {
	return &Material{
		UID:     ids.Add(1),
		Name:    name,
		Model:   model,
		Density: density,
		Params:  params,
	}
}

// Steel02A992 returns the predefined A992Fy50 steel modeled with
// Steel02, in lb-in units.
func Steel02A992() *Material {
	return New("steel", "Steel02", 0.0007344714506172839, map[string]float64{
		"Fy": 50000,
		"E0": 29000000,
		"G":  11153846.15,
		"b":  0.01,
	})
}

// presets maps preset names to their constructors.
var presets = map[string]func() *Material{
	"A992Fy50": Steel02A992,
}

// Preset instantiates a named built-in material.
func Preset(name string) (*Material, error) {
	ctor, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown material preset %q", name)
	}
	return ctor(), nil
}

// Store collects materials and tracks the active one.
type Store struct {
	materials map[string]*Material
	active    *Material
}

// NewStore returns an empty material store.
func NewStore() *Store {
	return &Store{materials: make(map[string]*Material)}
}

// Add registers a material. Names are unique.
func (s *Store) Add(m *Material) error {
	if _, ok := s.materials[m.Name]; ok {
		return fmt.Errorf("material already exists: %s", m.Name)
	}
	s.materials[m.Name] = m
	return nil
}

// Get looks a material up by name.
func (s *Store) Get(name string) (*Material, error) {
	m, ok := s.materials[name]
	if !ok {
		return nil, fmt.Errorf("material %s does not exist", name)
	}
	return m, nil
}

// SetActive assigns the active material by name.
func (s *Store) SetActive(name string) error {
	m, err := s.Get(name)
	if err != nil {
		return err
	}
	s.active = m
	return nil
}

// Active returns the active material, or nil when none is set.
func (s *Store) Active() *Material {
	return s.active
}

// List returns all materials sorted by name.
func (s *Store) List() []*Material {
	out := make([]*Material, 0, len(s.materials))
	for _, m := range s.materials {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
