package building

import (
	"errors"
	"fmt"

	"github.com/osmg/osmg/internal/geom"
)

// ErrLevelOrder reports a level added below the one defined before it.
var ErrLevelOrder = errors.New("levels must be defined from the bottom up")

// Level is a horizontal story plane. Primary nodes and frame members
// are defined per level, and column members connect a level to the one
// below it.
type Level struct {
	UID           int64
	Name          string
	Elevation     float64
	Restraint     Restraint
	PreviousLevel *Level
	SurfaceDL     float64
	Nodes         *Nodes
	Columns       *ElementCollection
	Beams         *ElementCollection

	// Set by preprocessing when the level gets a rigid diaphragm.
	ParentNode          *Node
	FloorCoordinates    []geom.Vec2
	FloorPartitionLines [][2]geom.Vec2
}

// NewLevel creates an empty level at the given elevation. The restraint
// applies to the primary nodes defined on the level.
func NewLevel(name string, elevation float64, restraint Restraint) *Level {
	return &Level{
		UID:       nextID(),
		Name:      name,
		Elevation: elevation,
		Restraint: restraint,
		Nodes:     &Nodes{},
		Columns:   &ElementCollection{},
		Beams:     &ElementCollection{},
	}
}

// AddNode places a primary node on the level's plane.
func (l *Level) AddNode(x, y float64) (*Node, error) {
	n := NewNode(geom.Vec3{X: x, Y: y, Z: l.Elevation}, l.Restraint)
	if err := l.Nodes.Add(n); err != nil {
		return nil, err
	}
	return n, nil
}

// LookForNode returns the primary node at the given plan location, or
// nil when there is none.
func (l *Level) LookForNode(x, y float64) *Node {
	return l.Nodes.Find(geom.Vec3{X: x, Y: y, Z: l.Elevation})
}

// ListOfAllNodes returns the level's primary nodes followed by the
// internal nodes of its frame members.
func (l *Level) ListOfAllNodes() []*Node {
	out := append([]*Node{}, l.Nodes.List()...)
	for _, bc := range l.FrameElements() {
		out = append(out, bc.InternalNodes...)
	}
	return out
}

// FrameElements returns the level's columns followed by its beams.
func (l *Level) FrameElements() []*BeamColumn {
	out := append([]*BeamColumn{}, l.Columns.List()...)
	return append(out, l.Beams.List()...)
}

// AssignSurfaceDL sets the uniform dead load of the level's floor, in
// force per unit area.
func (l *Level) AssignSurfaceDL(val float64) {
	l.SurfaceDL = val
}

// Levels holds the stories of a building in ascending elevation, with
// an active subset that receives subsequent modeling operations.
type Levels struct {
	list   []*Level
	active []*Level
}

// Add appends a level. Levels must be added from the bottom up, with
// unique names and elevations. The first level added becomes active.
func (ls *Levels) Add(lvl *Level) error {
	for _, other := range ls.list {
		if other.Name == lvl.Name {
			return fmt.Errorf("level name already exists: %s", lvl.Name)
		}
		if other.Elevation == lvl.Elevation {
			return fmt.Errorf("level elevation already exists: %g", lvl.Elevation)
		}
	}
	if n := len(ls.list); n > 0 {
		if lvl.Elevation < ls.list[n-1].Elevation {
			return fmt.Errorf("%w: %s", ErrLevelOrder, lvl.Name)
		}
		lvl.PreviousLevel = ls.list[n-1]
	}
	ls.list = append(ls.list, lvl)
	if len(ls.active) == 0 {
		ls.active = append(ls.active, lvl)
	}
	return nil
}

// Get returns the level with the given name.
func (ls *Levels) Get(name string) (*Level, error) {
	for _, lvl := range ls.list {
		if lvl.Name == name {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("level %s does not exist", name)
}

// SetActive selects the levels that subsequent operations apply to.
// The single name "all" selects every level, and "all_above_base"
// selects every level except the first.
func (ls *Levels) SetActive(names []string) error {
	ls.active = nil
	if len(names) == 1 && names[0] == "all" {
		ls.active = append(ls.active, ls.list...)
		return nil
	}
	if len(names) == 1 && names[0] == "all_above_base" {
		if len(ls.list) > 1 {
			ls.active = append(ls.active, ls.list[1:]...)
		}
		return nil
	}
	for _, name := range names {
		lvl, err := ls.Get(name)
		if err != nil {
			return err
		}
		ls.active = append(ls.active, lvl)
	}
	return nil
}

// Active returns the currently selected levels in ascending elevation.
func (ls *Levels) Active() []*Level {
	return ls.active
}

// List returns all levels in ascending elevation.
func (ls *Levels) List() []*Level {
	return ls.list
}
