package building

import (
	"errors"
	"fmt"
	"math"

	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/section"
)

// SectionGenerator turns a shape database row into a section. The
// registry supplies one per shape family.
type SectionGenerator func(label string, mat *material.Material, row map[string]float64) (*section.Section, error)

// Building is the complete model: levels with their nodes and frame
// members, gridlines, groups, and the material and section registries.
// Modeling operations apply to the active levels, using the active
// section, placement and angle.
type Building struct {
	GridSystem *GridSystem
	Levels     *Levels
	Groups     *Groups
	Materials  *material.Store
	Sections   *section.Store

	ActivePlacement section.Placement
	ActiveAngle     float64
}

// New returns an empty building with centroid placement and a zero
// orientation angle active.
func New() *Building {
	return &Building{
		GridSystem:      &GridSystem{},
		Levels:          &Levels{},
		Groups:          &Groups{},
		Materials:       material.NewStore(),
		Sections:        section.NewStore(),
		ActivePlacement: section.PlacementCentroid,
	}
}

// AddLevel defines a story plane. Levels must be added from the bottom
// up. The restraint applies to the level's primary nodes and must be
// free, pinned or fixed.
func (b *Building) AddLevel(name string, elevation float64, restraint string) (*Level, error) {
	r, err := ParseLevelRestraint(restraint)
	if err != nil {
		return nil, err
	}
	lvl := NewLevel(name, elevation, r)
	if err := b.Levels.Add(lvl); err != nil {
		return nil, err
	}
	return lvl, nil
}

// AddNode places a primary node at the given plan location on every
// active level.
func (b *Building) AddNode(x, y float64) ([]*Node, error) {
	var added []*Node
	for _, lvl := range b.Levels.Active() {
		n, err := lvl.AddNode(x, y)
		if err != nil {
			return nil, err
		}
		added = append(added, n)
	}
	return added, nil
}

// AddGridLine defines a gridline between two plan points.
func (b *Building) AddGridLine(tag string, start, end geom.Vec2) (*GridLine, error) {
	g, err := NewGridLine(tag, start, end)
	if err != nil {
		return nil, err
	}
	if err := b.GridSystem.Add(g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddGroup defines an element group.
func (b *Building) AddGroup(name string) (*Group, error) {
	g := &Group{Name: name}
	if err := b.Groups.Add(g); err != nil {
		return nil, err
	}
	return g, nil
}

// AddSectionsFromDB generates sections from shape database rows. Only
// the rows named by labels are used. The generator receives the active
// material.
func (b *Building) AddSectionsFromDB(db *section.Database, labels []string, generate SectionGenerator) ([]*section.Section, error) {
	mat := b.Materials.Active()
	if mat == nil {
		return nil, errors.New("no active material specified")
	}
	var added []*section.Section
	for _, label := range labels {
		row, err := db.Row(label)
		if err != nil {
			return nil, err
		}
		sec, err := generate(label, mat, row)
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", label, err)
		}
		if err := b.Sections.Add(sec); err != nil {
			return nil, err
		}
		added = append(added, sec)
	}
	return added, nil
}

// AddColumnAtPoint places a vertical column at the given plan location
// on every active level, spanning down to the level below. Levels
// without a level below are skipped. Existing nodes at the end points
// are reused. The column's i node is the top node.
func (b *Building) AddColumnAtPoint(x, y float64, nSub int) ([]*BeamColumn, error) {
	sec := b.Sections.Active()
	if sec == nil {
		return nil, errors.New("no active section")
	}
	var columns []*BeamColumn
	for _, lvl := range b.Levels.Active() {
		if lvl.PreviousLevel == nil {
			continue
		}
		below := lvl.PreviousLevel
		top := lvl.LookForNode(x, y)
		if top == nil {
			var err error
			if top, err = lvl.AddNode(x, y); err != nil {
				return nil, err
			}
		}
		bot := below.LookForNode(x, y)
		if bot == nil {
			var err error
			if bot, err = below.AddNode(x, y); err != nil {
				return nil, err
			}
		}
		col, err := NewBeamColumn(top, bot, b.ActiveAngle, sec, nSub,
			b.ActivePlacement, geom.Vec3{}, geom.Vec3{})
		if err != nil {
			return nil, err
		}
		if err := lvl.Columns.Add(col); err != nil {
			return nil, err
		}
		b.assignToActiveGroups(col)
		columns = append(columns, col)
	}
	return columns, nil
}

// AddBeamAtPoints places a beam between two plan points on every active
// level. Existing nodes at the end points are reused. The offsets are
// global vectors from each node to the internal end of its rigid
// offset.
func (b *Building) AddBeamAtPoints(start, end geom.Vec2, nSub int, offsetI, offsetJ geom.Vec3) ([]*BeamColumn, error) {
	sec := b.Sections.Active()
	if sec == nil {
		return nil, errors.New("no active section specified")
	}
	var beams []*BeamColumn
	for _, lvl := range b.Levels.Active() {
		ni := lvl.LookForNode(start.X, start.Y)
		if ni == nil {
			var err error
			if ni, err = lvl.AddNode(start.X, start.Y); err != nil {
				return nil, err
			}
		}
		nj := lvl.LookForNode(end.X, end.Y)
		if nj == nil {
			var err error
			if nj, err = lvl.AddNode(end.X, end.Y); err != nil {
				return nil, err
			}
		}
		beam, err := NewBeamColumn(ni, nj, b.ActiveAngle, sec, nSub,
			b.ActivePlacement, offsetI, offsetJ)
		if err != nil {
			return nil, err
		}
		if err := lvl.Beams.Add(beam); err != nil {
			return nil, err
		}
		b.assignToActiveGroups(beam)
		beams = append(beams, beam)
	}
	return beams, nil
}

// AddColumnsFromGrids places a column at every gridline intersection.
func (b *Building) AddColumnsFromGrids(nSub int) ([]*BeamColumn, error) {
	var columns []*BeamColumn
	for _, pt := range b.GridSystem.IntersectionPoints() {
		cols, err := b.AddColumnAtPoint(pt.X, pt.Y, nSub)
		if err != nil {
			return nil, err
		}
		columns = append(columns, cols...)
	}
	return columns, nil
}

// AddBeamsFromGrids places beams along every gridline, connecting its
// consecutive intersections with the other gridlines.
func (b *Building) AddBeamsFromGrids(nSub int) ([]*BeamColumn, error) {
	var beams []*BeamColumn
	for _, grid := range b.GridSystem.Grids() {
		pts := b.GridSystem.Intersect(grid)
		for i := 0; i+1 < len(pts); i++ {
			bms, err := b.AddBeamAtPoints(pts[i], pts[i+1], nSub,
				geom.Vec3{}, geom.Vec3{})
			if err != nil {
				return nil, err
			}
			beams = append(beams, bms...)
		}
	}
	return beams, nil
}

func (b *Building) assignToActiveGroups(bc *BeamColumn) {
	for _, g := range b.Groups.Active() {
		g.Add(bc)
	}
}

// AssignSurfaceDL sets the floor dead load of every active level, in
// force per unit area.
func (b *Building) AssignSurfaceDL(loadPerArea float64) {
	for _, lvl := range b.Levels.Active() {
		lvl.AssignSurfaceDL(loadPerArea)
	}
}

// ClearGridLines removes all gridlines.
func (b *Building) ClearGridLines() {
	b.GridSystem.Clear()
}

// SetActiveLevels selects the levels that modeling operations apply to.
func (b *Building) SetActiveLevels(names []string) error {
	return b.Levels.SetActive(names)
}

// SetActiveGroups selects the groups that new elements join.
func (b *Building) SetActiveGroups(names []string) error {
	return b.Groups.SetActive(names)
}

// SetActiveMaterial selects the material used for new sections.
func (b *Building) SetActiveMaterial(name string) error {
	return b.Materials.SetActive(name)
}

// SetActiveSection selects the section assigned to new elements.
func (b *Building) SetActiveSection(name string) error {
	return b.Sections.SetActive(name)
}

// SetActivePlacement selects the section placement of new elements.
func (b *Building) SetActivePlacement(placement string) error {
	p, err := section.ParsePlacement(placement)
	if err != nil {
		return err
	}
	b.ActivePlacement = p
	return nil
}

// SetActiveAngle selects the orientation angle of new elements.
func (b *Building) SetActiveAngle(ang float64) {
	b.ActiveAngle = ang
}

// Beams returns every beam, level by level from the bottom up.
func (b *Building) Beams() []*BeamColumn {
	var out []*BeamColumn
	for _, lvl := range b.Levels.List() {
		out = append(out, lvl.Beams.List()...)
	}
	return out
}

// Columns returns every column, level by level from the bottom up.
func (b *Building) Columns() []*BeamColumn {
	var out []*BeamColumn
	for _, lvl := range b.Levels.List() {
		out = append(out, lvl.Columns.List()...)
	}
	return out
}

// FrameElements returns every beam and column of the building.
func (b *Building) FrameElements() []*BeamColumn {
	return append(b.Beams(), b.Columns()...)
}

// InternalElements returns the linear elements of every frame member.
func (b *Building) InternalElements() []*LinearElement {
	var out []*LinearElement
	for _, bc := range b.FrameElements() {
		out = append(out, bc.InternalElems...)
	}
	return out
}

// PrimaryNodes returns the primary nodes of every level.
func (b *Building) PrimaryNodes() []*Node {
	var out []*Node
	for _, lvl := range b.Levels.List() {
		out = append(out, lvl.Nodes.List()...)
	}
	return out
}

// InternalNodes returns the internal nodes of every frame member.
func (b *Building) InternalNodes() []*Node {
	var out []*Node
	for _, bc := range b.FrameElements() {
		out = append(out, bc.InternalNodes...)
	}
	return out
}

// ParentNodes returns the parent nodes of the levels that have one.
func (b *Building) ParentNodes() []*Node {
	var out []*Node
	for _, lvl := range b.Levels.List() {
		if lvl.ParentNode != nil {
			out = append(out, lvl.ParentNode)
		}
	}
	return out
}

// AllNodes returns the primary, internal and parent nodes.
func (b *Building) AllNodes() []*Node {
	out := b.PrimaryNodes()
	out = append(out, b.InternalNodes()...)
	return append(out, b.ParentNodes()...)
}

// RetrieveBeam finds a beam by unique id.
func (b *Building) RetrieveBeam(uid int64) (*BeamColumn, error) {
	for _, beam := range b.Beams() {
		if beam.UID == uid {
			return beam, nil
		}
	}
	return nil, fmt.Errorf("beam %d does not exist", uid)
}

// RetrieveColumn finds a column by unique id.
func (b *Building) RetrieveColumn(uid int64) (*BeamColumn, error) {
	for _, col := range b.Columns() {
		if col.UID == uid {
			return col, nil
		}
	}
	return nil, fmt.Errorf("column %d does not exist", uid)
}

// ReferenceLength returns the largest dimension of the bounding box of
// the building's primary nodes.
func (b *Building) ReferenceLength() float64 {
	min := geom.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := geom.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, n := range b.PrimaryNodes() {
		min.X = math.Min(min.X, n.Coords.X)
		min.Y = math.Min(min.Y, n.Coords.Y)
		min.Z = math.Min(min.Z, n.Coords.Z)
		max.X = math.Max(max.X, n.Coords.X)
		max.Y = math.Max(max.Y, n.Coords.Y)
		max.Z = math.Max(max.Z, n.Coords.Z)
	}
	return math.Max(max.X-min.X, math.Max(max.Y-min.Y, max.Z-min.Z))
}

// LevelMasses returns the translational mass per level, bottom up.
// Free primary nodes and the parent node count toward their level;
// internal subdivision nodes do not.
func (b *Building) LevelMasses() []float64 {
	lvls := b.Levels.List()
	masses := make([]float64, len(lvls))
	for i, lvl := range lvls {
		total := 0.0
		for _, n := range lvl.Nodes.List() {
			if n.Restraint == RestraintFree {
				total += n.Mass[0]
			}
		}
		if lvl.ParentNode != nil {
			total += lvl.ParentNode.Mass[0]
		}
		masses[i] = total
	}
	return masses
}
