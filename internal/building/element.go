package building

import (
	"errors"
	"fmt"
	"sort"

	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/section"
)

// LoadKind separates directly applied element loads from those
// distributed by the floor slabs during preprocessing.
type LoadKind int

const (
	LoadGeneric LoadKind = iota
	LoadFloor
)

// ErrElementExists reports a duplicate element between the same pair of
// nodes.
var ErrElementExists = errors.New("element already exists")

// LinearElement is the most primitive frame member: a single line
// between two nodes, with optional rigid end offsets. UDL components
// are in the element's local system, in force per unit length over the
// clear length.
type LinearElement struct {
	UID     int64
	NodeI   *Node
	NodeJ   *Node
	Section *section.Section
	Ang     float64
	OffsetI geom.Vec3
	OffsetJ geom.Vec3
	UDL     geom.Vec3
	UDLFl   geom.Vec3
	X       geom.Vec3
	Y       geom.Vec3
	Z       geom.Vec3
}

// NewLinearElement creates a linear element and derives its local axes
// from the internal (offset) end points.
func NewLinearElement(ni, nj *Node, sec *section.Section, ang float64, offsetI, offsetJ geom.Vec3) (*LinearElement, error) {
	e := &LinearElement{
		UID:     nextID(),
		NodeI:   ni,
		NodeJ:   nj,
		Section: sec,
		Ang:     ang,
		OffsetI: offsetI,
		OffsetJ: offsetJ,
	}
	x, y, z, err := geom.LocalAxes(e.InternalPointI(), e.InternalPointJ(), ang)
	if err != nil {
		return nil, fmt.Errorf("element between nodes %d and %d: %w", ni.UID, nj.UID, err)
	}
	e.X, e.Y, e.Z = x, y, z
	return e, nil
}

// InternalPointI is the element end at the inside of the i offset.
func (e *LinearElement) InternalPointI() geom.Vec3 {
	return e.NodeI.Coords.Add(e.OffsetI)
}

// InternalPointJ is the element end at the inside of the j offset.
func (e *LinearElement) InternalPointJ() geom.Vec3 {
	return e.NodeJ.Coords.Add(e.OffsetJ)
}

// LengthClear is the element length between the internal points.
func (e *LinearElement) LengthClear() float64 {
	return e.InternalPointJ().Dist(e.InternalPointI())
}

// AddUDLGlobal accumulates a uniformly distributed load given in the
// global system, converting it to the element's local system first.
func (e *LinearElement) AddUDLGlobal(udl geom.Vec3, kind LoadKind) {
	local := geom.TransformationMatrix(e.X, e.Y, e.Z).MulVec(udl)
	switch kind {
	case LoadGeneric:
		e.UDL = e.UDL.Add(local)
	case LoadFloor:
		e.UDLFl = e.UDLFl.Add(local)
	default:
		panic(fmt.Sprintf("building: unsupported load kind %d", kind))
	}
}

// UDLTotal sums the generic and floor load contributions.
func (e *LinearElement) UDLTotal() geom.Vec3 {
	return e.UDL.Add(e.UDLFl)
}

// BeamColumn is a frame member: a chain of linear elements connected in
// series between two primary nodes. Construction shifts both ends by
// the section placement offset and splits the clear span into NSub
// equal internal elements, minting the in-between nodes.
type BeamColumn struct {
	UID           int64
	NodeI         *Node
	NodeJ         *Node
	Ang           float64
	Section       *section.Section
	NSub          int
	Placement     section.Placement
	OffsetI       geom.Vec3
	OffsetJ       geom.Vec3
	TributaryArea float64
	InternalNodes []*Node
	InternalElems []*LinearElement
}

// NewBeamColumn creates a frame member between two primary nodes.
func NewBeamColumn(ni, nj *Node, ang float64, sec *section.Section, nSub int, placement section.Placement, offsetI, offsetJ geom.Vec3) (*BeamColumn, error) {
	if nSub < 1 {
		return nil, fmt.Errorf("n_sub must be at least 1, got %d", nSub)
	}

	pi := ni.Coords.Add(offsetI)
	pj := nj.Coords.Add(offsetJ)

	// Shift both ends from the placement point to the section centroid.
	dz, dy, err := sec.Offset(placement)
	if err != nil {
		return nil, err
	}
	secLocal := geom.Vec3{X: 0, Y: dy, Z: dz}
	x, y, z, err := geom.LocalAxes(pi, pj, ang)
	if err != nil {
		return nil, fmt.Errorf("frame element between nodes %d and %d: %w", ni.UID, nj.UID, err)
	}
	secGlobal := geom.TransformationMatrix(x, y, z).Transpose().MulVec(secLocal)
	pi = pi.Add(secGlobal)
	pj = pj.Add(secGlobal)
	offsetI = offsetI.Add(secGlobal)
	offsetJ = offsetJ.Add(secGlobal)

	bc := &BeamColumn{
		UID:       nextID(),
		NodeI:     ni,
		NodeJ:     nj,
		Ang:       ang,
		Section:   sec,
		NSub:      nSub,
		Placement: placement,
		OffsetI:   offsetI,
		OffsetJ:   offsetJ,
	}

	step := pj.Sub(pi).Scale(1 / float64(nSub))
	for i := 1; i < nSub; i++ {
		bc.InternalNodes = append(bc.InternalNodes,
			NewNode(pi.Add(step.Scale(float64(i))), RestraintInternal))
	}
	for i := 0; i < nSub; i++ {
		nodeI, iOffset := bc.NodeI, bc.OffsetI
		if i > 0 {
			nodeI, iOffset = bc.InternalNodes[i-1], geom.Vec3{}
		}
		nodeJ, jOffset := bc.NodeJ, bc.OffsetJ
		if i < nSub-1 {
			nodeJ, jOffset = bc.InternalNodes[i], geom.Vec3{}
		}
		elem, err := NewLinearElement(nodeI, nodeJ, sec, ang, iOffset, jOffset)
		if err != nil {
			return nil, err
		}
		bc.InternalElems = append(bc.InternalElems, elem)
	}
	return bc, nil
}

// InternalPointI is the member end at the inside of the i offset.
func (bc *BeamColumn) InternalPointI() geom.Vec3 {
	return bc.NodeI.Coords.Add(bc.OffsetI)
}

// InternalPointJ is the member end at the inside of the j offset.
func (bc *BeamColumn) InternalPointJ() geom.Vec3 {
	return bc.NodeJ.Coords.Add(bc.OffsetJ)
}

// LengthClear is the member length between the internal points.
func (bc *BeamColumn) LengthClear() float64 {
	return bc.InternalPointJ().Dist(bc.InternalPointI())
}

// AddUDLGlobal fans a globally expressed distributed load out to the
// internal elements.
func (bc *BeamColumn) AddUDLGlobal(udl geom.Vec3, kind LoadKind) {
	for _, e := range bc.InternalElems {
		e.AddUDLGlobal(udl, kind)
	}
}

// ApplySelfWeightAndMass applies the member's own weight as a downward
// distributed load and lumps its mass at the internal element end
// nodes, half of each element's share per end.
func (bc *BeamColumn) ApplySelfWeightAndMass(multiplier float64) {
	if multiplier == 0 {
		return
	}
	area := bc.Section.Properties["A"]
	massPerLength := area * bc.Section.Material.Density * multiplier
	weightPerLength := massPerLength * geom.G

	bc.AddUDLGlobal(geom.Vec3{X: 0, Y: 0, Z: -weightPerLength}, LoadGeneric)
	for _, e := range bc.InternalElems {
		m := massPerLength * e.LengthClear() / 2
		for i := 0; i < 3; i++ {
			e.NodeI.Mass[i] += m
			e.NodeJ.Mass[i] += m
		}
	}
}

// sameSpan reports whether two members connect the same pair of points,
// in either direction.
func (bc *BeamColumn) sameSpan(other *BeamColumn) bool {
	return (bc.NodeI.SamePlace(other.NodeI) && bc.NodeJ.SamePlace(other.NodeJ)) ||
		(bc.NodeI.SamePlace(other.NodeJ) && bc.NodeJ.SamePlace(other.NodeI))
}

// ElementCollection keeps the frame members of a level, sorted on the
// plan position of their i node.
type ElementCollection struct {
	list []*BeamColumn
}

// Add inserts a member. Two members cannot span the same pair of nodes.
func (ec *ElementCollection) Add(bc *BeamColumn) error {
	for _, other := range ec.list {
		if bc.sameSpan(other) {
			return fmt.Errorf("%w: between nodes %d and %d", ErrElementExists,
				bc.NodeI.UID, bc.NodeJ.UID)
		}
	}
	ec.list = append(ec.list, bc)
	sort.SliceStable(ec.list, func(i, j int) bool {
		return ec.list[i].NodeI.OrderKey() < ec.list[j].NodeI.OrderKey()
	})
	return nil
}

// List returns the members in plan order.
func (ec *ElementCollection) List() []*BeamColumn {
	return ec.list
}
