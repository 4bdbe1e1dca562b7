// Package preprocess prepares a building for analysis: it derives floor
// tributary areas from the beam layout, turns slab loads into member
// and node loads, applies self-weight, and condenses each free level's
// mass into a rigid-diaphragm parent node.
package preprocess

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/osmg/osmg/internal/building"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/mesh"
)

// Options selects the preprocessing stages to run.
type Options struct {
	// FloorSlabs derives tributary areas from the beam layout of every
	// free level and distributes the level's surface dead load.
	FloorSlabs bool
	// SelfWeight loads every frame element with its own weight and
	// lumps its mass at the element nodes.
	SelfWeight bool
}

// Run prepares the building for analysis. It can be called again after
// further edits: floor loads and diaphragm data are recomputed from
// scratch on every run.
func Run(ctx context.Context, b *building.Building, opts Options) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resetting floor data.")
	reset(b)

	if opts.FloorSlabs {
		logger.Debug("Calculating tributary areas.")
		g, gctx := errgroup.WithContext(ctx)
		for _, lvl := range b.Levels.List() {
			if lvl.Restraint != building.RestraintFree {
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := partitionFloor(lvl); err != nil {
					return fmt.Errorf("level %s: %w", lvl.Name, err)
				}
				if err := applyFloorLoad(lvl); err != nil {
					return fmt.Errorf("level %s: %w", lvl.Name, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("✅ Floor loads distributed")
	}

	if opts.SelfWeight {
		logger.Debug("Applying self-weight and mass.")
		for _, elm := range b.FrameElements() {
			elm.ApplySelfWeightAndMass(1.0)
		}
		logger.Info("✅ Self-weight applied")
	}

	if opts.FloorSlabs {
		logger.Debug("Condensing level masses into parent nodes.")
		for _, lvl := range b.Levels.List() {
			if lvl.Restraint != building.RestraintFree {
				continue
			}
			if err := condenseMass(lvl); err != nil {
				return fmt.Errorf("level %s: %w", lvl.Name, err)
			}
		}
		logger.Info("✅ Parent nodes placed")
	}

	return nil
}

// reset clears everything a previous run may have produced.
func reset(b *building.Building) {
	for _, lvl := range b.Levels.List() {
		lvl.ParentNode = nil
		lvl.FloorCoordinates = nil
		lvl.FloorPartitionLines = nil
		for _, n := range lvl.Nodes.List() {
			n.LoadFl = [6]float64{}
			n.TributaryArea = 0
		}
		for _, bc := range lvl.FrameElements() {
			bc.TributaryArea = 0
			for _, e := range bc.InternalElems {
				e.UDLFl = geom.Vec3{}
			}
		}
	}
}

// partitionFloor projects the level's beams onto the plan, closes them
// into floor regions, and splits each region's area among its boundary
// beams with a centroid fan.
func partitionFloor(lvl *building.Level) error {
	beams := lvl.Beams.List()
	if len(beams) == 0 {
		return fmt.Errorf("no beams to carry the floor")
	}

	var vertices []*mesh.Vertex
	vertexAt := func(p geom.Vec2) *mesh.Vertex {
		for _, v := range vertices {
			if v.Coords.Dist(p) < geom.Epsilon {
				return v
			}
		}
		v := mesh.NewVertex(p)
		vertices = append(vertices, v)
		return v
	}

	edges := make([]*mesh.Edge, 0, len(beams))
	beamOf := make(map[int64]*building.BeamColumn, len(beams))
	for _, beam := range beams {
		vi := vertexAt(beam.InternalPointI().XY())
		vj := vertexAt(beam.InternalPointJ().XY())
		if vi == vj {
			return fmt.Errorf("beam %d has no clear span on the plan", beam.UID)
		}
		e := mesh.NewEdge(vi, vj)
		beamOf[e.UID] = beam
		edges = append(edges, e)
	}

	// Beams may share end points but must not cross in between.
	for i, e := range edges {
		for _, other := range edges[i+1:] {
			if e.OverlapsOrCrosses(other) {
				return fmt.Errorf("beams %d and %d cross between their end points",
					beamOf[e.UID].UID, beamOf[other.UID].UID)
			}
		}
	}

	halfedges, err := mesh.DefineHalfedges(edges)
	if err != nil {
		return err
	}
	loops := mesh.ObtainClosedLoops(halfedges)
	external, internal, trivial := mesh.OrientLoops(loops)
	if err := mesh.SanityChecks(external, trivial); err != nil {
		return err
	}
	if len(external) == 0 {
		return fmt.Errorf("the beams do not enclose a floor area")
	}
	lvl.FloorCoordinates = external[0].Coords()

	var partitions [][2]geom.Vec2
	for _, loop := range internal {
		coords := loop.Coords()
		centroid := mesh.PolygonCentroid(coords)
		for _, h := range loop {
			vi := h.Vertex.Coords
			vj := h.Head().Coords
			area := mesh.PolygonArea([]geom.Vec2{vi, vj, centroid})
			beamOf[h.Edge.UID].TributaryArea += area
			partitions = append(partitions, [2]geom.Vec2{vi, centroid})
		}
	}
	lvl.FloorPartitionLines = partitions
	return nil
}

// applyFloorLoad turns the level's surface dead load into distributed
// beam loads and nodal floor loads, all acting downward.
func applyFloorLoad(lvl *building.Level) error {
	if lvl.FloorCoordinates == nil {
		return nil
	}
	for _, beam := range lvl.Beams.List() {
		clear := beam.LengthClear()
		if clear < geom.Epsilon {
			return fmt.Errorf("beam %d has zero clear length", beam.UID)
		}
		udl := -beam.TributaryArea * lvl.SurfaceDL / clear
		beam.AddUDLGlobal(geom.Vec3{Z: udl}, building.LoadFloor)
	}
	for _, n := range lvl.Nodes.List() {
		n.LoadFl[2] -= n.TributaryArea * lvl.SurfaceDL
	}
	return nil
}

// condenseMass lumps the level's floor and self mass into a parent node
// at the combined centroid, with the rotational inertia of the floor
// plate and of the distributed nodal masses about it.
func condenseMass(lvl *building.Level) error {
	props := mesh.GeometricProperties(lvl.FloorCoordinates)
	// The external loop runs clockwise, so its area is negative and the
	// floor mass comes out positive.
	floorMass := -lvl.SurfaceDL * props.Area / geom.G
	if floorMass < 0 {
		return fmt.Errorf("negative floor mass: outline area %g", props.Area)
	}

	var selfMass float64
	var selfMoment geom.Vec2
	for _, n := range lvl.ListOfAllNodes() {
		selfMass += n.Mass[0]
		selfMoment = selfMoment.Add(n.Coords.XY().Scale(n.Mass[0]))
	}
	totalMass := selfMass + floorMass
	if totalMass < geom.Epsilon {
		return nil
	}

	centroid := selfMoment.Add(props.Centroid.Scale(floorMass)).Scale(1 / totalMass)
	parent := building.NewNode(
		geom.Vec3{X: centroid.X, Y: centroid.Y, Z: lvl.Elevation},
		building.RestraintParent,
	)
	parent.Mass[0] = totalMass
	parent.Mass[1] = totalMass
	parent.Mass[5] = props.IrMass * floorMass
	for _, n := range lvl.ListOfAllNodes() {
		d := parent.Coords.Dist(n.Coords)
		parent.Mass[5] += n.Mass[0] * d * d
		n.Mass[0] = 0
		n.Mass[1] = 0
	}
	lvl.ParentNode = parent
	return nil
}
