package builder

import (
	"errors"
	"fmt"

	"github.com/osmg/osmg/internal/building"
	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/hcl"
)

// sectionRef is the exported object of a section block, decoded back
// from a reference expression.
type sectionRef struct {
	Name   string  `cty:"name"`
	Family string  `cty:"family"`
	Area   float64 `cty:"area"`
	Ix     float64 `cty:"ix"`
	Iy     float64 `cty:"iy"`
	J      float64 `cty:"j"`
}

// columnsArgs are the arguments of a columns block. Columns go on every
// gridline intersection unless explicit points are given. Unset
// placement and angle inherit the model-level active values.
type columnsArgs struct {
	Section   sectionRef  `osmg:"section"`
	NSub      int         `osmg:"n_sub" default:"1"`
	Angle     *float64    `osmg:"angle,optional"`
	Placement string      `osmg:"placement,optional"`
	Groups    []string    `osmg:"groups,optional"`
	OnGrids   bool        `osmg:"on_grids" default:"true"`
	Points    [][]float64 `osmg:"points,optional"`
}

// beamsArgs are the arguments of a beams block. Beams run along the
// gridlines unless explicit spans are given; rigid end offsets only
// apply to spans.
type beamsArgs struct {
	Section   sectionRef `osmg:"section"`
	NSub      int        `osmg:"n_sub" default:"1"`
	Angle     *float64   `osmg:"angle,optional"`
	Placement string     `osmg:"placement,optional"`
	Groups    []string   `osmg:"groups,optional"`
	OnGrids   bool       `osmg:"on_grids" default:"true"`
	Spans     []span     `osmg:"spans,optional"`
	OffsetI   []float64  `osmg:"offset_i,optional"`
	OffsetJ   []float64  `osmg:"offset_j,optional"`
}

// span is one beam run between two plan points.
type span struct {
	Start []float64 `cty:"start"`
	End   []float64 `cty:"end"`
}

func (bl *Builder) evalColumns(st *state, blk *config.Block) error {
	levels, rest, err := decodeLevels(st, blk)
	if err != nil {
		return err
	}
	var args columnsArgs
	if err := hcl.DecodeArgs(rest, st.evalContext(), &args); err != nil {
		return err
	}
	if err := activateFrameContext(st.b, levels, args.Section.Name, args.Placement, args.Angle, args.Groups); err != nil {
		return err
	}

	switch {
	case len(args.Points) > 0:
		for _, p := range args.Points {
			pt, err := planPoint(p)
			if err != nil {
				return err
			}
			if _, err := st.b.AddColumnAtPoint(pt.X, pt.Y, args.NSub); err != nil {
				return err
			}
		}
	case args.OnGrids:
		if _, err := st.b.AddColumnsFromGrids(args.NSub); err != nil {
			return err
		}
	default:
		return errors.New("a columns block needs points or on_grids")
	}
	return nil
}

func (bl *Builder) evalBeams(st *state, blk *config.Block) error {
	levels, rest, err := decodeLevels(st, blk)
	if err != nil {
		return err
	}
	var args beamsArgs
	if err := hcl.DecodeArgs(rest, st.evalContext(), &args); err != nil {
		return err
	}
	if err := activateFrameContext(st.b, levels, args.Section.Name, args.Placement, args.Angle, args.Groups); err != nil {
		return err
	}

	offsetI, err := offsetVec(args.OffsetI)
	if err != nil {
		return fmt.Errorf("offset_i: %w", err)
	}
	offsetJ, err := offsetVec(args.OffsetJ)
	if err != nil {
		return fmt.Errorf("offset_j: %w", err)
	}

	switch {
	case len(args.Spans) > 0:
		for _, s := range args.Spans {
			start, err := planPoint(s.Start)
			if err != nil {
				return fmt.Errorf("span start: %w", err)
			}
			end, err := planPoint(s.End)
			if err != nil {
				return fmt.Errorf("span end: %w", err)
			}
			if _, err := st.b.AddBeamAtPoints(start, end, args.NSub, offsetI, offsetJ); err != nil {
				return err
			}
		}
	case args.OnGrids:
		if len(args.OffsetI) > 0 || len(args.OffsetJ) > 0 {
			return errors.New("offset_i and offset_j only apply to spans")
		}
		if _, err := st.b.AddBeamsFromGrids(args.NSub); err != nil {
			return err
		}
	default:
		return errors.New("a beams block needs spans or on_grids")
	}
	return nil
}

// activateFrameContext points the building's active selections at the
// block's targets before members are placed. An empty placement or nil
// angle keeps the model-level active value.
func activateFrameContext(b *building.Building, levels []string, sectionName, placement string, angle *float64, groups []string) error {
	if err := b.SetActiveLevels(levels); err != nil {
		return err
	}
	if err := b.SetActiveSection(sectionName); err != nil {
		return err
	}
	if placement != "" {
		if err := b.SetActivePlacement(placement); err != nil {
			return err
		}
	}
	if angle != nil {
		b.SetActiveAngle(*angle)
	}
	if err := ensureGroups(b, groups); err != nil {
		return err
	}
	return b.SetActiveGroups(groups)
}

// ensureGroups creates the named groups that do not exist yet.
func ensureGroups(b *building.Building, names []string) error {
	for _, name := range names {
		if _, err := b.Groups.Get(name); err == nil {
			continue
		}
		if _, err := b.AddGroup(name); err != nil {
			return err
		}
	}
	return nil
}

// offsetVec turns an optional [x, y, z] offset into a vector.
func offsetVec(coords []float64) (geom.Vec3, error) {
	if len(coords) == 0 {
		return geom.Vec3{}, nil
	}
	if len(coords) != 3 {
		return geom.Vec3{}, fmt.Errorf("an offset needs exactly three coordinates, got %d", len(coords))
	}
	return geom.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
