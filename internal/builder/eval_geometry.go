package builder

import (
	"fmt"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"

	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/geom"
	"github.com/osmg/osmg/internal/hcl"
)

// levelArgs are the arguments of a level block.
type levelArgs struct {
	Elevation float64 `osmg:"elevation"`
	Restraint string  `osmg:"restraint" default:"free"`
}

func (bl *Builder) evalLevel(st *state, blk *config.Block) error {
	var args levelArgs
	if err := hcl.DecodeArgs(blk.Args, st.evalContext(), &args); err != nil {
		return err
	}
	_, err := st.b.AddLevel(blk.Name, args.Elevation, args.Restraint)
	return err
}

// gridLineArgs are the arguments of a gridline block. Start and end are
// plan coordinate pairs.
type gridLineArgs struct {
	Start []float64 `osmg:"start"`
	End   []float64 `osmg:"end"`
}

func (bl *Builder) evalGridLine(st *state, blk *config.Block) error {
	var args gridLineArgs
	if err := hcl.DecodeArgs(blk.Args, st.evalContext(), &args); err != nil {
		return err
	}
	start, err := planPoint(args.Start)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := planPoint(args.End)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	g, err := st.b.AddGridLine(blk.Name, start, end)
	if err != nil {
		return err
	}

	st.export("gridline", blk.Name, cty.ObjectVal(map[string]cty.Value{
		"name":   cty.StringVal(g.Tag),
		"start":  planPointVal(g.Start),
		"end":    planPointVal(g.End),
		"length": cty.NumberFloatVal(g.Length),
	}))
	return nil
}

// gridImportArgs are the arguments of a grid_import block. The path
// points at a DXF file, relative paths count from the model file.
type gridImportArgs struct {
	Path string `osmg:"path"`
}

func (bl *Builder) evalGridImport(st *state, blk *config.Block) error {
	var args gridImportArgs
	if err := hcl.DecodeArgs(blk.Args, st.evalContext(), &args); err != nil {
		return err
	}
	path := args.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(blk.DeclRange.Filename), path)
	}
	_, err := st.b.AddGridLinesFromDXFFile(path)
	return err
}

// planPoint checks that a coordinate pair has exactly two entries.
func planPoint(coords []float64) (geom.Vec2, error) {
	if len(coords) != 2 {
		return geom.Vec2{}, fmt.Errorf("a plan point needs exactly two coordinates, got %d", len(coords))
	}
	return geom.Vec2{X: coords[0], Y: coords[1]}, nil
}

func planPointVal(p geom.Vec2) cty.Value {
	return cty.ListVal([]cty.Value{cty.NumberFloatVal(p.X), cty.NumberFloatVal(p.Y)})
}
