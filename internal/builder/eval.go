package builder

import (
	"context"
	"fmt"

	hclv2 "github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/osmg/osmg/internal/addr"
	"github.com/osmg/osmg/internal/building"
	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/hcl"
	"github.com/osmg/osmg/internal/preprocess"
)

// state carries the building under construction and the exported
// objects of the blocks evaluated so far.
type state struct {
	b       *building.Building
	result  *Result
	exports map[string]map[string]cty.Value
}

func newState() *state {
	b := building.New()
	return &state{
		b:      b,
		result: &Result{Building: b},
		exports: map[string]map[string]cty.Value{
			"material": {},
			"section":  {},
			"gridline": {},
		},
	}
}

// evalContext builds the expression evaluation context from the exports
// collected so far. A root with no exports yet is an empty object, so a
// stray reference fails with an unknown attribute instead of an unknown
// variable.
func (st *state) evalContext() *hclv2.EvalContext {
	vars := make(map[string]cty.Value, len(st.exports))
	for root, objs := range st.exports {
		if len(objs) == 0 {
			vars[root] = cty.EmptyObjectVal
			continue
		}
		vars[root] = cty.ObjectVal(objs)
	}
	return &hclv2.EvalContext{Variables: vars}
}

// export registers a block's exported object for downstream references.
func (st *state) export(root, name string, val cty.Value) {
	st.exports[root][name] = val
}

// evaluate runs the per-kind evaluators over the blocks in topological
// order, mutating the building as it goes.
func (bl *Builder) evaluate(ctx context.Context, def *config.Definition, order []addr.Address) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting evaluation pass.")

	st := newState()
	st.result.Order = order

	for _, a := range order {
		blk := def.Find(a)
		if blk == nil {
			return nil, fmt.Errorf("internal error: ordered block %s not found in definition", a)
		}
		logger.Debug("Evaluating block.", "address", a.String())

		var err error
		switch blk.Kind {
		case addr.KindModel:
			err = bl.evalModel(st, blk)
		case addr.KindMaterial:
			err = bl.evalMaterial(st, blk)
		case addr.KindLevel:
			err = bl.evalLevel(st, blk)
		case addr.KindGridLine:
			err = bl.evalGridLine(st, blk)
		case addr.KindGridImport:
			err = bl.evalGridImport(st, blk)
		case addr.KindSection:
			err = bl.evalSection(st, blk)
		case addr.KindColumns:
			err = bl.evalColumns(st, blk)
		case addr.KindBeams:
			err = bl.evalBeams(st, blk)
		case addr.KindSurfaceLoad:
			err = bl.evalSurfaceLoad(st, blk)
		case addr.KindPreprocess:
			err = bl.evalPreprocess(st, blk)
		default:
			err = fmt.Errorf("no evaluator for block kind %q", blk.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s at %s: %w", a, blk.DeclRange, err)
		}
	}

	logger.Debug("Finished evaluation pass.")
	return st.result, nil
}

// modelArgs are the arguments of the model block. Placement and angle
// become the active values that columns and beams blocks inherit; a
// member block only overrides them when it sets its own.
type modelArgs struct {
	Description string  `osmg:"description,optional"`
	Placement   string  `osmg:"placement" default:"centroid"`
	Angle       float64 `osmg:"angle" default:"0"`
}

func (bl *Builder) evalModel(st *state, blk *config.Block) error {
	var args modelArgs
	if err := hcl.DecodeArgs(blk.Args, st.evalContext(), &args); err != nil {
		return err
	}
	st.result.Description = args.Description
	if err := st.b.SetActivePlacement(args.Placement); err != nil {
		return err
	}
	st.b.SetActiveAngle(args.Angle)
	return nil
}

type preprocessArgs struct {
	FloorSlabs bool `osmg:"floor_slabs" default:"true"`
	SelfWeight bool `osmg:"self_weight" default:"true"`
}

// evalPreprocess only captures the options. Preprocessing runs after
// the build, on the assembled building.
func (bl *Builder) evalPreprocess(st *state, blk *config.Block) error {
	var args preprocessArgs
	if err := hcl.DecodeArgs(blk.Args, st.evalContext(), &args); err != nil {
		return err
	}
	st.result.Preprocess = &preprocess.Options{
		FloorSlabs: args.FloorSlabs,
		SelfWeight: args.SelfWeight,
	}
	return nil
}

// decodeLevels evaluates a block's levels argument, which is either a
// selection keyword ("all", "all_above_base"), a single level name, or
// a list of names. It defaults to all levels above the base. The
// remaining arguments are returned for regular decoding.
func decodeLevels(st *state, blk *config.Block) ([]string, map[string]hclv2.Expression, error) {
	rest := make(map[string]hclv2.Expression, len(blk.Args))
	for k, v := range blk.Args {
		rest[k] = v
	}
	expr, ok := rest["levels"]
	delete(rest, "levels")
	if !ok {
		return []string{"all_above_base"}, rest, nil
	}

	val, diags := expr.Value(st.evalContext())
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("failed to evaluate argument \"levels\": %w", diags)
	}
	if val.Type() == cty.String {
		return []string{val.AsString()}, rest, nil
	}
	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, nil, fmt.Errorf("levels must be a selection keyword or a list of level names: %w", err)
	}
	var names []string
	if err := gocty.FromCtyValue(listVal, &names); err != nil {
		return nil, nil, fmt.Errorf("levels must be a selection keyword or a list of level names: %w", err)
	}
	return names, rest, nil
}
