package builder

import (
	"errors"

	"github.com/zclconf/go-cty/cty"

	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/hcl"
	"github.com/osmg/osmg/internal/material"
)

// materialArgs are the arguments of a material block: either a preset
// name, or an explicit model with its density and parameters.
type materialArgs struct {
	Preset  string             `osmg:"preset,optional"`
	Model   string             `osmg:"model,optional"`
	Density float64            `osmg:"density,optional"`
	Params  map[string]float64 `osmg:"params,optional"`
}

func (bl *Builder) evalMaterial(st *state, blk *config.Block) error {
	var args materialArgs
	if err := hcl.DecodeArgs(blk.Args, st.evalContext(), &args); err != nil {
		return err
	}

	var mat *material.Material
	switch {
	case args.Preset != "" && args.Model != "":
		return errors.New("preset and model are mutually exclusive")
	case args.Preset != "":
		m, err := material.Preset(args.Preset)
		if err != nil {
			return err
		}
		m.Name = blk.Name
		mat = m
	case args.Model != "":
		if args.Density <= 0 {
			return errors.New("an explicit material needs a positive density")
		}
		mat = material.New(blk.Name, args.Model, args.Density, args.Params)
	default:
		return errors.New("a material needs either a preset or a model")
	}

	if err := st.b.Materials.Add(mat); err != nil {
		return err
	}

	st.export("material", blk.Name, materialExport(mat))
	return nil
}

// materialExport is the object other blocks see when they reference the
// material.
func materialExport(mat *material.Material) cty.Value {
	params := cty.MapValEmpty(cty.Number)
	if len(mat.Params) > 0 {
		vals := make(map[string]cty.Value, len(mat.Params))
		for k, v := range mat.Params {
			vals[k] = cty.NumberFloatVal(v)
		}
		params = cty.MapVal(vals)
	}
	return cty.ObjectVal(map[string]cty.Value{
		"name":    cty.StringVal(mat.Name),
		"model":   cty.StringVal(mat.Model),
		"density": cty.NumberFloatVal(mat.Density),
		"params":  params,
	})
}
