package builder

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"

	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/hcl"
	"github.com/osmg/osmg/internal/material"
	"github.com/osmg/osmg/internal/section"
)

// analysisProperties must be present on every generated section, either
// copied from the shape table row or computed by the generator.
var analysisProperties = []string{"A", "Ix", "Iy", "J"}

// materialRef is the exported object of a material block, decoded back
// from a reference expression.
type materialRef struct {
	Name    string             `cty:"name"`
	Model   string             `cty:"model"`
	Density float64            `cty:"density"`
	Params  map[string]float64 `cty:"params"`
}

// sectionArgs are the arguments of a section block. The shape comes
// from a database row (source plus optional label) or from an inline
// properties table.
type sectionArgs struct {
	Family     string             `osmg:"family"`
	Material   materialRef        `osmg:"material"`
	Source     string             `osmg:"source,optional"`
	Label      string             `osmg:"label,optional"`
	Properties map[string]float64 `osmg:"properties,optional"`
}

func (bl *Builder) evalSection(st *state, blk *config.Block) error {
	var args sectionArgs
	if err := hcl.DecodeArgs(blk.Args, st.evalContext(), &args); err != nil {
		return err
	}

	handler, err := bl.reg.Shape(args.Family)
	if err != nil {
		return err
	}
	if err := st.b.SetActiveMaterial(args.Material.Name); err != nil {
		return err
	}

	// The label picks the shape table row and steers label-dependent
	// generators. The stored section keeps the block's name.
	label := args.Label
	if label == "" {
		label = blk.Name
	}
	gen := func(lbl string, mat *material.Material, row map[string]float64) (*section.Section, error) {
		input := handler.NewInput()
		if err := hcl.DecodeRow(row, input); err != nil {
			return nil, err
		}
		sec, err := handler.Generate(lbl, mat, input)
		if err != nil {
			return nil, err
		}
		sec.Name = blk.Name

		props := make(map[string]float64, len(row))
		for k, v := range row {
			props[k] = v
		}
		for k, v := range sec.Properties {
			props[k] = v
		}
		sec.Properties = props
		for _, k := range analysisProperties {
			if _, ok := props[k]; !ok {
				return nil, fmt.Errorf("shape %s lacks the analysis property %s", lbl, k)
			}
		}
		return sec, nil
	}

	switch {
	case len(args.Properties) > 0 && args.Source != "":
		return errors.New("source and properties are mutually exclusive")
	case len(args.Properties) > 0:
		mat := st.b.Materials.Active()
		sec, err := gen(label, mat, args.Properties)
		if err != nil {
			return fmt.Errorf("section %s: %w", label, err)
		}
		if err := st.b.Sections.Add(sec); err != nil {
			return err
		}
	case args.Source != "":
		db, err := openDatabase(args.Source, blk)
		if err != nil {
			return err
		}
		if _, err := st.b.AddSectionsFromDB(db, []string{label}, gen); err != nil {
			return err
		}
	default:
		return errors.New("a section needs either a source database or inline properties")
	}

	sec, err := st.b.Sections.Get(blk.Name)
	if err != nil {
		return err
	}
	st.export("section", blk.Name, sectionExport(sec))
	return nil
}

// openDatabase resolves a section source: the name of the embedded
// table, or a path to one, relative paths counting from the model file.
func openDatabase(source string, blk *config.Block) (*section.Database, error) {
	if source == "aisc" {
		return section.Embedded()
	}
	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(blk.DeclRange.Filename), path)
	}
	return section.OpenDatabase(path)
}

// sectionExport is the object other blocks see when they reference the
// section.
func sectionExport(sec *section.Section) cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"name":   cty.StringVal(sec.Name),
		"family": cty.StringVal(sec.Family),
		"area":   cty.NumberFloatVal(sec.Properties["A"]),
		"ix":     cty.NumberFloatVal(sec.Properties["Ix"]),
		"iy":     cty.NumberFloatVal(sec.Properties["Iy"]),
		"j":      cty.NumberFloatVal(sec.Properties["J"]),
	})
}
