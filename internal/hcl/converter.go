package hcl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/osmg/osmg/internal/addr"
	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/schema"
)

// Converter is the HCL-specific implementation of the config.Converter
// interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert merges schema files into a single definition. Blocks keep the
// order they appear in, file by file. Block names must be unique per
// kind; grid_import blocks are unnamed and get running index names.
func (c *Converter) Convert(ctx context.Context, files []*schema.File) (*config.Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Converting schema files into a definition.", "file_count", len(files))

	def := &config.Definition{}
	seen := make(map[addr.Address]*config.Block)
	gridImports := 0

	appendBlock := func(kind, name string, body hcl.Body) error {
		b, err := newBlock(kind, name, body)
		if err != nil {
			return err
		}
		if prev, ok := seen[b.Address()]; ok {
			if name == kind {
				return fmt.Errorf("a %s block is already defined at %s (and again at %s)",
					kind, prev.DeclRange, b.DeclRange)
			}
			return fmt.Errorf("duplicate %s block %q at %s (first defined at %s)",
				kind, name, b.DeclRange, prev.DeclRange)
		}
		seen[b.Address()] = b
		def.Blocks = append(def.Blocks, b)
		return nil
	}

	appendLabeled := func(kind string, blocks []*schema.LabeledBlock) error {
		for _, blk := range blocks {
			if !addr.ValidName(blk.Name) {
				return fmt.Errorf("invalid %s block name %q at %s",
					kind, blk.Name, blk.Body.MissingItemRange())
			}
			if err := appendBlock(kind, blk.Name, blk.Body); err != nil {
				return err
			}
		}
		return nil
	}

	for _, f := range files {
		if f.Model != nil {
			if err := appendBlock(addr.KindModel, addr.KindModel, f.Model.Body); err != nil {
				return nil, err
			}
		}
		if err := appendLabeled(addr.KindMaterial, f.Materials); err != nil {
			return nil, err
		}
		if err := appendLabeled(addr.KindLevel, f.Levels); err != nil {
			return nil, err
		}
		if err := appendLabeled(addr.KindGridLine, f.GridLines); err != nil {
			return nil, err
		}
		for _, blk := range f.GridImports {
			if err := appendBlock(addr.KindGridImport, strconv.Itoa(gridImports), blk.Body); err != nil {
				return nil, err
			}
			gridImports++
		}
		if err := appendLabeled(addr.KindSection, f.Sections); err != nil {
			return nil, err
		}
		if err := appendLabeled(addr.KindColumns, f.Columns); err != nil {
			return nil, err
		}
		if err := appendLabeled(addr.KindBeams, f.Beams); err != nil {
			return nil, err
		}
		if err := appendLabeled(addr.KindSurfaceLoad, f.SurfaceLoads); err != nil {
			return nil, err
		}
		if f.Preprocess != nil {
			if err := appendBlock(addr.KindPreprocess, addr.KindPreprocess, f.Preprocess.Body); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("Conversion complete.", "block_count", len(def.Blocks))
	return def, nil
}

// newBlock converts a block body into the format-agnostic form. All
// attributes stay lazy expressions except the depends_on meta-argument,
// which must be a static list of address strings.
func newBlock(kind, name string, body hcl.Body) (*config.Block, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read arguments of %s %q: %w", kind, name, diags)
	}

	args := make(map[string]hcl.Expression, len(attrs))
	for attrName, attr := range attrs {
		args[attrName] = attr.Expr
	}

	b := &config.Block{
		Kind:      kind,
		Name:      name,
		Args:      args,
		DeclRange: body.MissingItemRange(),
	}

	if expr, ok := args["depends_on"]; ok {
		delete(args, "depends_on")
		deps, err := decodeDependsOn(expr)
		if err != nil {
			return nil, fmt.Errorf("in %s %q: %w", kind, name, err)
		}
		b.DependsOn = deps
	}

	return b, nil
}

// decodeDependsOn evaluates a depends_on expression. No evaluation
// context is passed: the meta-argument cannot reference other blocks.
func decodeDependsOn(expr hcl.Expression) ([]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("depends_on must be a static list of addresses: %w", diags)
	}
	listVal, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("depends_on must be a list of strings: %w", err)
	}
	if listVal.IsNull() {
		return nil, nil
	}

	var out []string
	for it := listVal.ElementIterator(); it.Next(); {
		_, v := it.Element()
		out = append(out, v.AsString())
	}
	return out, nil
}
