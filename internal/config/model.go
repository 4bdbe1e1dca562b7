package config

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/osmg/osmg/internal/addr"
)

// Definition is the unified representation of a building definition,
// merged from every loaded model file.
type Definition struct {
	Blocks []*Block
}

// Block is the format-agnostic representation of a single top-level
// block. Its arguments stay unevaluated expressions until the builder
// evaluates the block in dependency order.
type Block struct {
	Kind      string
	Name      string
	Args      map[string]hcl.Expression
	DependsOn []string
	DeclRange hcl.Range
}

// Address returns the block's address.
func (b *Block) Address() addr.Address {
	return addr.Address{Kind: b.Kind, Name: b.Name}
}

// BlocksOfKind returns the blocks of one kind in definition order.
func (d *Definition) BlocksOfKind(kind string) []*Block {
	var out []*Block
	for _, b := range d.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// Find returns the block with the given address, or nil.
func (d *Definition) Find(a addr.Address) *Block {
	for _, b := range d.Blocks {
		if b.Kind == a.Kind && b.Name == a.Name {
			return b
		}
	}
	return nil
}
