package builder

import (
	"context"
	"fmt"

	"github.com/osmg/osmg/internal/addr"
	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/dag"
)

// kindOrder lists the construction order between block kinds: materials
// exist before the sections made of them, stories and grids exist
// before the members placed on them.
var kindOrder = []struct{ before, after string }{
	{addr.KindMaterial, addr.KindSection},
	{addr.KindSection, addr.KindColumns},
	{addr.KindSection, addr.KindBeams},
	{addr.KindLevel, addr.KindColumns},
	{addr.KindLevel, addr.KindBeams},
	{addr.KindLevel, addr.KindSurfaceLoad},
	{addr.KindGridLine, addr.KindColumns},
	{addr.KindGridLine, addr.KindBeams},
	{addr.KindGridImport, addr.KindColumns},
	{addr.KindGridImport, addr.KindBeams},
}

// chainedKinds are evaluated in the order they were written: levels
// must be defined bottom up, and grid imports keep file order.
var chainedKinds = []string{addr.KindLevel, addr.KindGridImport}

// linkKindOrder adds the edges that encode physical construction order,
// so the topological sort interleaves unrelated blocks correctly.
func linkKindOrder(ctx context.Context, def *config.Definition, g *dag.Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting kind ordering pass.")

	byKind := make(map[string][]addr.Address)
	for _, blk := range def.Blocks {
		byKind[blk.Kind] = append(byKind[blk.Kind], blk.Address())
	}

	for _, pair := range kindOrder {
		for _, before := range byKind[pair.before] {
			for _, after := range byKind[pair.after] {
				if err := g.AddEdge(before, after); err != nil {
					return fmt.Errorf("error ordering %s before %s: %w", before, after, err)
				}
			}
		}
	}

	// The model block leads and the preprocess block trails everything.
	for _, m := range byKind[addr.KindModel] {
		for _, blk := range def.Blocks {
			a := blk.Address()
			if a.Kind == addr.KindModel {
				continue
			}
			if err := g.AddEdge(m, a); err != nil {
				return fmt.Errorf("error ordering %s before %s: %w", m, a, err)
			}
		}
	}
	for _, p := range byKind[addr.KindPreprocess] {
		for _, blk := range def.Blocks {
			a := blk.Address()
			if a.Kind == addr.KindPreprocess {
				continue
			}
			if err := g.AddEdge(a, p); err != nil {
				return fmt.Errorf("error ordering %s before %s: %w", a, p, err)
			}
		}
	}

	for _, kind := range chainedKinds {
		chain := byKind[kind]
		for i := 0; i+1 < len(chain); i++ {
			if err := g.AddEdge(chain[i], chain[i+1]); err != nil {
				return fmt.Errorf("error chaining %s before %s: %w", chain[i], chain[i+1], err)
			}
		}
	}

	logger.Debug("Finished kind ordering pass.")
	return nil
}
