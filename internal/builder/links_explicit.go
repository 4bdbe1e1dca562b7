package builder

import (
	"context"
	"fmt"

	"github.com/osmg/osmg/internal/addr"
	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/dag"
)

// linkExplicitDeps resolves dependencies declared through depends_on.
func linkExplicitDeps(ctx context.Context, def *config.Definition, g *dag.Graph) error {
	baseLogger := ctxlog.FromContext(ctx)
	baseLogger.Debug("Starting explicit linking pass.")

	for _, blk := range def.Blocks {
		a := blk.Address()
		for _, raw := range blk.DependsOn {
			logger := baseLogger.With("block", a.String(), "depends_on", raw)
			logger.Debug("Resolving explicit dependency.")

			dep, err := addr.Parse(raw)
			if err != nil {
				return fmt.Errorf("in %s %q at %s: %w", blk.Kind, blk.Name, blk.DeclRange, err)
			}
			if !g.Has(dep) {
				return fmt.Errorf("%s depends on non-existent block %q at %s", a, raw, blk.DeclRange)
			}

			logger.Debug("Linking explicit dependency.", "from", dep.String(), "to", a.String())
			if err := g.AddEdge(dep, a); err != nil {
				return fmt.Errorf("error linking explicit dependency: %w", err)
			}
		}
	}

	baseLogger.Debug("Finished explicit linking pass.")
	return nil
}
