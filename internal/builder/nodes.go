package builder

import (
	"context"
	"fmt"

	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/dag"
)

// createNodes performs the first pass of graph creation, populating the
// graph with a vertex per block.
func createNodes(ctx context.Context, def *config.Definition, g *dag.Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node creation pass.")

	for _, blk := range def.Blocks {
		a := blk.Address()
		logger.Debug("Creating block node.", "address", a.String())
		if err := g.AddNode(a); err != nil {
			return fmt.Errorf("error creating node for %s at %s: %w", a, blk.DeclRange, err)
		}
	}

	logger.Debug("Finished node creation pass.")
	return nil
}
