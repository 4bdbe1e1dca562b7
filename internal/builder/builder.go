package builder

import (
	"context"
	"fmt"

	"github.com/osmg/osmg/internal/addr"
	"github.com/osmg/osmg/internal/building"
	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/dag"
	"github.com/osmg/osmg/internal/preprocess"
	"github.com/osmg/osmg/internal/registry"
)

// Builder assembles buildings from block definitions. Section blocks
// look their shape generators up in the registry.
type Builder struct {
	reg *registry.Registry
}

// New creates a builder backed by the given shape registry.
func New(reg *registry.Registry) *Builder {
	return &Builder{reg: reg}
}

// Result is the outcome of a successful build.
type Result struct {
	// Building is the assembled physical model.
	Building *building.Building

	// Description is the model block's description, when given.
	Description string

	// Preprocess holds the options of the definition's preprocess
	// block, or nil when the definition has none.
	Preprocess *preprocess.Options

	// Order is the evaluation order of the definition's blocks.
	Order []addr.Address
}

// Build runs all passes over the definition and returns the assembled
// building.
func (bl *Builder) Build(ctx context.Context, def *config.Definition) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")

	g := dag.New()

	// First pass: create a graph node per block.
	if err := createNodes(ctx, def, g); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "node_count", g.Len())

	// Second and third pass: link references and depends_on.
	if err := linkImplicitDeps(ctx, def, g); err != nil {
		return nil, err
	}
	if err := linkExplicitDeps(ctx, def, g); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	// Fourth pass: construction order between block kinds.
	if err := linkKindOrder(ctx, def, g); err != nil {
		return nil, err
	}
	logger.Debug("Build: Kind ordering complete.")

	// Final validation: cycle detection, then the evaluation order.
	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("error ordering dependency graph: %w", err)
	}
	logger.Debug("Build: Graph construction successful.", "order_length", len(order))

	result, err := bl.evaluate(ctx, def, order)
	if err != nil {
		return nil, err
	}

	logger.Info("✅ Model assembly complete.",
		"blocks", len(order),
		"levels", len(result.Building.Levels.List()),
		"elements", len(result.Building.FrameElements()),
	)
	return result, nil
}
