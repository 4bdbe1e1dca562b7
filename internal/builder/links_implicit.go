package builder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/osmg/osmg/internal/addr"
	"github.com/osmg/osmg/internal/config"
	"github.com/osmg/osmg/internal/ctxlog"
	"github.com/osmg/osmg/internal/dag"
)

// referenceRoots maps expression roots to the block kind they address.
// Only these kinds export objects into the evaluation context.
var referenceRoots = map[string]string{
	"material": addr.KindMaterial,
	"section":  addr.KindSection,
	"gridline": addr.KindGridLine,
}

// parseBlockRef analyzes an HCL traversal to extract a block reference.
// Traversals with an unknown root are not references, for example bare
// literals produce none at all.
func parseBlockRef(traversal hcl.Traversal) (addr.Address, bool) {
	if len(traversal) < 2 {
		return addr.Address{}, false
	}
	kind, ok := referenceRoots[traversal.RootName()]
	if !ok {
		return addr.Address{}, false
	}
	nameAttr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return addr.Address{}, false
	}
	return addr.New(kind, nameAttr.Name), true
}

// formatTraversal converts an hcl.Traversal to a human-readable string
// for logging.
func formatTraversal(t hcl.Traversal) string {
	var sb strings.Builder
	for _, part := range t {
		switch p := part.(type) {
		case hcl.TraverseRoot:
			sb.WriteString(p.Name)
		case hcl.TraverseAttr:
			sb.WriteRune('.')
			sb.WriteString(p.Name)
		}
	}
	return sb.String()
}

// linkImplicitDeps parses every argument expression for variable
// traversals and creates a dependency edge per block reference.
func linkImplicitDeps(ctx context.Context, def *config.Definition, g *dag.Graph) error {
	baseLogger := ctxlog.FromContext(ctx)
	baseLogger.Debug("Starting implicit linking pass.")

	for _, blk := range def.Blocks {
		a := blk.Address()
		for _, argName := range sortedArgNames(blk.Args) {
			for _, traversal := range blk.Args[argName].Variables() {
				logger := baseLogger.With("block", a.String(), "traversal", formatTraversal(traversal))

				ref, ok := parseBlockRef(traversal)
				if !ok {
					logger.Debug("Traversal is not a block reference, ignoring.")
					continue
				}
				if !g.Has(ref) {
					return fmt.Errorf("reference to undefined %s %q at %s", ref.Kind, ref.Name, traversal.SourceRange())
				}

				logger.Debug("Linking implicit dependency.", "from", ref.String(), "to", a.String())
				if err := g.AddEdge(ref, a); err != nil {
					return fmt.Errorf("error linking implicit dependency: %w", err)
				}
			}
		}
	}

	baseLogger.Debug("Finished implicit linking pass.")
	return nil
}

// sortedArgNames keeps the linking order, and with it the first error
// reported, independent of map iteration order.
func sortedArgNames(args map[string]hcl.Expression) []string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
