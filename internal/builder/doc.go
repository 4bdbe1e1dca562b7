/*
Package builder turns a config.Definition into a building.Building. It
bridges the static configuration model (the 'config' package) and the
physical model (the 'building' package).

Construction is a multi-pass process:

 1. Node creation: every block becomes a vertex in a dependency graph,
    keyed by its address. This pass populates the graph but establishes
    no relationships.

 2. Implicit linking: the builder walks the variable traversals of every
    argument expression. References rooted at "material", "section" or
    "gridline" name another block and add a directed edge toward the
    referencing block. A reference to a block that does not exist is an
    error carrying the source range of the expression.

 3. Explicit linking: depends_on addresses are parsed and linked the
    same way.

 4. Kind ordering: edges that encode the physical construction order.
    Materials precede sections, sections precede frame members, levels
    and grids precede anything placed on them, and preprocess follows
    everything. Blocks of order-sensitive kinds (levels, grid imports)
    are additionally chained in definition order, so the topological
    sort preserves the order they were written in.

 5. Validation: cycle detection, then a deterministic topological order
    with ties broken by address.

 6. Evaluation: blocks are evaluated in topological order. Each kind has
    an evaluator that decodes the block's arguments and mutates the
    building under construction. Materials, sections and gridlines
    register an exported object into the shared evaluation context, so
    downstream expressions can reference them.

The result is the assembled building, the preprocessing options if a
preprocess block was present, and the evaluation order.
*/
package builder
