package dag

import (
	"testing"

	"github.com/osmg/osmg/internal/addr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mat(name string) addr.Address {
	return addr.Address{Kind: addr.KindMaterial, Name: name}
}

func lvl(name string) addr.Address {
	return addr.Address{Kind: addr.KindLevel, Name: name}
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
}

func TestAddNode(t *testing.T) {
	g := New()

	require.NoError(t, g.AddNode(mat("a")))
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes[mat("a")]
	require.True(t, ok)
	assert.Equal(t, mat("a"), nodeA.id)
	assert.NotNil(t, nodeA.deps)
	assert.NotNil(t, nodeA.dependents)

	err := g.AddNode(mat("a"))
	assert.ErrorContains(t, err, "duplicate node")
	assert.Len(t, g.nodes, 1)

	require.NoError(t, g.AddNode(mat("b")))
	assert.Len(t, g.nodes, 2)
	assert.True(t, g.Has(mat("b")))
	assert.False(t, g.Has(mat("c")))
	assert.Equal(t, 2, g.Len())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(mat("a")))
		require.NoError(t, g.AddNode(lvl("b")))

		err := g.AddEdge(mat("a"), lvl("b")) // b depends on a
		require.NoError(t, err)

		nodeA := g.nodes[mat("a")]
		nodeB := g.nodes[lvl("b")]

		assert.Contains(t, nodeA.dependents, lvl("b"))
		assert.Equal(t, nodeB, nodeA.dependents[lvl("b")])
		assert.Contains(t, nodeB.deps, mat("a"))
		assert.Equal(t, nodeA, nodeB.deps[mat("a")])
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(mat("a")))
		require.NoError(t, g.AddNode(mat("b")))

		err := g.AddEdge(mat("dne"), mat("a"))
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge(mat("a"), mat("dne"))
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge(mat("a"), mat("a"))
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestDependenciesAndDependents(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode(mat("steel")))
	require.NoError(t, g.AddNode(lvl("1")))
	require.NoError(t, g.AddNode(lvl("2")))
	require.NoError(t, g.AddEdge(mat("steel"), lvl("2")))
	require.NoError(t, g.AddEdge(mat("steel"), lvl("1")))

	deps, err := g.Dependencies(lvl("1"))
	require.NoError(t, err)
	assert.Equal(t, []addr.Address{mat("steel")}, deps)

	dependents, err := g.Dependents(mat("steel"))
	require.NoError(t, err)
	assert.Equal(t, []addr.Address{lvl("1"), lvl("2")}, dependents)

	_, err = g.Dependencies(mat("dne"))
	assert.ErrorContains(t, err, "node not found")
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(mat("a")))
		require.NoError(t, g.AddNode(mat("b")))
		require.NoError(t, g.AddNode(mat("c")))
		require.NoError(t, g.AddNode(mat("d")))
		require.NoError(t, g.AddEdge(mat("a"), mat("b")))
		require.NoError(t, g.AddEdge(mat("b"), mat("c")))
		require.NoError(t, g.AddEdge(mat("a"), mat("c"))) // Transitive edge
		require.NoError(t, g.AddEdge(mat("c"), mat("d")))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("direct cycle is detected with its path", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(mat("a")))
		require.NoError(t, g.AddNode(mat("b")))
		require.NoError(t, g.AddEdge(mat("a"), mat("b")))
		require.NoError(t, g.AddEdge(mat("b"), mat("a")))

		err := g.DetectCycles()
		require.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
		assert.ErrorContains(t, err, "material.a -> material.b -> material.a")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(mat("a")))
		require.NoError(t, g.AddNode(mat("b")))
		require.NoError(t, g.AddNode(mat("c")))
		require.NoError(t, g.AddEdge(mat("a"), mat("b")))
		require.NoError(t, g.AddEdge(mat("b"), mat("c")))
		require.NoError(t, g.AddEdge(mat("c"), mat("a")))

		err := g.DetectCycles()
		require.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("respects edges", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(lvl("base")))
		require.NoError(t, g.AddNode(lvl("1")))
		require.NoError(t, g.AddNode(mat("steel")))
		require.NoError(t, g.AddNode(addr.Address{Kind: addr.KindColumns, Name: "main"}))

		// Level order and the frame's inputs.
		require.NoError(t, g.AddEdge(lvl("base"), lvl("1")))
		require.NoError(t, g.AddEdge(lvl("1"), addr.Address{Kind: addr.KindColumns, Name: "main"}))
		require.NoError(t, g.AddEdge(mat("steel"), addr.Address{Kind: addr.KindColumns, Name: "main"}))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		require.Len(t, order, 4)

		pos := make(map[addr.Address]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		assert.Less(t, pos[lvl("base")], pos[lvl("1")])
		assert.Less(t, pos[lvl("1")], pos[addr.Address{Kind: addr.KindColumns, Name: "main"}])
		assert.Less(t, pos[mat("steel")], pos[addr.Address{Kind: addr.KindColumns, Name: "main"}])
	})

	t.Run("ties broken by address string", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(mat("b")))
		require.NoError(t, g.AddNode(mat("a")))
		require.NoError(t, g.AddNode(mat("c")))

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		assert.Equal(t, []addr.Address{mat("a"), mat("b"), mat("c")}, order)
	})

	t.Run("cycle is an error", func(t *testing.T) {
		g := New()
		require.NoError(t, g.AddNode(mat("a")))
		require.NoError(t, g.AddNode(mat("b")))
		require.NoError(t, g.AddEdge(mat("a"), mat("b")))
		require.NoError(t, g.AddEdge(mat("b"), mat("a")))

		_, err := g.TopologicalOrder()
		assert.ErrorContains(t, err, "cannot order graph")
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		build := func() *Graph {
			g := New()
			for _, name := range []string{"e", "d", "c", "b", "a"} {
				require.NoError(t, g.AddNode(mat(name)))
			}
			require.NoError(t, g.AddEdge(mat("e"), mat("a")))
			require.NoError(t, g.AddEdge(mat("d"), mat("b")))
			return g
		}

		first, err := build().TopologicalOrder()
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := build().TopologicalOrder()
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}
