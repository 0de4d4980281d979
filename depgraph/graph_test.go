package depgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/skillet/semver"
)

func addEdges(t *testing.T, g *Graph, edges [][2]string) {
	t.Helper()
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1], semver.Range{}, false))
	}
}

func TestAddNode(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode("a", semver.MustParse("1.0.0")))

	// Re-adding the same version is a no-op
	require.NoError(t, g.AddNode("a", semver.MustParse("1.0.0")))

	// A second version for the same name violates single-version-per-name
	err := g.AddNode("a", semver.MustParse("2.0.0"))
	require.Error(t, err)

	node, ok := g.Node("a")
	require.True(t, ok)
	require.Equal(t, semver.MustParse("1.0.0"), node.Version)
}

func TestAddEdgeRejectsSelfDependency(t *testing.T) {
	g := New()
	require.Error(t, g.AddEdge("a", "a", semver.Range{}, false))
}

func TestNodeNeighbors(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode("app", semver.MustParse("1.0.0")))
	require.NoError(t, g.AddNode("lib", semver.MustParse("1.0.0")))
	require.NoError(t, g.AddNode("util", semver.MustParse("1.0.0")))
	addEdges(t, g, [][2]string{{"app", "lib"}, {"app", "util"}, {"lib", "util"}})

	app, ok := g.Node("app")
	require.True(t, ok)
	require.Equal(t, []string{"lib", "util"}, app.Outgoing)
	require.Empty(t, app.Incoming)

	util, ok := g.Node("util")
	require.True(t, ok)
	require.Empty(t, util.Outgoing)
	require.Equal(t, []string{"app", "lib"}, util.Incoming)
}

func TestDetectCycle(t *testing.T) {
	tests := []struct {
		name     string
		edges    [][2]string
		expected []string
	}{
		{
			name:     "no cycle",
			edges:    [][2]string{{"a", "b"}, {"b", "c"}},
			expected: nil,
		},
		{
			name:     "three node cycle",
			edges:    [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "two node cycle",
			edges:    [][2]string{{"a", "b"}, {"b", "a"}},
			expected: []string{"a", "b"},
		},
		{
			name:     "cycle not containing the traversal root",
			edges:    [][2]string{{"a", "b"}, {"b", "c"}, {"c", "b"}},
			expected: []string{"b", "c"},
		},
		{
			name:     "cycle in a disconnected component",
			edges:    [][2]string{{"a", "b"}, {"x", "y"}, {"y", "x"}},
			expected: []string{"x", "y"},
		},
		{
			name:     "diamond is not a cycle",
			edges:    [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			addEdges(t, g, tt.edges)
			require.Equal(t, tt.expected, g.DetectCycle())
		})
	}
}

func TestTopologicalOrder(t *testing.T) {
	t.Run("diamond orders dependencies first", func(t *testing.T) {
		g := New()
		addEdges(t, g, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		require.Equal(t, []string{"d", "b", "c", "a"}, order)
	})

	t.Run("ties break by ascending name", func(t *testing.T) {
		g := New()
		addEdges(t, g, [][2]string{{"z", "m"}, {"a", "m"}})

		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		require.Equal(t, []string{"m", "a", "z"}, order)
	})

	t.Run("cycle returns CircularDependencyError", func(t *testing.T) {
		g := New()
		addEdges(t, g, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

		_, err := g.TopologicalOrder()
		var circular *CircularDependencyError
		require.ErrorAs(t, err, &circular)
		require.Equal(t, []string{"a", "b", "c"}, circular.Cycle)
		require.Equal(t, "circular dependency: a -> b -> c -> a", circular.Error())
	})

	t.Run("empty graph", func(t *testing.T) {
		order, err := New().TopologicalOrder()
		require.NoError(t, err)
		require.Empty(t, order)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		build := func() *Graph {
			g := New()
			addEdges(t, g, [][2]string{
				{"app", "auth"}, {"app", "http"}, {"auth", "crypto"},
				{"http", "crypto"}, {"metrics", "http"},
			})
			return g
		}
		first, err := build().TopologicalOrder()
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := build().TopologicalOrder()
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})
}
