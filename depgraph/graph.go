// Package depgraph models the directed dependency graph between skills and
// provides cycle detection and deterministic topological ordering over it.
//
// The graph is an adjacency map keyed by skill name rather than a
// pointer-linked structure, so cyclic inputs are representable and
// detectable without back-references. Edges may be added before their
// endpoints are known, which allows the graph to be built from a flat
// manifest list in any order.
package depgraph

import (
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/skillet/semver"
)

// Edge is a dependency edge: From requires To, with the version range From
// will accept.
type Edge struct {
	From     string
	To       string
	Range    semver.Range
	Optional bool
}

// Node is a snapshot of one skill in the graph: its resolved version plus
// the names of its direct dependencies and dependents.
type Node struct {
	Name     string
	Version  semver.Version
	Outgoing []string
	Incoming []string
}

// Graph is a directed graph of skill nodes and dependency edges. A graph
// holds at most one node per skill name; attaching a second version to the
// same name is an error. The zero number of nodes is fine: edges alone are
// enough for cycle detection before any version has been chosen.
type Graph struct {
	versions map[string]semver.Version
	edges    []Edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{versions: make(map[string]semver.Version)}
}

// AddNode records the resolved version for a skill name. Each name may carry
// exactly one version.
func (g *Graph) AddNode(name string, version semver.Version) error {
	if name == "" {
		return fmt.Errorf("graph: node name is required")
	}
	if existing, ok := g.versions[name]; ok {
		if existing.Equal(version) {
			return nil
		}
		return fmt.Errorf("graph: node %q already present at version %s (got %s)",
			name, existing, version)
	}
	g.versions[name] = version
	return nil
}

// AddEdge records a dependency edge. Neither endpoint needs to be a known
// node yet. Self-edges are rejected.
func (g *Graph) AddEdge(from, to string, r semver.Range, optional bool) error {
	if from == "" || to == "" {
		return fmt.Errorf("graph: edge endpoints are required")
	}
	if from == to {
		return fmt.Errorf("graph: skill %q cannot depend on itself", from)
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Range: r, Optional: optional})
	return nil
}

// Node returns a snapshot of the named node, with its outgoing and incoming
// neighbor names in ascending order.
func (g *Graph) Node(name string) (Node, bool) {
	version, ok := g.versions[name]
	if !ok {
		return Node{}, false
	}
	var out, in []string
	for _, e := range g.edges {
		if e.From == name {
			out = appendUnique(out, e.To)
		}
		if e.To == name {
			in = appendUnique(in, e.From)
		}
	}
	sort.Strings(out)
	sort.Strings(in)
	return Node{Name: name, Version: version, Outgoing: out, Incoming: in}, true
}

// Names returns all node names in ascending order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.versions))
	for name := range g.versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns a copy of all recorded edges.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// vertices is the union of node names and edge endpoints, ascending.
func (g *Graph) vertices() []string {
	seen := make(map[string]bool, len(g.versions))
	for name := range g.versions {
		seen[name] = true
	}
	for _, e := range g.edges {
		seen[e.From] = true
		seen[e.To] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// adjacency builds a deduplicated, sorted successor map over all vertices.
func (g *Graph) adjacency() map[string][]string {
	adj := make(map[string][]string)
	for _, name := range g.vertices() {
		adj[name] = nil
	}
	for _, e := range g.edges {
		adj[e.From] = appendUnique(adj[e.From], e.To)
	}
	for name := range adj {
		sort.Strings(adj[name])
	}
	return adj
}

// DetectCycle searches the graph for a dependency cycle. It returns the
// ordered cycle path, starting at the first repeated skill, or nil when the
// graph is acyclic. Every component is searched, not just one root.
func (g *Graph) DetectCycle() []string {
	adj := g.adjacency()

	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[string]int, len(adj))
	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = onStack
		path = append(path, name)
		for _, next := range adj[name] {
			switch state[next] {
			case onStack:
				for i, n := range path {
					if n == next {
						return append([]string(nil), path[i:]...)
					}
				}
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		state[name] = done
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range g.vertices() {
		if state[name] == unvisited {
			if cycle := visit(name); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// TopologicalOrder returns every vertex in dependency-first order: a skill
// appears only after everything it depends on. Ties among simultaneously
// ready skills are broken by ascending name, so the order is deterministic
// across runs. A *CircularDependencyError is returned when the graph has a
// cycle.
func (g *Graph) TopologicalOrder() ([]string, error) {
	if cycle := g.DetectCycle(); cycle != nil {
		return nil, &CircularDependencyError{Cycle: cycle}
	}

	adj := g.adjacency()

	// Kahn's algorithm. A vertex is ready once all of its dependencies
	// (successors in the edge direction) have been emitted.
	pending := make(map[string]int, len(adj))
	for name, deps := range adj {
		pending[name] = len(deps)
	}

	var ready []string
	for _, name := range g.vertices() {
		if pending[name] == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(adj))
	for len(ready) > 0 {
		sort.Strings(ready)
		current := ready[0]
		ready = ready[1:]
		order = append(order, current)

		for name, deps := range adj {
			for _, dep := range deps {
				if dep == current {
					pending[name]--
					if pending[name] == 0 {
						ready = append(ready, name)
					}
				}
			}
		}
	}
	return order, nil
}

func appendUnique(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}
