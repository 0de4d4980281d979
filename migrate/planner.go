// Package migrate plans upgrade paths between versions of a single skill.
//
// Migration steps are authored transitions between two specific versions,
// supplied externally rather than derived from semver distance: the engine
// never guesses that 1.0.0 can jump straight to 2.0.0 unless a step says
// so. Planning is a breadth-first search over the step graph, so the
// returned path always has the fewest hops.
package migrate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deepnoodle-ai/skillet/semver"
)

// Step is one known, authored transition between two specific versions of a
// skill.
type Step struct {
	From        semver.Version
	To          semver.Version
	Description string
}

func (s Step) String() string {
	return fmt.Sprintf("%s -> %s", s.From, s.To)
}

// Path is an ordered list of steps where each step starts at the version the
// previous one reached. An empty path is a valid no-op.
type Path []Step

func (p Path) String() string {
	if len(p) == 0 {
		return "(no-op)"
	}
	parts := make([]string, 0, len(p)+1)
	parts = append(parts, p[0].From.String())
	for _, s := range p {
		parts = append(parts, s.To.String())
	}
	return strings.Join(parts, " -> ")
}

// NoPathError is returned when no sequence of known steps reaches the target
// version.
type NoPathError struct {
	From semver.Version
	To   semver.Version
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no migration path from %s to %s", e.From, e.To)
}

// Plan finds the shortest sequence of steps leading from one version to
// another. When from equals to, the empty path is returned. When the target
// is unreachable, a *NoPathError names it. With several shortest paths the
// lowest next version is preferred, so planning is deterministic.
func Plan(steps []Step, from, to semver.Version) (Path, error) {
	if from.Equal(to) {
		return Path{}, nil
	}

	// Adjacency over canonical version strings, successors sorted for a
	// deterministic search order.
	outgoing := make(map[string][]Step)
	for _, s := range steps {
		key := s.From.String()
		outgoing[key] = append(outgoing[key], s)
	}
	for key := range outgoing {
		sort.Slice(outgoing[key], func(i, j int) bool {
			return semver.Compare(outgoing[key][i].To, outgoing[key][j].To) < 0
		})
	}

	type visit struct {
		version semver.Version
		via     Path
	}
	start := from.String()
	target := to.String()
	queue := []visit{{version: from}}
	seen := map[string]bool{start: true}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, step := range outgoing[current.version.String()] {
			next := step.To.String()
			if seen[next] {
				continue
			}
			path := make(Path, len(current.via), len(current.via)+1)
			copy(path, current.via)
			path = append(path, step)
			if next == target {
				return path, nil
			}
			seen[next] = true
			queue = append(queue, visit{version: step.To, via: path})
		}
	}
	return nil, &NoPathError{From: from, To: to}
}
