// Package resolver selects a single version for every skill reachable from
// a set of roots, validates the result against the dependency graph, and
// reports conflicts with enough structure to render them without re-deriving
// context.
//
// Resolution is deterministic: given the same catalog and roots, repeated
// calls produce identical plans. Skill names are processed in sorted order
// and the highest satisfying version always wins, so no result ever depends
// on map iteration order.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/depgraph"
	"github.com/deepnoodle-ai/skillet/semver"
)

// RootDepender is the depender name reported for resolution roots.
const RootDepender = "(root)"

type requirement struct {
	Requester
	Optional bool
}

// Resolve chooses one version per skill for everything reachable from roots.
//
// For each dependency name it selects the highest catalog version that
// satisfies every accumulated range. Required dependencies that are missing
// from the catalog raise a *DependencyError; required dependencies with no
// mutually satisfiable version raise a *VersionConflict naming every
// requester. Optional dependencies that cannot be satisfied are dropped
// with a warning on the plan. Once versions are chosen, the resolved graph
// is checked for cycles and ordered topologically; a cycle raises a
// *depgraph.CircularDependencyError.
func Resolve(catalog *skillet.Catalog, roots []string) (*ResolutionPlan, error) {
	if catalog == nil {
		return nil, fmt.Errorf("resolve: catalog is required")
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("resolve: at least one root skill is required")
	}

	rootSet := make(map[string]bool, len(roots))
	for _, root := range roots {
		if root == "" {
			return nil, fmt.Errorf("resolve: root skill name is required")
		}
		rootSet[root] = true
	}

	chosen := make(map[string]semver.Version)

	// Version selection runs to a fixpoint: choosing a version for one
	// skill introduces its dependencies, which can constrain (and re-select)
	// versions already chosen. Each pass rebuilds the accumulated
	// requirements from scratch, so stale constraints from superseded
	// versions never linger. Revisiting an earlier selection state means the
	// catalog's versions re-constrain each other forever and no
	// single-version assignment exists; the pass count stays bounded by the
	// catalog size as a backstop.
	maxPasses := catalogWeight(catalog) + len(rootSet) + 2
	seen := map[string]bool{stateKey(chosen): true}
	for pass := 0; ; pass++ {
		if pass >= maxPasses {
			return nil, fmt.Errorf("resolve: version selection did not converge after %d passes", pass)
		}

		requirements := collectRequirements(catalog, rootSet, chosen)

		next := make(map[string]semver.Version)
		names := sortedKeys(requirements)
		for _, name := range names {
			version, selected, err := selectVersion(catalog, name, requirements[name])
			if err != nil {
				return nil, err
			}
			if selected {
				next[name] = version
			}
		}

		if versionsEqual(chosen, next) {
			break
		}
		key := stateKey(next)
		if seen[key] {
			return nil, oscillationConflict(chosen, next, requirements)
		}
		seen[key] = true
		chosen = next
	}

	return buildPlan(catalog, chosen)
}

// collectRequirements gathers, per dependency name, every requirement
// imposed by the roots and by the currently chosen versions.
func collectRequirements(catalog *skillet.Catalog, roots map[string]bool, chosen map[string]semver.Version) map[string][]requirement {
	requirements := make(map[string][]requirement)
	for _, root := range sortedBoolKeys(roots) {
		requirements[root] = append(requirements[root], requirement{
			Requester: Requester{Depender: RootDepender, Range: semver.Range{}},
		})
	}
	for _, name := range sortedVersionKeys(chosen) {
		entry, ok := catalog.Entry(name, chosen[name])
		if !ok {
			continue
		}
		for _, dep := range entry.Dependencies {
			requirements[dep.Name] = append(requirements[dep.Name], requirement{
				Requester: Requester{Depender: name, Range: dep.Range},
				Optional:  dep.Optional,
			})
		}
	}
	return requirements
}

// selectVersion picks the highest version of name satisfying all
// requirements. When only optional requirements block a selection they are
// disregarded; a skill demanded solely by unsatisfiable optional edges is
// not selected at all.
func selectVersion(catalog *skillet.Catalog, name string, reqs []requirement) (semver.Version, bool, error) {
	required := make([]requirement, 0, len(reqs))
	for _, r := range reqs {
		if !r.Optional {
			required = append(required, r)
		}
	}

	if !catalog.Has(name) {
		if len(required) == 0 {
			return semver.Version{}, false, nil
		}
		return semver.Version{}, false, &DependencyError{Name: name, Requesters: requesters(required)}
	}

	versions := catalog.Versions(name)
	if v, ok := maxSatisfying(versions, reqs); ok {
		return v, true, nil
	}
	if len(required) == 0 {
		return semver.Version{}, false, nil
	}
	if v, ok := maxSatisfying(versions, required); ok {
		return v, true, nil
	}
	return semver.Version{}, false, &VersionConflict{Name: name, Requesters: requesters(required)}
}

func maxSatisfying(versions []semver.Version, reqs []requirement) (semver.Version, bool) {
	var best semver.Version
	found := false
	for _, v := range versions {
		ok := true
		for _, r := range reqs {
			if !r.Range.Satisfies(v) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if !found || semver.Compare(v, best) > 0 {
			best = v
			found = true
		}
	}
	return best, found
}

// buildPlan validates the chosen versions as a graph and assembles the
// final, topologically ordered plan. Optional edges whose target was not
// selected, or whose range the selected version fails, are dropped here
// with a warning.
func buildPlan(catalog *skillet.Catalog, chosen map[string]semver.Version) (*ResolutionPlan, error) {
	graph := depgraph.New()
	planned := make(map[string]PlannedSkill, len(chosen))
	var warnings []string

	for _, name := range sortedVersionKeys(chosen) {
		version := chosen[name]
		if err := graph.AddNode(name, version); err != nil {
			return nil, err
		}
		entry, ok := catalog.Entry(name, version)
		if !ok {
			return nil, fmt.Errorf("resolve: chosen version %s@%s vanished from catalog", name, version)
		}

		skill := PlannedSkill{Name: name, Version: version}
		for _, dep := range entry.Dependencies {
			target, selected := chosen[dep.Name]
			if !selected || !dep.Range.Satisfies(target) {
				if !dep.Optional {
					return nil, fmt.Errorf("resolve: required dependency %s of %s unsatisfied after selection", dep.Name, name)
				}
				warnings = append(warnings, fmt.Sprintf(
					"dropped optional dependency %s of %s (wanted %s)", dep.Name, name, dep.Range))
				continue
			}
			if err := graph.AddEdge(name, dep.Name, dep.Range, dep.Optional); err != nil {
				return nil, err
			}
			skill.Dependencies = append(skill.Dependencies, PlannedDependency{
				Name: dep.Name, Range: dep.Range, Optional: dep.Optional,
			})
		}
		planned[name] = skill
	}

	order, err := graph.TopologicalOrder()
	if err != nil {
		return nil, err
	}

	plan := &ResolutionPlan{Warnings: warnings}
	for _, name := range order {
		if skill, ok := planned[name]; ok {
			plan.Skills = append(plan.Skills, skill)
		}
	}
	sort.Strings(plan.Warnings)
	return plan, nil
}

// stateKey canonically encodes one selection state for repeat detection.
func stateKey(chosen map[string]semver.Version) string {
	var b strings.Builder
	for _, name := range sortedVersionKeys(chosen) {
		b.WriteString(name)
		b.WriteByte('@')
		b.WriteString(chosen[name].String())
		b.WriteByte(' ')
	}
	return b.String()
}

// oscillationConflict turns a revisited selection state into a conflict
// report. The conflict is pinned on the first skill (by name) whose selected
// version flapped between the two states, with the requesters accumulated in
// the pass that exposed the repeat.
func oscillationConflict(prev, next map[string]semver.Version, requirements map[string][]requirement) error {
	flapping := ""
	for _, name := range sortedVersionKeys(next) {
		if v, ok := prev[name]; !ok || !v.Equal(next[name]) {
			flapping = name
			break
		}
	}
	if flapping == "" {
		for _, name := range sortedVersionKeys(prev) {
			if _, ok := next[name]; !ok {
				flapping = name
				break
			}
		}
	}
	reqs := requirements[flapping]
	required := make([]requirement, 0, len(reqs))
	for _, r := range reqs {
		if !r.Optional {
			required = append(required, r)
		}
	}
	if len(required) == 0 {
		required = reqs
	}
	return &VersionConflict{Name: flapping, Requesters: requesters(required)}
}

func requesters(reqs []requirement) []Requester {
	out := make([]Requester, len(reqs))
	for i, r := range reqs {
		out[i] = r.Requester
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Depender < out[j].Depender })
	return out
}

func catalogWeight(catalog *skillet.Catalog) int {
	total := 0
	for _, name := range catalog.Names() {
		total += len(catalog.Versions(name))
	}
	return total
}

func versionsEqual(a, b map[string]semver.Version) bool {
	if len(a) != len(b) {
		return false
	}
	for name, v := range a {
		other, ok := b[name]
		if !ok || !v.Equal(other) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string][]requirement) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedVersionKeys(m map[string]semver.Version) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
