package resolver

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/skillet/semver"
)

// PlannedDependency is one dependency edge retained in a resolution plan.
type PlannedDependency struct {
	Name     string
	Range    semver.Range
	Optional bool
}

// PlannedSkill is one entry in a plan's load order: the chosen version for a
// skill name plus the dependency edges that version declares.
type PlannedSkill struct {
	Name         string
	Version      semver.Version
	Dependencies []PlannedDependency
}

// ResolutionPlan is the output of a successful resolution: the chosen
// version per skill name in load order, plus warnings for any optional
// dependencies that were dropped. Plans are immutable snapshots; callers
// that re-resolve must swap atomically to the new plan rather than mutate
// an old one.
type ResolutionPlan struct {
	Skills   []PlannedSkill
	Warnings []string
}

// Skill returns the planned entry for a skill name.
func (p *ResolutionPlan) Skill(name string) (PlannedSkill, bool) {
	for _, s := range p.Skills {
		if s.Name == name {
			return s, true
		}
	}
	return PlannedSkill{}, false
}

// Versions returns the chosen version per skill name.
func (p *ResolutionPlan) Versions() map[string]semver.Version {
	versions := make(map[string]semver.Version, len(p.Skills))
	for _, s := range p.Skills {
		versions[s.Name] = s.Version
	}
	return versions
}

// String renders the plan's load order on one line, for logs and tests.
func (p *ResolutionPlan) String() string {
	parts := make([]string, len(p.Skills))
	for i, s := range p.Skills {
		parts[i] = fmt.Sprintf("%s@%s", s.Name, s.Version)
	}
	return strings.Join(parts, " ")
}
