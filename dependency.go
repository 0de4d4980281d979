package skillet

import (
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/skillet/semver"
)

// ErrSelfDependency is returned when a skill declares a dependency on itself.
var ErrSelfDependency = errors.New("skill cannot depend on itself")

// SkillDependency couples a depender skill to a required skill name, the
// version range the depender will accept, and whether the dependency is
// optional. Optional dependencies that cannot be satisfied are dropped
// during resolution with a warning; required ones abort it.
type SkillDependency struct {
	Depender string
	Name     string
	Range    semver.Range
	Optional bool
}

// NewSkillDependency builds a SkillDependency, rejecting self-dependencies
// at construction time.
func NewSkillDependency(depender, name string, r semver.Range, optional bool) (SkillDependency, error) {
	if depender == name {
		return SkillDependency{}, fmt.Errorf("skill %q: %w", depender, ErrSelfDependency)
	}
	return SkillDependency{Depender: depender, Name: name, Range: r, Optional: optional}, nil
}
