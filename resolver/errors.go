package resolver

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/skillet/semver"
)

// Requester identifies one skill that demands a dependency, together with
// the version range it will accept. The depender for a resolution root is
// reported as "(root)".
type Requester struct {
	Depender string
	Range    semver.Range
}

// VersionConflict is returned when a dependency is present in the catalog
// but no single version satisfies every required range. Requesters names
// every skill whose requirement participates in the conflict.
type VersionConflict struct {
	Name       string
	Requesters []Requester
}

func (e *VersionConflict) Error() string {
	parts := make([]string, len(e.Requesters))
	for i, r := range e.Requesters {
		parts[i] = fmt.Sprintf("%s requires %s", r.Depender, r.Range)
	}
	return fmt.Sprintf("no version of %q satisfies all requirements: %s",
		e.Name, strings.Join(parts, "; "))
}

// DependencyError is returned when a required dependency name is absent from
// the catalog entirely.
type DependencyError struct {
	Name       string
	Requesters []Requester
}

func (e *DependencyError) Error() string {
	names := make([]string, len(e.Requesters))
	for i, r := range e.Requesters {
		names[i] = r.Depender
	}
	return fmt.Sprintf("required dependency %q is not in the catalog (required by %s)",
		e.Name, strings.Join(names, ", "))
}
