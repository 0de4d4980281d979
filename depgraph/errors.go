package depgraph

import (
	"fmt"
	"strings"
)

// CircularDependencyError reports a dependency cycle among skills. Cycle
// holds the ordered path, e.g. ["a", "b", "c"] for a -> b -> c -> a.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return "circular dependency detected"
	}
	path := append(append([]string(nil), e.Cycle...), e.Cycle[0])
	return fmt.Sprintf("circular dependency: %s", strings.Join(path, " -> "))
}
