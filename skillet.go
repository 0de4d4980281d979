package skillet

import (
	"context"

	"github.com/deepnoodle-ai/skillet/semver"
)

// Runnable is the executable unit behind a skill. How a Runnable is obtained
// and executed is entirely the caller's concern; the resolution engine only
// orders and validates skills and never invokes Run.
type Runnable interface {
	Run(ctx context.Context, input map[string]any) (any, error)
}

// Skill describes a named, versioned capability that the surrounding system
// can load. Load is invoked by a loader after resolution has produced a
// valid plan, never by the resolver itself.
type Skill interface {

	// Name of the skill, unique within a catalog
	Name() string

	// Version of this skill descriptor
	Version() semver.Version

	// Load materializes the executable unit behind the skill
	Load(ctx context.Context) (Runnable, error)
}
