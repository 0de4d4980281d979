package skillet

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/deepnoodle-ai/skillet/semver"
)

// ManifestDependency is one dependency declaration in a skill manifest. The
// Version field holds constraint text such as "^1.2.0" or ">=1.0.0,<2.0.0".
type ManifestDependency struct {
	Name     string `yaml:"name" json:"name"`
	Version  string `yaml:"version,omitempty" json:"version,omitempty"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// Manifest is the parsed record describing one version of a skill. Records
// are typically produced from SKILL.yaml files by a loader, but the engine
// does not care where they come from: any in-memory record of this shape
// can be added to a Catalog.
type Manifest struct {
	Name         string               `yaml:"name" json:"name"`
	Version      string               `yaml:"version" json:"version"`
	Description  string               `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies []ManifestDependency `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
}

// ParseManifest loads a Manifest from YAML. Unknown fields are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest names a skill, carries a parseable
// version, and declares only well-formed, non-self dependencies.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest is missing a skill name")
	}
	if _, err := semver.Parse(m.Version); err != nil {
		return fmt.Errorf("manifest for %q: %w", m.Name, err)
	}
	for _, dep := range m.Dependencies {
		if dep.Name == "" {
			return fmt.Errorf("manifest for %q: dependency is missing a name", m.Name)
		}
		if dep.Name == m.Name {
			return fmt.Errorf("manifest for %q: %w", m.Name, ErrSelfDependency)
		}
		if _, err := semver.ParseRange(dep.Version); err != nil {
			return fmt.Errorf("manifest for %q, dependency %q: %w", m.Name, dep.Name, err)
		}
	}
	return nil
}
