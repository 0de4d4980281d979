package skillet

import (
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/skillet/semver"
)

// CatalogEntry is one available version of a skill together with the
// dependencies that version declares.
type CatalogEntry struct {
	Version      semver.Version
	Dependencies []SkillDependency
}

// Catalog is the set of available skill versions a resolution runs against.
// It is a plain value with no hidden global state: callers construct a fresh
// Catalog per resolution pass (typically from loaded manifests) and may
// share it freely once built, since resolution never mutates it.
type Catalog struct {
	entries map[string][]CatalogEntry
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string][]CatalogEntry)}
}

// Add registers one version of a skill. Adding the same name and version
// twice is an error, since a catalog must offer each version exactly once.
func (c *Catalog) Add(name string, version semver.Version, deps []SkillDependency) error {
	if name == "" {
		return fmt.Errorf("catalog: skill name is required")
	}
	for _, dep := range deps {
		if dep.Name == name {
			return fmt.Errorf("catalog: skill %q: %w", name, ErrSelfDependency)
		}
	}
	for _, existing := range c.entries[name] {
		if existing.Version.Equal(version) {
			return fmt.Errorf("catalog: duplicate entry %s@%s", name, version)
		}
	}
	entry := CatalogEntry{Version: version, Dependencies: deps}
	c.entries[name] = append(c.entries[name], entry)
	sort.Slice(c.entries[name], func(i, j int) bool {
		return c.entries[name][i].Version.LessThan(c.entries[name][j].Version)
	})
	return nil
}

// AddManifest validates a manifest record and registers it as one version of
// its skill.
func (c *Catalog) AddManifest(m *Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}
	version, err := semver.Parse(m.Version)
	if err != nil {
		return err
	}
	deps := make([]SkillDependency, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		r, err := semver.ParseRange(d.Version)
		if err != nil {
			return err
		}
		dep, err := NewSkillDependency(m.Name, d.Name, r, d.Optional)
		if err != nil {
			return err
		}
		deps = append(deps, dep)
	}
	return c.Add(m.Name, version, deps)
}

// Has reports whether any version of the named skill is available.
func (c *Catalog) Has(name string) bool {
	return len(c.entries[name]) > 0
}

// Versions returns all available versions of the named skill in ascending
// order. The result is a copy.
func (c *Catalog) Versions(name string) []semver.Version {
	entries := c.entries[name]
	versions := make([]semver.Version, len(entries))
	for i, e := range entries {
		versions[i] = e.Version
	}
	return versions
}

// Entry returns the catalog entry for an exact name and version.
func (c *Catalog) Entry(name string, version semver.Version) (CatalogEntry, bool) {
	for _, e := range c.entries[name] {
		if e.Version.Equal(version) {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Names returns all skill names in the catalog in ascending order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct skill names in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}
