// Package loader discovers skill manifests on disk and assembles them into
// a catalog for resolution.
//
// Manifests are SKILL.yaml files discovered from multiple locations in
// priority order:
//
//   - ./.skillet/skills/ (project-level)
//   - ~/.skillet/skills/ (user-level)
//   - any additional paths, which may be doublestar glob patterns
//
// Each skills directory may contain subdirectories holding a SKILL.yaml
// file, or standalone .yaml manifests. Several versions of the same skill
// may coexist; when the same name and version appears twice, the first
// manifest found wins. Malformed manifests are logged and skipped rather
// than failing the whole discovery.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/slogger"
)

// ManifestFileName is the manifest file looked for inside skill directories.
const ManifestFileName = "SKILL.yaml"

// Options configures skill manifest discovery.
type Options struct {
	// ProjectDir is the base directory for project-level discovery. Skills
	// are searched in ProjectDir/.skillet/skills/. Defaults to the current
	// working directory.
	ProjectDir string

	// HomeDir is the base directory for user-level discovery. Skills are
	// searched in HomeDir/.skillet/skills/. Defaults to os.UserHomeDir().
	HomeDir string

	// AdditionalPaths are extra directories to search, after the default
	// paths. Entries may be doublestar glob patterns ("./vendor/*/skills").
	AdditionalPaths []string

	// Logger receives debug and warning messages during discovery. If nil,
	// no logging occurs.
	Logger slogger.Logger
}

// Loader discovers manifests and builds catalogs. It holds no state between
// Discover calls, so each call observes the filesystem fresh.
type Loader struct {
	opts   Options
	logger slogger.Logger
}

// New creates a loader with the given options.
func New(opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = slogger.NewDevNullLogger()
	}
	return &Loader{opts: opts, logger: logger}
}

// Discover scans all configured paths and returns a catalog of every
// manifest found. Missing directories are silently ignored; manifests that
// fail to parse are logged and skipped.
func (l *Loader) Discover() (*skillet.Catalog, error) {
	paths, err := l.searchPaths()
	if err != nil {
		return nil, fmt.Errorf("getting search paths: %w", err)
	}

	catalog := skillet.NewCatalog()
	for _, searchPath := range paths {
		if err := l.loadFromPath(catalog, searchPath); err != nil {
			l.logger.Warn("failed to load skills", "path", searchPath, "error", err)
		}
	}
	return catalog, nil
}

// searchPaths returns the directories to scan, in priority order.
func (l *Loader) searchPaths() ([]string, error) {
	var paths []string

	projectDir := l.opts.ProjectDir
	if projectDir == "" {
		var err error
		projectDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}
	paths = append(paths, filepath.Join(projectDir, ".skillet", "skills"))

	homeDir := l.opts.HomeDir
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			l.logger.Warn("could not determine home directory", "error", err)
			homeDir = ""
		}
	}
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".skillet", "skills"))
	}

	for _, pattern := range l.opts.AdditionalPaths {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid path pattern %q: %w", pattern, err)
		}
		if matches == nil {
			// Not a pattern or nothing matched; keep the literal path so a
			// directory created later is still picked up by watchers.
			paths = append(paths, pattern)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// loadFromPath loads manifests from one skills directory: subdirectories
// holding a SKILL.yaml, plus standalone .yaml files.
func (l *Loader) loadFromPath(catalog *skillet.Catalog, searchPath string) error {
	entries, err := os.ReadDir(searchPath)
	if os.IsNotExist(err) {
		l.logger.Debug("skill path does not exist", "path", searchPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			l.loadManifestFile(catalog, filepath.Join(searchPath, entry.Name(), ManifestFileName))
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			l.loadManifestFile(catalog, filepath.Join(searchPath, entry.Name()))
		}
	}
	return nil
}

// loadManifestFile parses a single manifest file into the catalog. Missing
// files are ignored; parse failures and duplicates are logged and skipped.
func (l *Loader) loadManifestFile(catalog *skillet.Catalog, path string) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		l.logger.Warn("failed to read manifest", "path", path, "error", err)
		return
	}

	manifest, err := skillet.ParseManifest(data)
	if err != nil {
		l.logger.Warn("failed to parse manifest", "path", path, "error", err)
		return
	}

	if err := catalog.AddManifest(manifest); err != nil {
		// First manifest for a given name and version wins
		l.logger.Debug("skipping manifest", "path", path, "reason", err)
		return
	}
	l.logger.Debug("loaded skill", "name", manifest.Name, "version", manifest.Version, "path", path)
}
