// Package skillet provides a dependency and version resolution engine for
// pluggable agent skills. It takes a library-first approach: the engine
// consumes parsed manifest records and produces plans and diagnostics,
// performing no file I/O and no process execution itself.
//
// The core types are:
//
//   - [Manifest] is the parsed record describing one version of a skill.
//   - [Catalog] is the set of available skill versions a resolution runs against.
//   - [SkillDependency] couples a depender to a required skill name and version range.
//   - [Skill] and [Runnable] abstract the loadable unit behind a skill; the
//     engine orders and validates skills but never loads them.
//
// # Quick Start
//
//	catalog := skillet.NewCatalog()
//	for _, m := range manifests {
//	    if err := catalog.AddManifest(m); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	plan, err := resolver.Resolve(catalog, []string{"code-reviewer"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range plan.Skills {
//	    fmt.Println(s.Name, s.Version)
//	}
//
// Version and constraint parsing lives in
// [github.com/deepnoodle-ai/skillet/semver], graph algorithms in
// [github.com/deepnoodle-ai/skillet/depgraph], resolution and health checks
// in [github.com/deepnoodle-ai/skillet/resolver], and migration planning in
// [github.com/deepnoodle-ai/skillet/migrate]. Manifest discovery from skill
// directories is provided by [github.com/deepnoodle-ai/skillet/loader].
package skillet
