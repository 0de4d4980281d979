package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/skillet/resolver"
)

var treeFilter string

var treeCmd = &cobra.Command{
	Use:   "tree [skill...]",
	Short: "Show the resolved dependency tree",
	Long: `Resolve the named skills (or every discovered skill when none are
given) and print the dependency tree of the resulting plan. Each line shows
the skill, the version the resolver selected, and the range the parent
declared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := newLoader().Discover()
		if err != nil {
			return err
		}

		roots := args
		if len(roots) == 0 {
			roots = catalog.Names()
		}
		if len(roots) == 0 {
			return fmt.Errorf("no skills discovered")
		}

		var filter glob.Glob
		if treeFilter != "" {
			filter, err = glob.Compile(treeFilter)
			if err != nil {
				return fmt.Errorf("invalid filter pattern %q: %w", treeFilter, err)
			}
		}

		plan, err := resolver.Resolve(catalog, roots)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderTree(out, plan, roots, filter)
		for _, warning := range plan.Warnings {
			warningStyle.Fprintf(out, "warning: %s\n", warning)
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVar(&treeFilter, "filter", "",
		"only show trees rooted at skills matching this glob pattern")
}

// renderTree prints one tree per requested root, in sorted root order.
// Every node shows the selected version; non-root nodes also show the
// range their parent declared.
func renderTree(w io.Writer, plan *resolver.ResolutionPlan, roots []string, filter glob.Glob) {
	byName := make(map[string]resolver.PlannedSkill, len(plan.Skills))
	for _, s := range plan.Skills {
		byName[s.Name] = s
	}

	sortedRoots := append([]string(nil), roots...)
	sort.Strings(sortedRoots)

	for _, root := range sortedRoots {
		if filter != nil && !filter.Match(root) {
			continue
		}
		s, ok := byName[root]
		if !ok {
			continue
		}
		nameStyle.Fprint(w, s.Name)
		mutedStyle.Fprintf(w, "@%s\n", s.Version)
		renderChildren(w, byName, s, "")
	}
}

func renderChildren(w io.Writer, byName map[string]resolver.PlannedSkill, s resolver.PlannedSkill, prefix string) {
	for i, dep := range s.Dependencies {
		last := i == len(s.Dependencies)-1
		connector := treeBranch
		childPrefix := prefix + treeVertical
		if last {
			connector = treeLastBranch
			childPrefix = prefix + treeSpace
		}

		fmt.Fprint(w, prefix, connector)
		child, ok := byName[dep.Name]
		if !ok {
			// Optional dependency the resolver dropped
			mutedStyle.Fprintf(w, "%s (optional, not installed, wanted %s)\n", dep.Name, dep.Range)
			continue
		}
		nameStyle.Fprint(w, child.Name)
		mutedStyle.Fprintf(w, "@%s", child.Version)
		mutedStyle.Fprintf(w, " (%s)", dep.Range)
		if dep.Optional {
			mutedStyle.Fprint(w, " [optional]")
		}
		fmt.Fprintln(w)
		renderChildren(w, byName, child, childPrefix)
	}
}
