package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/skillet/resolver"
)

var validateCmd = &cobra.Command{
	Use:   "validate [skill...]",
	Short: "Validate that discovered skills resolve cleanly",
	Long: `Resolve the named skills (or every discovered skill when none are
given), then check each dependency of the resulting plan. Exits non-zero if
resolution fails or any dependency is missing or mismatched.`,
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

		plan, err := resolver.Resolve(catalog, roots)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		results := resolver.CheckHealth(plan)

		nameWidth := 0
		for _, r := range results {
			label := r.Depender + " -> " + r.Name
			if len(label) > nameWidth {
				nameWidth = len(label)
			}
		}

		unhealthy := 0
		for _, r := range results {
			label := padRight(r.Depender+" -> "+r.Name, nameWidth)
			switch r.Status {
			case resolver.HealthSatisfied:
				successStyle.Fprintf(out, "  ok       %s  %s\n", label, r.Detail)
			case resolver.HealthVersionMismatch:
				errorStyle.Fprintf(out, "  mismatch %s  %s\n", label, r.Detail)
				unhealthy++
			case resolver.HealthMissing:
				errorStyle.Fprintf(out, "  missing  %s  %s\n", label, r.Detail)
				unhealthy++
			}
		}
		for _, warning := range plan.Warnings {
			warningStyle.Fprintf(out, "warning: %s\n", warning)
		}

		if unhealthy > 0 {
			return fmt.Errorf("%d unhealthy dependencies", unhealthy)
		}
		headerStyle.Fprintf(out, "%d skills resolved, %d dependencies healthy\n",
			len(plan.Skills), len(results))
		return nil
	},
}
