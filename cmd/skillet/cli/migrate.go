package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/skillet/migrate"
	"github.com/deepnoodle-ai/skillet/semver"
)

var (
	migrateStepsFile string
	migrateFrom      string
	migrateTo        string
)

// stepsFile is the on-disk format for a skill's migration step registry.
type stepsFile struct {
	Skill string `yaml:"skill"`
	Steps []struct {
		From        string `yaml:"from"`
		To          string `yaml:"to"`
		Description string `yaml:"description,omitempty"`
	} `yaml:"steps"`
}

var migrateCmd = &cobra.Command{
	Use:   "migrate --steps FILE --from VERSION --to VERSION",
	Short: "Plan an upgrade path through registered migration steps",
	Long: `Read a YAML file of registered migration steps and print the
shortest sequence of steps from one version to another. Exits non-zero when
no path exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(migrateStepsFile)
		if err != nil {
			return fmt.Errorf("reading steps file: %w", err)
		}
		var file stepsFile
		if err := yaml.UnmarshalWithOptions(data, &file, yaml.Strict()); err != nil {
			return fmt.Errorf("parsing steps file: %w", err)
		}

		steps := make([]migrate.Step, 0, len(file.Steps))
		for i, s := range file.Steps {
			from, err := semver.Parse(s.From)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			to, err := semver.Parse(s.To)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			steps = append(steps, migrate.Step{From: from, To: to, Description: s.Description})
		}

		from, err := semver.Parse(migrateFrom)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := semver.Parse(migrateTo)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}

		path, err := migrate.Plan(steps, from, to)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if file.Skill != "" {
			headerStyle.Fprintf(out, "%s: ", file.Skill)
		}
		headerStyle.Fprintf(out, "%s\n", path)
		for i, step := range path {
			successStyle.Fprintf(out, "  %d. %s -> %s", i+1, step.From, step.To)
			if step.Description != "" {
				mutedStyle.Fprintf(out, "  %s", step.Description)
			}
			fmt.Fprintln(out)
		}
		if len(path) == 0 {
			mutedStyle.Fprintln(out, "  already at target version")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateStepsFile, "steps", "", "YAML file of migration steps (required)")
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "current version (required)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target version (required)")
	migrateCmd.MarkFlagRequired("steps")
	migrateCmd.MarkFlagRequired("from")
	migrateCmd.MarkFlagRequired("to")
}
