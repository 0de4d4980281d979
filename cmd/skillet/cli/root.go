// Package cli implements the skillet command line interface.
//
// The CLI is a thin presentation layer: discovery happens in the loader
// package and every decision about versions, ordering, and conflicts is
// made by the resolution engine. Commands exit 0 on a successful
// resolution and non-zero on parse errors, version conflicts, or circular
// dependencies.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/skillet/loader"
	"github.com/deepnoodle-ai/skillet/slogger"
)

var (
	projectDir      string
	additionalPaths []string
	logLevel        string
)

var rootCmd = &cobra.Command{
	Use:           "skillet",
	Short:         "Resolve, validate, and inspect agent skill dependencies",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", "",
		"project directory to discover skills in (default: current directory)")
	rootCmd.PersistentFlags().StringSliceVar(&additionalPaths, "path", nil,
		"additional skill directories to search (may be glob patterns)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(migrateCmd)
}

func newLoader() *loader.Loader {
	return loader.New(loader.Options{
		ProjectDir:      projectDir,
		AdditionalPaths: additionalPaths,
		Logger:          slogger.New(slogger.LevelFromString(logLevel)),
	})
}

// Execute runs the root command and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
