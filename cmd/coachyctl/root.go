// Command coachyctl browses the built-in exercise catalog from a terminal.
package main

import (
	"os"

	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/repository/memory"
	"alcyxob/coachy/internal/service"

	"github.com/spf13/cobra"
)

var catalog service.ExerciseService = service.NewExerciseService(memory.NewExerciseRepository(), logger.Nop())

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coachyctl",
		Short: "Browse the Coachy exercise catalog",
		Long: `coachyctl lists, filters and inspects the built-in exercise catalog
and shows which body parts a set of muscle groups works.

Filter values match the catalog names, e.g. "Lower Back" or "Full Body".`,
		SilenceUsage: true,
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
