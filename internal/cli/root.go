// Package cli implements the Ascend command-line interface using Cobra.
// Each subcommand maps to a daily workflow (log, habit, status, serve).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ascend",
	Short: "Ascend: level up your real life",
	Long: `Ascend is a local-first self-improvement tracker.
Log your day, keep your streaks, earn XP and badges. All data stays
on your machine under ~/.ascend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
