package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/archon/cmd/archon/commands"
	"github.com/teranos/archon/logger"
)

var rootCmd = &cobra.Command{
	Use:   "archon",
	Short: "Archon - architecture analysis on design structure matrices",
	Long: `Archon - pluggable architecture analysis.

Providers produce matrix data (a design structure matrix or related matrix),
checkers validate that data against architectural rules, and every provider of
an analysis group is paired with every checker. Results render as text, TAP
or JSON.

Examples:
  archon run                      # Run the analysis from ./archon.yaml
  archon run --verbose            # Stream results as they are produced
  archon run --tap                # Emit a TAP stream for external harnesses
  archon run --json               # Emit a JSON report
  archon run --watch              # Re-run whenever the config file changes
  archon plugins                  # List registered providers and checkers`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose-logs")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose-logs", "v", "Increase log verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as structured JSON")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.PluginsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Cleanup()
		os.Exit(1)
	}
}
