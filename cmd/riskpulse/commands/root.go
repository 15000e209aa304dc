package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "riskpulse",
	Short: "riskpulse - global risk signal dashboard backend",
	Long: `riskpulse tracks a fixed set of market and geopolitical indicators,
classifies each into a risk tier and aggregates them into a single
crash-probability score with run-over-run diffing.

Usage:
  go run ./cmd/riskpulse [command]

Examples:
  go run ./cmd/riskpulse evaluate
  go run ./cmd/riskpulse api
  go run ./cmd/riskpulse scheduler
  go run ./cmd/riskpulse history`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
