package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/PVX/cmd/pvx/commands"
	"github.com/teranos/PVX/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pvx",
	Short: "PVX - Prime vowel explorer",
	Long: `PVX - Prime generation, vowel labeling, and composite graph exploration.

PVX sieves primes up to a limit, assigns each a vowel label, derives
composite values from every prime pair (sum, product, power), and renders
the relationships as an interactive graph.

Available commands:
  gen     - Generate primes, vowel labels, and composites
  factor  - Factorize an integer into prime powers
  viz     - Render the graph (static HTML or live server)
  config  - Manage PVX configuration
  version - Show version information

Examples:
  pvx gen 30               # Primes and composites up to 30
  pvx factor 360           # 360 = 2^3 * 3^2 * 5
  pvx viz                  # Write pvx-graph.html
  pvx viz --mode interactive   # Live WebSocket visualization
  pvx config show          # Show current configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize global logger before any command runs.
		// Skip for commands whose output is the data itself (like 'config show').
		if cmd.Name() == "show" || cmd.Name() == "get" {
			return nil
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		level := logger.VerbosityToLevel(verbosity)
		if err := logger.InitializeWithLevel(false, level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")

	rootCmd.AddCommand(commands.GenCmd)
	rootCmd.AddCommand(commands.FactorCmd)
	rootCmd.AddCommand(commands.VizCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
