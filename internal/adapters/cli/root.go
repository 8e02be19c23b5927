package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colonysim",
		Short: "Colonysim - offline planetary colony production simulator",
		Long: `Colonysim replays a planetary production colony forward in time:
extractor programs deplete, factories consume and produce on schematic
cycles, and routed commodities flow into storage.

Colony layouts are imported as JSON snapshots and stored locally. Each
simulate run advances a stored checkpoint deterministically, so the same
snapshot and target time always produce the same result.

Examples:
  colonysim import colony.json
  colonysim list
  colonysim simulate --colony 1 --target 2024-03-02T00:00:00Z
  colonysim simulate --colony 1 --until-idle --save
  colonysim status --colony 1
  colonysim watch --colony 1 --steps 20`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs, /etc/colonysim)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewSimulateCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewWatchCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
