package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/autosar-go/e2e/internal/config"
)

var (
	// configPath is the path to the YAML configuration file describing
	// the named profile bank.
	configPath string

	// outputFormat controls the output format for all commands (table or json).
	outputFormat string

	// loadedConfig is populated in PersistentPreRunE for every command.
	loadedConfig *config.Config
)

// rootCmd is the top-level cobra command for e2ectl.
var rootCmd = &cobra.Command{
	Use:   "e2ectl",
	Short: "CLI for exercising the AUTOSAR E2E protection library",
	Long:  "e2ectl loads a bank of named E2E profile configurations and runs protect/check against them from the command line.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "" {
			loadedConfig = config.DefaultConfig()
			return nil
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		loadedConfig = cfg
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "output format: table, json")

	rootCmd.AddCommand(protectCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(checkDirCmd())
	rootCmd.AddCommand(vectorsCmd())
	rootCmd.AddCommand(serveCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
