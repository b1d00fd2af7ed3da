package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration (user config, project overlay and
environment overrides) for semantic correctness.

This includes:
- Schema version compatibility
- Non-negative item and viewport heights
- Split mode
- Logging level and format`,
		Example: `  # Validate current configuration
  vlist config validate

  # Validate a specific file and show details
  vlist --config ./vlist.toml config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints the effective configuration values.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Version: %s\n", cfg.Version)
	cmd.Printf("  Item height: %v\n", cfg.List.ItemHeight)
	cmd.Printf("  Viewport height: %v\n", cfg.List.Height)
	cmd.Printf("  Dynamic height: %t\n", cfg.List.DynamicHeight)
	cmd.Printf("  Markdown: %t\n", cfg.List.Markdown)
	cmd.Printf("  Split: %s\n", cfg.List.Split)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Logging format: %s\n", cfg.Logging.Format)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" {
		cmd.Printf("  Project overlay: %s\n", projectDir)
	}
}
