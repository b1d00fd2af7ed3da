package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/vlist/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// When a project directory has been resolved (without --global), it creates a
// project-local .vlist/config.yaml and .gitignore. Otherwise, it creates the
// global config file in $VLIST_HOME or ~/.vlist.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

When a .vlist/ project directory is found (or --project-dir / VLIST_PROJECT_DIR
is given), creates $PROJECT/.vlist/config.yaml with a .gitignore.
Use --global to force global configuration initialization even inside a project.`,
		Example: `  # Create project-local configuration (inside a project)
  vlist config init

  # Create global configuration as TOML
  vlist config init --global --format toml

  # Create configuration, overwriting existing
  vlist config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}

			return initGlobalConfig(cmd, format, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")
	cmd.Flags().StringVar(&format, "format", "yaml", "global config file format: yaml or toml")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")

	if err := checkExisting(configPath, force); err != nil {
		return err
	}

	if err := config.Default().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Create .gitignore (never overwrites existing)
	created, err := config.EnsureGitignore(projectDir, config.GetGlobalConfig().Logging.File)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep logs out of version control\n")
	}

	return nil
}

// initGlobalConfig creates the global config file.
func initGlobalConfig(cmd *cobra.Command, format string, force bool) error {
	var name string
	switch format {
	case "yaml", "yml":
		name = "config.yaml"
	case "toml":
		name = "config.toml"
	default:
		return fmt.Errorf("unsupported format %q: use yaml or toml", format)
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(dir, name)

	if err = checkExisting(configPath, force); err != nil {
		return err
	}

	if err = config.Default().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", configPath)

	return nil
}

// checkExisting fails when path exists and force isn't set.
func checkExisting(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}
