package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/vlist/internal/config"
	"github.com/rshade/vlist/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the vlist CLI.
// It wires up configuration, logging, tracing and the view, frame and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:     "vlist",
		Short:   "Windowed list viewer",
		Long:    "vlist: render only the visible window of very long lists",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd, configPath, projectDir); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a config file (default $VLIST_HOME/config.yaml or ~/.vlist/config.yaml)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding a .vlist/config.yaml overlay (default: search upward from cwd)")
	cmd.AddCommand(NewViewCmd(), NewFrameCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse a log file, one line per row
  vlist view app.log

  # Browse blank-line separated records with per-record heights
  vlist view --split blocks --dynamic notes.txt

  # Render markdown records through glamour
  vlist view --split blocks --markdown CHANGELOG.md

  # Print the frames for three scroll offsets
  vlist frame --height 500 --item-height 50 --scroll-top 0,120,9000 data.txt

  # Initialize configuration
  vlist config init`

// loadConfig resolves the project directory and installs the global config.
// An explicit --config file replaces the user config and skips the project overlay.
func loadConfig(cmd *cobra.Command, configPath, projectDirFlag string) error {
	if configPath != "" {
		cfg, err := config.NewFromFile(configPath)
		if err != nil {
			return err
		}
		config.SetGlobalConfig(cfg)
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	config.SetResolvedProjectDir(config.ResolveProjectDir(cmd.Context(), projectDirFlag, cwd))
	config.InitGlobalConfig()
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigGetCmd(), NewConfigValidateCmd())
	return cmd
}
