package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	// Version is the current version of SortViz
	Version = "1.0.0"

	// configDirEnv overrides --config-dir when set
	configDirEnv = "SORTVIZ_CONFIG_DIR"
)

// Config holds the global configuration for the SortViz CLI
type Config struct {
	ConfigDir string
	Debug     bool
	Settings  *Settings
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for SortViz
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sortviz",
		Short: "SortViz - Step-by-step sorting algorithm traces",
		Long: `SortViz records every comparison, swap and placement made by classic sorting
algorithms (bubble, selection, insertion, merge and quick sort) and lets you
print, export, replay or serve the resulting step traces.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize configuration
			if err := initConfig(); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// Setup logging
			if GlobalConfig.Debug {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
			} else {
				log.SetOutput(io.Discard)
			}

			return nil
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigDir, "config-dir", "", "Configuration directory (default: ~/.sortviz)")

	// Add subcommands
	cmd.AddCommand(NewAlgorithmsCommand())
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewSortCommand())
	cmd.AddCommand(NewReplayCommand())
	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}

// initConfig initializes the SortViz configuration directory and loads config.yaml
func initConfig() error {
	GlobalConfig.ConfigDir = GetConfigDir()

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(GlobalConfig.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load or create config file
	configFile := filepath.Join(GlobalConfig.ConfigDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := writeDefaultSettings(configFile, GlobalConfig.ConfigDir); err != nil {
			return err
		}
	}

	settings, err := LoadSettings(configFile, GlobalConfig.ConfigDir)
	if err != nil {
		return err
	}
	GlobalConfig.Settings = settings

	return nil
}

// GetConfigDir returns the configuration directory path
// Priority order: 1) SORTVIZ_CONFIG_DIR env var, 2) --config-dir, 3) ~/.sortviz
func GetConfigDir() string {
	if envDir := os.Getenv(configDirEnv); envDir != "" {
		return envDir
	}
	if GlobalConfig.ConfigDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			// Fallback to current directory if home dir cannot be determined
			return ".sortviz"
		}
		return filepath.Join(homeDir, ".sortviz")
	}
	return GlobalConfig.ConfigDir
}

// settings returns the loaded settings, or defaults before initConfig has run.
func settings() *Settings {
	if GlobalConfig.Settings == nil {
		return DefaultSettings(GetConfigDir())
	}
	return GlobalConfig.Settings
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
