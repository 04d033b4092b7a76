// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcreach/sfarc/internal/config"
	"github.com/arcreach/sfarc/internal/ui"
)

var (
	// Global flags
	configPath     string
	archiveDirFlag string

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sfarc",
	Short: "sfarc - SingleFile archive organizer",
	Long: `sfarc keeps a directory of SingleFile web archives organized: it turns
emoji-laden page titles into clean, byte-bounded, collision-free filenames,
watches the download directory for fresh captures, and drives the dockerized
SingleFile tool for new captures.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config bootstrap commands must run without a config.
		switch cmd.Name() {
		case "completion", "help", "version", "docs":
			return nil
		}
		if cmd.Parent() != nil && (cmd.Parent().Name() == "completion" || cmd.Parent().Name() == "config") {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
			cfg.Normalize()
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		if archiveDirFlag != "" {
			cfg.ArchiveDir = archiveDirFlag
		}
		if cfg.ArchiveDir == "" {
			return fmt.Errorf(`no archive directory configured

Either:
  1. Use --archive-dir /path/to/archives
  2. Set archive_dir in %s
  3. Run 'sfarc config init' to create a config`, config.DefaultPath())
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&archiveDirFlag, "archive-dir", "", "Archive directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}

// getConfigPath returns the resolved global config path.
func getConfigPath() string {
	return resolvedConfigPath
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}

	resolvedPath := configPath
	if strings.TrimSpace(resolvedPath) == "" {
		resolvedPath = config.DefaultPath()
	}
	return loadedCfg, resolvedPath, nil
}
