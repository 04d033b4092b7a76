package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcreach/sfarc/internal/config"
	"github.com/arcreach/sfarc/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sfarc configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Successf("config at %s", ui.FilePath(path)))
		fmt.Println(ui.Hint("edit it to set archive_dir and incoming_dir"))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		if isJSONOutput() {
			_, statErr := os.Stat(path)
			outputSuccess(map[string]interface{}{"path": path, "exists": statErr == nil}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, path, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if loaded == nil {
			loaded = &config.Config{}
			loaded.Normalize()
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "config": loaded}, nil)
			return nil
		}

		fmt.Println(ui.Header("Configuration"))
		tbl := ui.NewTable(2)
		tbl.AddRow("config", path)
		tbl.AddRow("archive_dir", loaded.ArchiveDir)
		tbl.AddRow("incoming_dir", loaded.IncomingDir)
		tbl.AddRow("max_bytes", fmt.Sprintf("%d", loaded.MaxBytes))
		tbl.AddRow("csv_path", loaded.CSVPath)
		tbl.AddRow("archiver.image", loaded.Archiver.Image)
		tbl.AddRow("archiver.timeout", loaded.Archiver.Timeout().String())
		tbl.AddRow("archiver.retries", fmt.Sprintf("%d", loaded.Archiver.RetryAttempts))
		tbl.AddRow("monitor.debounce", loaded.Monitor.Debounce().String())
		tbl.AddRow("monitor.poll", loaded.Monitor.PollInterval().String())
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}
