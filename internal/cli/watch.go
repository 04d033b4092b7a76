package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arcreach/sfarc/internal/ui"
	"github.com/arcreach/sfarc/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the download directory and file fresh captures into the archive",
	Long: `Monitor the incoming (download) directory for SingleFile captures. Each
recognized capture is renamed through the name generator and moved into the
archive directory once the browser has finished writing it.

Runs until interrupted with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("debug", false, "Log filesystem events and moves")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	c := getConfig()

	if _, err := os.Stat(c.IncomingDir); os.IsNotExist(err) {
		return handleErrorMsg(ErrIncomingDirNotFound,
			fmt.Sprintf("incoming directory not found: %s", c.IncomingDir),
			"Set incoming_dir in the config")
	}

	gen, err := newGenerator()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	w, err := watcher.New(watcher.Config{
		IncomingDir:   c.IncomingDir,
		ArchiveDir:    c.ArchiveDir,
		Generator:     gen,
		DebounceDelay: c.Monitor.Debounce(),
		PollInterval:  c.Monitor.PollInterval(),
		Debug:         debug,
		OnMove: func(src, dst string, err error) {
			if err != nil {
				fmt.Println(ui.Errorf("%s: %v", filepath.Base(src), err))
				return
			}
			fmt.Println(ui.Successf("%s → %s", filepath.Base(src), ui.FilePath(filepath.Base(dst))))
		},
	})
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println()
		fmt.Println(ui.Info("stopping watcher"))
		cancel()
	}()

	fmt.Println(ui.Infof("watching %s → %s", c.IncomingDir, c.ArchiveDir))
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return handleError(ErrInternal, err, "")
	}
	return nil
}
