package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcreach/sfarc/internal/batch"
	"github.com/arcreach/sfarc/internal/config"
	"github.com/arcreach/sfarc/internal/namegen"
	"github.com/arcreach/sfarc/internal/ui"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [dir]",
	Short: "Rename archive files to clean, byte-bounded names",
	Long: `Scan the archive directory and rename files whose names are over the
byte budget, carry emoji or filesystem-unsafe characters, or still wear
capture-tool wrappers.

Renames are recorded in a manifest inside the archive directory so the last
run can be undone with 'sfarc rollback'.

Examples:
  # Preview without touching anything
  sfarc optimize --dry-run

  # Apply without the confirmation prompt
  sfarc optimize --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().Bool("dry-run", false, "Show the plan without renaming")
	optimizeCmd.Flags().BoolP("yes", "y", false, "Apply without confirmation")
	optimizeCmd.Flags().Int("max-bytes", 0, "Override the filename byte budget for this run")
}

// newGenerator builds the name generator from the loaded config.
func newGenerator() (*namegen.Generator, error) {
	c := getConfig()
	gen, err := namegen.New(namegen.Options{
		MaxBytes: c.MaxBytes,
		KeyTerms: c.KeyTerms,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid max_bytes in config: %w", err)
	}
	return gen, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	maxBytes, _ := cmd.Flags().GetInt("max-bytes")
	c := getConfig()

	dir := c.ArchiveDir
	if len(args) == 1 {
		dir = args[0]
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return handleErrorMsg(ErrArchiveDirNotFound,
			fmt.Sprintf("archive directory not found: %s", dir),
			"Set archive_dir in the config or pass --archive-dir")
	}

	opts := namegen.Options{MaxBytes: c.MaxBytes, KeyTerms: c.KeyTerms}
	if maxBytes > 0 {
		opts.MaxBytes = maxBytes
	}
	gen, err := namegen.New(opts)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	ops, stats, err := batch.NewPlanner(gen).Plan(dir)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if len(ops) == 0 {
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"stats": stats}, &Meta{Count: 0})
			return nil
		}
		fmt.Println(ui.Successf("all %d archive files already optimal", stats.Scanned))
		return nil
	}

	var warnings []Warning
	for _, op := range ops {
		if op.Fallback {
			warnings = append(warnings, Warning{
				Code:    WarnFallbackName,
				Message: "name needed a numbered or hash suffix",
				File:    op.NewName,
			})
		}
	}

	if !isJSONOutput() {
		fmt.Println(ui.Header(fmt.Sprintf("Planned renames %s", ui.Count(len(ops), "file", "files"))))
		tbl := ui.NewTable(3)
		for _, op := range ops {
			tbl.AddRow(op.OldName, "→", op.NewName)
		}
		fmt.Print(tbl.String())
	}

	if dryRun {
		if isJSONOutput() {
			outputJSON(Response{
				OK:       true,
				Data:     map[string]interface{}{"ops": ops, "stats": stats, "dry_run": true},
				Warnings: warnings,
				Meta:     &Meta{Count: len(ops)},
			})
		} else {
			fmt.Println(ui.Hint("dry run: nothing renamed"))
		}
		return nil
	}

	if !yes && !isJSONOutput() {
		if !promptForConfirm(fmt.Sprintf("Rename %d files?", len(ops))) {
			fmt.Println(ui.Hint("aborted"))
			return nil
		}
	}

	startedAt := time.Now()
	done, applyErr := batch.Apply(dir, ops)
	stats.Renamed = len(done)

	// Record whatever happened before surfacing a failure, so partial runs
	// stay reversible. The manifest lives next to the files it describes.
	manifestPath := filepath.Join(dir, config.DefaultManifestName)
	if len(done) > 0 {
		manifest, mErr := batch.LoadManifest(manifestPath)
		if mErr == nil {
			manifest.Record(startedAt, done)
			mErr = manifest.Save(manifestPath)
		}
		if mErr != nil && applyErr == nil {
			applyErr = mErr
		}
	}
	if applyErr != nil {
		return handleError(ErrRenameFailed, applyErr, "Run 'sfarc rollback' to undo the applied renames")
	}

	if isJSONOutput() {
		outputJSON(Response{
			OK:       true,
			Data:     map[string]interface{}{"ops": done, "stats": stats},
			Warnings: warnings,
			Meta:     &Meta{Count: len(done)},
		})
		return nil
	}
	fmt.Println(ui.Successf("renamed %d files", len(done)))
	if stats.Fallbacks > 0 {
		fmt.Println(ui.Hint(fmt.Sprintf("%d needed numbered or hash suffixes", stats.Fallbacks)))
	}
	return nil
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback [dir]",
	Short: "Undo the most recent optimize run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getConfig().ArchiveDir
		if len(args) == 1 {
			dir = args[0]
		}
		manifestPath := filepath.Join(dir, config.DefaultManifestName)

		manifest, err := batch.LoadManifest(manifestPath)
		if err != nil {
			return handleError(ErrRollbackFailed, err, "")
		}
		if _, ok := manifest.LastRun(); !ok {
			return handleErrorMsg(ErrManifestEmpty, "no optimize runs to roll back", "")
		}

		run, err := manifest.Rollback(dir)
		if err != nil {
			return handleError(ErrRollbackFailed, err, "")
		}
		if err := manifest.Save(manifestPath); err != nil {
			return handleError(ErrRollbackFailed, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"run": run.Label, "restored": len(run.Renames)}, &Meta{Count: len(run.Renames)})
			return nil
		}
		fmt.Println(ui.Successf("rolled back %s (%d files restored)", run.Label, len(run.Renames)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}
