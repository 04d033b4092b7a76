package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcreach/sfarc/internal/archiver"
	"github.com/arcreach/sfarc/internal/csvurls"
	"github.com/arcreach/sfarc/internal/ui"
)

var archiveCmd = &cobra.Command{
	Use:   "archive [url...]",
	Short: "Capture pages with dockerized SingleFile and store them",
	Long: `Capture one or more urls through the SingleFile docker image and store
each page in the archive directory under an optimized filename.

With --from-csv, pending and failed entries of the url list are captured
instead; their status is updated in place.

Examples:
  sfarc archive https://example.com/article
  sfarc archive --from-csv`,
	RunE: runArchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().Bool("from-csv", false, "Capture pending entries of the url list")
}

// newArchiver is a var so tests can swap in an archiver with a fake exec step.
var newArchiver = func() (*archiver.Archiver, error) {
	c := getConfig()
	gen, err := newGenerator()
	if err != nil {
		return nil, err
	}
	return archiver.New(archiver.Options{
		Image:         c.Archiver.Image,
		OutDir:        c.ArchiveDir,
		CookiesPath:   c.Archiver.CookiesPath,
		Timeout:       c.Archiver.Timeout(),
		RetryAttempts: c.Archiver.RetryAttempts,
		RetryDelay:    c.Archiver.RetryDelay(),
		Generator:     gen,
	})
}

func runArchive(cmd *cobra.Command, args []string) error {
	fromCSV, _ := cmd.Flags().GetBool("from-csv")
	c := getConfig()

	if fromCSV && len(args) > 0 {
		return handleErrorMsg(ErrInvalidInput, "pass urls or --from-csv, not both", "")
	}
	if !fromCSV && len(args) == 0 {
		return handleErrorMsg(ErrMissingArgument, "no urls given", "Pass urls as arguments or use --from-csv")
	}

	a, err := newArchiver()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	var records []csvurls.Record
	urls := args
	if fromCSV {
		records, err = csvurls.Load(c.CSVPath)
		if err != nil {
			return handleError(ErrURLListInvalid, err, "")
		}
		pending := csvurls.Pending(records)
		if len(pending) == 0 {
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"archived": []archiver.Result{}}, &Meta{Count: 0})
				return nil
			}
			fmt.Println(ui.Info("url list has no pending entries"))
			return nil
		}
		urls = nil
		for _, rec := range pending {
			urls = append(urls, rec.URL)
		}
	}

	var archived []archiver.Result
	var warnings []Warning
	failures := 0
	for _, url := range urls {
		res, err := a.Archive(cmd.Context(), url)
		if err != nil {
			failures++
			if fromCSV {
				csvurls.MarkFailed(records, url)
			}
			if isJSONOutput() {
				warnings = append(warnings, Warning{Code: ErrCaptureFailed, Message: err.Error(), File: url})
			} else {
				fmt.Println(ui.Errorf("%s: %v", url, err))
			}
			continue
		}
		archived = append(archived, res)
		if fromCSV {
			csvurls.MarkArchived(records, url, filepath.Base(res.Path))
		}
		if res.Attempts > 1 && isJSONOutput() {
			warnings = append(warnings, Warning{
				Code:    WarnCaptureRetry,
				Message: fmt.Sprintf("captured after %d attempts", res.Attempts),
				File:    url,
			})
		}
		if !isJSONOutput() {
			fmt.Println(ui.Successf("%s → %s", url, ui.FilePath(filepath.Base(res.Path))))
			if res.Attempts > 1 {
				fmt.Println(ui.Hint(fmt.Sprintf("took %d attempts", res.Attempts)))
			}
		}
	}

	if fromCSV {
		if err := csvurls.Save(c.CSVPath, records); err != nil {
			return handleError(ErrURLListInvalid, err, "")
		}
	}

	if isJSONOutput() {
		outputJSON(Response{
			OK:       failures == 0,
			Data:     map[string]interface{}{"archived": archived, "failed": failures},
			Warnings: warnings,
			Meta:     &Meta{Count: len(archived)},
		})
		return nil
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d captures failed", failures, len(urls))
	}
	return nil
}
