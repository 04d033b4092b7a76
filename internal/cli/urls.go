package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcreach/sfarc/internal/csvurls"
	"github.com/arcreach/sfarc/internal/ui"
)

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Manage the url list feeding batch archiving",
}

var urlsAddCmd = &cobra.Command{
	Use:   "add <url>...",
	Short: "Add urls to the list, skipping duplicates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()

		var urls []string
		var warnings []Warning
		for _, raw := range args {
			if err := csvurls.Validate(raw); err != nil {
				if isJSONOutput() {
					warnings = append(warnings, Warning{Code: WarnSkippedRecord, Message: err.Error(), File: raw})
				} else {
					fmt.Println(ui.Warningf("skipped: %v", err))
				}
				continue
			}
			urls = append(urls, raw)
		}

		records, err := csvurls.Load(c.CSVPath)
		if err != nil {
			return handleError(ErrURLListInvalid, err, "")
		}
		records, added := csvurls.Merge(records, urls)
		if err := csvurls.Save(c.CSVPath, records); err != nil {
			return handleError(ErrURLListInvalid, err, "")
		}

		if isJSONOutput() {
			outputJSON(Response{
				OK:       true,
				Data:     map[string]interface{}{"added": added, "total": len(records)},
				Warnings: warnings,
				Meta:     &Meta{Count: added},
			})
			return nil
		}
		duplicates := len(urls) - added
		fmt.Println(ui.Successf("added %d urls", added))
		if duplicates > 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("%d already listed", duplicates)))
		}
		return nil
	},
}

var urlsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the url list with capture status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()

		records, err := csvurls.Load(c.CSVPath)
		if err != nil {
			return handleError(ErrURLListInvalid, err, "")
		}
		pendingOnly, _ := cmd.Flags().GetBool("pending")
		if pendingOnly {
			records = csvurls.Pending(records)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"records": records}, &Meta{Count: len(records)})
			return nil
		}
		if len(records) == 0 {
			fmt.Println(ui.Info("url list is empty"))
			return nil
		}

		tbl := ui.NewTable(3)
		for _, rec := range records {
			saved := rec.Saved
			if saved == "" {
				saved = "-"
			}
			tbl.AddRow(rec.Status, rec.URL, saved)
		}
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlsCmd)
	urlsCmd.AddCommand(urlsAddCmd)
	urlsCmd.AddCommand(urlsListCmd)
	urlsListCmd.Flags().Bool("pending", false, "Only show entries awaiting capture")
}
