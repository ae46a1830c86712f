package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/output"
	"github.com/spf13/cobra"
)

var (
	compareSheets    []string
	compareOutput    string
	compareSheetsDir string
	comparePretty    bool
	compareJSON      bool
	compareDetails   int
	compareStrict    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <published> <recreated>",
	Short: "Compare a recreated workbook against the published one",
	Long: `Compare reconciles every requested sheet (all sheets common to both
workbooks by default) and prints a summary table. The full report can be
written as JSON to a file, to stdout, or as one file per sheet.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringSliceVarP(&compareSheets, "sheet", "s", nil, "Sheet to compare (repeatable, default: all common sheets)")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Write the JSON report to this file")
	compareCmd.Flags().StringVar(&compareSheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")
	compareCmd.Flags().BoolVar(&comparePretty, "pretty", false, "Pretty-print JSON output")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the JSON report instead of the summary table")
	compareCmd.Flags().IntVar(&compareDetails, "details", 10, "Differences listed per sheet in the summary (0 hides them)")
	compareCmd.Flags().BoolVar(&compareStrict, "strict", false, "Exit with an error unless every point matches")
	compareCmd.Flags().Float64("tolerance", 1.0, "Absolute tolerance for matching values")
	compareCmd.Flags().Int("workers", 4, "Sheets compared concurrently")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	publishedPath, recreatedPath := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report, err := recon.CompareFiles(cmd.Context(), publishedPath, recreatedPath, compareSheets, cfg)
	if err != nil && report == nil {
		return errors.Wrap(err, "comparison failed")
	}

	if compareOutput != "" {
		data, jerr := output.ToJSON(report, comparePretty)
		if jerr != nil {
			return jerr
		}
		if werr := os.WriteFile(compareOutput, data, 0644); werr != nil {
			return errors.Wrap(werr, "failed to write output")
		}
	}

	if compareSheetsDir != "" {
		if werr := writeSheetFiles(report, compareSheetsDir); werr != nil {
			return errors.Wrap(werr, "failed to write sheet files")
		}
	}

	if compareJSON {
		data, jerr := output.ToJSON(report, comparePretty)
		if jerr != nil {
			return jerr
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else if rerr := renderReport(cmd.OutOrStdout(), report, compareDetails); rerr != nil {
		return rerr
	}

	if err != nil {
		return err
	}
	if compareStrict && !clean(report) {
		return errors.Newf("reconciliation not clean: accuracy %.2f%%, %d sheet(s) failed",
			report.Summary.Accuracy*100, report.Summary.SheetsFailed)
	}
	return nil
}

func clean(report *models.Report) bool {
	s := report.Summary
	return s.SheetsFailed == 0 && s.ValueDifferences == 0 &&
		s.MissingInPublished == 0 && s.MissingInRecreated == 0
}

func writeSheetFiles(report *models.Report, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range report.Sheets {
		sheet := &report.Sheets[i]
		data, err := output.SheetToJSON(sheet, comparePretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(sheet.Sheet)+".json")
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

// sheetFileName replaces path separators that may appear in sheet names.
func sheetFileName(name string) string {
	out := []rune(name)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			out[i] = '_'
		}
	}
	return string(out)
}
