package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/output"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	pointsSheet  string
	pointsJSON   bool
	pointsPretty bool
)

var pointsCmd = &cobra.Command{
	Use:   "points <workbook>",
	Short: "List the data points extracted from a sheet",
	Long: `Points runs region detection and header resolution on one sheet and
lists every extracted value with its coordinates, which helps to diagnose
unexpected mismatches.`,
	Args: cobra.ExactArgs(1),
	RunE: runPoints,
}

func init() {
	pointsCmd.Flags().StringVarP(&pointsSheet, "sheet", "s", "", "Sheet to inspect")
	pointsCmd.Flags().BoolVar(&pointsJSON, "json", false, "Print points as JSON")
	pointsCmd.Flags().BoolVar(&pointsPretty, "pretty", false, "Pretty-print JSON output")
	_ = pointsCmd.MarkFlagRequired("sheet")
	rootCmd.AddCommand(pointsCmd)
}

func runPoints(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ext, err := recon.ExtractFile(args[0], pointsSheet, cfg)
	if errors.Is(err, recon.ErrNoDataDetected) {
		fmt.Fprintln(cmd.OutOrStdout(), pterm.Warning.Sprintf("%s: no data detected", pointsSheet))
		return nil
	}
	if err != nil {
		return err
	}

	if pointsJSON {
		data, err := output.PointsToJSON(ext.Points, pointsPretty)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	data := pterm.TableData{{"Cell", "Column 1", "Column 2", "Row 1", "Row 2", "Value"}}
	for _, p := range ext.Points {
		data = append(data, []string{
			p.Origin.String(),
			p.ColumnLevel1,
			p.ColumnLevel2,
			p.RowLevel1,
			p.RowLevel2,
			strconv.FormatFloat(p.Value, 'f', -1, 64),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	fmt.Fprintln(cmd.OutOrStdout(), pterm.Info.Sprintf("%d point(s), region %s (%s), %d with placeholder headers",
		len(ext.Points), ext.Region.Bounds, ext.Region.Stage, ext.FallbackHeaders))
	return nil
}
