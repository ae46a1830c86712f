package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/pterm/pterm"
)

// renderReport prints the per-sheet summary table, the overall totals and up
// to details value differences per sheet.
func renderReport(w io.Writer, report *models.Report, details int) error {
	data := pterm.TableData{
		{"Sheet", "Published", "Recreated", "Matches", "Differences", "Missing in published", "Missing in recreated", "Accuracy", "Status"},
	}
	for i := range report.Sheets {
		sh := &report.Sheets[i]
		data = append(data, []string{
			sh.Sheet,
			strconv.Itoa(sh.PublishedPoints),
			strconv.Itoa(sh.RecreatedPoints),
			strconv.Itoa(sh.CorrectMatches),
			strconv.Itoa(sh.ValueDifferences),
			strconv.Itoa(sh.MissingInPublished),
			strconv.Itoa(sh.MissingInRecreated),
			percent(sh.Accuracy),
			status(sh),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)

	s := report.Summary
	fmt.Fprintln(w, pterm.Info.Sprintf("%d sheet(s) compared, %d failed, accuracy %s (%d/%d, tolerance %g)",
		s.SheetsCompared, s.SheetsFailed, percent(s.Accuracy), s.CorrectMatches, s.RecreatedPoints, report.Tolerance))

	for i := range report.Sheets {
		sh := &report.Sheets[i]
		if sh.Failed() {
			fmt.Fprintln(w, pterm.Error.Sprintf("%s: %s", sh.Sheet, sh.Error))
			continue
		}
		if details > 0 && len(sh.Differences) > 0 {
			if err := renderDifferences(w, sh, details); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderDifferences(w io.Writer, sh *models.SheetResult, limit int) error {
	data := pterm.TableData{{"Cell", "Coordinate", "Recreated", "Published", "Difference", "Match"}}
	for i, c := range sh.Differences {
		if i == limit {
			break
		}
		data = append(data, []string{
			models.CellRef{Row: c.OriginRow, Col: c.OriginCol}.String(),
			c.Coordinate,
			number(c.RecreatedValue),
			number(c.PublishedValue),
			number(c.Difference),
			string(c.MatchType),
		})
	}

	fmt.Fprintln(w, pterm.Warning.Sprintf("%s: %d value difference(s)", sh.Sheet, len(sh.Differences)))
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	return nil
}

func status(sh *models.SheetResult) string {
	switch {
	case sh.Failed():
		return "error"
	case sh.NoData():
		return "no data"
	case sh.ValueDifferences == 0 && sh.MissingInPublished == 0 && sh.MissingInRecreated == 0:
		return "ok"
	default:
		return "mismatch"
	}
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

func number(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
