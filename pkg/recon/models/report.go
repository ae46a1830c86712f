package models

import "time"

// Report is the workbook-level reconciliation artifact.
type Report struct {
	// RunID identifies the comparison run.
	RunID string `json:"run_id"`
	// PublishedFile is the published workbook path.
	PublishedFile string `json:"published_file"`
	// RecreatedFile is the recreated workbook path.
	RecreatedFile string `json:"recreated_file"`
	// GeneratedAt is when the comparison finished.
	GeneratedAt time.Time `json:"generated_at"`
	// Tolerance is the numeric tolerance used.
	Tolerance float64 `json:"tolerance"`
	// Sheets holds per-sheet results in the requested order.
	Sheets []SheetResult `json:"sheets"`
	// Summary aggregates all compared sheets.
	Summary Summary `json:"summary"`
}

// Summary aggregates counts across sheets.
type Summary struct {
	SheetsCompared     int     `json:"sheets_compared"`
	SheetsFailed       int     `json:"sheets_failed"`
	PublishedPoints    int     `json:"published_points"`
	RecreatedPoints    int     `json:"recreated_points"`
	CorrectMatches     int     `json:"correct_matches"`
	ValueDifferences   int     `json:"value_differences"`
	MissingInPublished int     `json:"missing_in_published"`
	MissingInRecreated int     `json:"missing_in_recreated"`
	Accuracy           float64 `json:"accuracy"`
}

// Summarize recomputes the summary from the sheet results.
func (r *Report) Summarize() {
	var s Summary
	for i := range r.Sheets {
		sh := &r.Sheets[i]
		if sh.Failed() {
			s.SheetsFailed++
			continue
		}
		s.SheetsCompared++
		s.PublishedPoints += sh.PublishedPoints
		s.RecreatedPoints += sh.RecreatedPoints
		s.CorrectMatches += sh.CorrectMatches
		s.ValueDifferences += sh.ValueDifferences
		s.MissingInPublished += sh.MissingInPublished
		s.MissingInRecreated += sh.MissingInRecreated
	}
	if s.RecreatedPoints > 0 {
		s.Accuracy = float64(s.CorrectMatches) / float64(s.RecreatedPoints)
	}
	r.Summary = s
}
