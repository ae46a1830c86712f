package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellRef_String(t *testing.T) {
	assert.Equal(t, "B7", CellRef{Row: 7, Col: 2}.String())
	assert.Equal(t, "AA10", CellRef{Row: 10, Col: 27}.String())
	assert.Equal(t, "R0C0", CellRef{}.String())
}

func TestCellRange(t *testing.T) {
	r := CellRange{R1: 2, C1: 2, R2: 4, C2: 3}

	assert.True(t, r.Contains(2, 2))
	assert.True(t, r.Contains(4, 3))
	assert.False(t, r.Contains(5, 3))
	assert.False(t, r.Empty())
	assert.Equal(t, 6, r.Cells())
	assert.Equal(t, "B2:C4", r.String())

	empty := CellRange{R1: 3, C1: 1, R2: 2, C2: 1}
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Cells())
}

func TestDataPoint_String(t *testing.T) {
	p := DataPoint{
		ColumnLevel1: "Homens",
		ColumnLevel2: "2020",
		RowLevel1:    "Norte",
		Origin:       CellRef{Row: 5, Col: 3},
	}
	assert.Equal(t, "Homens / 2020 x Norte @ C5", p.String())
}

func TestReport_Summarize(t *testing.T) {
	r := &Report{Sheets: []SheetResult{
		{Sheet: "A", PublishedPoints: 4, RecreatedPoints: 4, CorrectMatches: 3, ValueDifferences: 1},
		{Sheet: "B", PublishedPoints: 2, RecreatedPoints: 4, CorrectMatches: 2, MissingInPublished: 2},
		{Sheet: "C", Error: "sheet not found"},
	}}
	r.Summarize()

	s := r.Summary
	assert.Equal(t, 2, s.SheetsCompared)
	assert.Equal(t, 1, s.SheetsFailed)
	assert.Equal(t, 6, s.PublishedPoints)
	assert.Equal(t, 8, s.RecreatedPoints)
	assert.Equal(t, 5, s.CorrectMatches)
	assert.Equal(t, 1, s.ValueDifferences)
	assert.Equal(t, 2, s.MissingInPublished)
	assert.Equal(t, 5.0/8, s.Accuracy)
}

func TestSheetResult_Flags(t *testing.T) {
	assert.False(t, (&SheetResult{}).NoData())
	assert.True(t, (&SheetResult{PublishedNoData: true}).NoData())
	assert.True(t, (&SheetResult{Error: "x"}).Failed())
}
