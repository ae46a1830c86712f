package models

import "strings"

// DataPoint is one numeric value of a crosstab together with its resolved
// two-level column and row header labels.
type DataPoint struct {
	// ColumnLevel1 is the outer column header (or the only one).
	ColumnLevel1 string `json:"column_level_1"`
	// ColumnLevel2 is the inner column header, empty for single-level headers.
	ColumnLevel2 string `json:"column_level_2,omitempty"`
	// RowLevel1 is the outer row header (or the only one).
	RowLevel1 string `json:"row_level_1"`
	// RowLevel2 is the inner row header, empty for single-level headers.
	RowLevel2 string `json:"row_level_2,omitempty"`
	// Value is the statistical measurement. Never a year-like header number.
	Value float64 `json:"value"`
	// Origin is the cell the value was read from.
	Origin CellRef `json:"origin"`
}

// String renders the point coordinates as "col1 / col2 x row1 / row2 @ B7".
func (p DataPoint) String() string {
	var b strings.Builder
	b.WriteString(joinLevels(p.ColumnLevel1, p.ColumnLevel2))
	b.WriteString(" x ")
	b.WriteString(joinLevels(p.RowLevel1, p.RowLevel2))
	b.WriteString(" @ ")
	b.WriteString(p.Origin.String())
	return b.String()
}

func joinLevels(outer, inner string) string {
	if inner == "" {
		return outer
	}
	return outer + " / " + inner
}
