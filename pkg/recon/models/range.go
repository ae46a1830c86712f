package models

// CellRange represents inclusive cell coordinate bounds.
type CellRange struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Contains reports whether (row, col) lies inside the range.
func (a CellRange) Contains(row, col int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}

// Empty reports whether the range covers no cells.
func (a CellRange) Empty() bool {
	return a.R2 < a.R1 || a.C2 < a.C1
}

// Cells returns the number of cells covered by the range.
func (a CellRange) Cells() int {
	if a.Empty() {
		return 0
	}
	return (a.R2 - a.R1 + 1) * (a.C2 - a.C1 + 1)
}

// String renders the range in A1 notation, e.g. "B6:D10".
func (a CellRange) String() string {
	return CellRef{Row: a.R1, Col: a.C1}.String() + ":" + CellRef{Row: a.R2, Col: a.C2}.String()
}
