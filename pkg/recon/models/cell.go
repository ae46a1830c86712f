// Package models defines data structures for crosstab reconciliation.
package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// CellRef identifies a worksheet cell.
type CellRef struct {
	// Row is the row index (1-based).
	Row int `json:"row"`
	// Col is the column index (1-based).
	Col int `json:"col"`
}

// String renders the reference in A1 notation, falling back to R1C1 form
// when the coordinates are outside the worksheet limits.
func (r CellRef) String() string {
	name, err := excelize.CoordinatesToCellName(r.Col, r.Row)
	if err != nil {
		return fmt.Sprintf("R%dC%d", r.Row, r.Col)
	}
	return name
}
