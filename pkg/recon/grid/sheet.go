// Package grid provides merge-aware cell access over worksheets loaded from
// Open XML (.xlsx) and legacy BIFF (.xls) workbooks.
package grid

import (
	"sort"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
)

// Kind is the raw type of a cell value.
type Kind int

const (
	// Empty is a cell without a value.
	Empty Kind = iota
	// Number is a cell stored as a native numeric value.
	Number
	// Text is a cell stored as a string.
	Text
	// Date is a numeric cell shown through a date or time format. Text holds
	// the displayed form.
	Date
)

// Cell is the raw content of one worksheet cell.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	// Shaded is true when the cell carries a visible fill.
	Shaded bool
	// NumFmt is the number format code ("General" when unset).
	NumFmt string
}

// HasValue reports whether the cell holds a value.
func (c Cell) HasValue() bool {
	switch c.Kind {
	case Number:
		return true
	case Text, Date:
		return c.Text != ""
	}
	return false
}

// Sheet is an in-memory worksheet.
type Sheet struct {
	Name   string
	cells  map[models.CellRef]Cell
	merges []models.CellRange
	maxRow int
	maxCol int
}

// NewSheet creates an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{
		Name:  name,
		cells: make(map[models.CellRef]Cell),
	}
}

// Set stores a cell, replacing any previous content.
func (s *Sheet) Set(row, col int, c Cell) {
	if row < 1 || col < 1 {
		return
	}
	s.cells[models.CellRef{Row: row, Col: col}] = c
	if row > s.maxRow {
		s.maxRow = row
	}
	if col > s.maxCol {
		s.maxCol = col
	}
}

// SetNumber stores a native numeric value.
func (s *Sheet) SetNumber(row, col int, v float64) {
	c := s.Raw(row, col)
	c.Kind, c.Number, c.Text = Number, v, ""
	s.Set(row, col, c)
}

// SetText stores a string value.
func (s *Sheet) SetText(row, col int, v string) {
	c := s.Raw(row, col)
	c.Kind, c.Text, c.Number = Text, v, 0
	if v == "" {
		c.Kind = Empty
	}
	s.Set(row, col, c)
}

// Shade marks a cell as carrying a visible fill.
func (s *Sheet) Shade(row, col int) {
	c := s.Raw(row, col)
	c.Shaded = true
	s.Set(row, col, c)
}

// Merge records a merged range. The value of a merged range lives in its
// top-left cell.
func (s *Sheet) Merge(rng models.CellRange) {
	if rng.Empty() {
		return
	}
	s.merges = append(s.merges, rng)
	if rng.R2 > s.maxRow {
		s.maxRow = rng.R2
	}
	if rng.C2 > s.maxCol {
		s.maxCol = rng.C2
	}
}

// Raw returns the cell stored at (row, col) without resolving merges.
func (s *Sheet) Raw(row, col int) Cell {
	return s.cells[models.CellRef{Row: row, Col: col}]
}

// Get returns the effective cell at (row, col): the cell itself when it has
// a value, otherwise the top-left cell of the merged range containing it.
func (s *Sheet) Get(row, col int) Cell {
	c := s.Raw(row, col)
	if c.HasValue() {
		return c
	}
	if rng, ok := s.MergeAt(row, col); ok {
		return s.Raw(rng.R1, rng.C1)
	}
	return c
}

// IsShaded reports whether the cell, or the origin of its merged range,
// carries a visible fill.
func (s *Sheet) IsShaded(row, col int) bool {
	if s.Raw(row, col).Shaded {
		return true
	}
	if rng, ok := s.MergeAt(row, col); ok {
		return s.Raw(rng.R1, rng.C1).Shaded
	}
	return false
}

// MergeAt returns the merged range containing (row, col).
func (s *Sheet) MergeAt(row, col int) (models.CellRange, bool) {
	for _, rng := range s.merges {
		if rng.Contains(row, col) {
			return rng, true
		}
	}
	return models.CellRange{}, false
}

// Merges returns the recorded merged ranges.
func (s *Sheet) Merges() []models.CellRange {
	return s.merges
}

// Dimensions returns the largest populated row and column.
func (s *Sheet) Dimensions() (rows, cols int) {
	return s.maxRow, s.maxCol
}

// Each calls fn for every stored cell in row-major order.
func (s *Sheet) Each(fn func(row, col int, c Cell)) {
	refs := make([]models.CellRef, 0, len(s.cells))
	for ref := range s.cells {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Row != refs[j].Row {
			return refs[i].Row < refs[j].Row
		}
		return refs[i].Col < refs[j].Col
	})
	for _, ref := range refs {
		fn(ref.Row, ref.Col, s.cells[ref])
	}
}
