package parser

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
)

// HeaderParams holds header acceptance thresholds.
type HeaderParams struct {
	// MinLabelLength is the minimum length of a free-text header.
	MinLabelLength int `mapstructure:"min_label_length"`
	// NumberHeaderMax bounds small integer category codes accepted as
	// headers on shaded cells.
	NumberHeaderMax float64 `mapstructure:"number_header_max"`
	// Captions are axis titles skipped while searching ("Anos", "Mês").
	Captions []string `mapstructure:"captions"`
}

// DefaultHeaderParams returns default header acceptance thresholds.
func DefaultHeaderParams() HeaderParams {
	return HeaderParams{
		MinLabelLength:  2,
		NumberHeaderMax: 100,
		Captions:        []string{"anos", "ano", "mes", "mês", "meses", "unidade: n.º", "unidade: nº"},
	}
}

// Headers is a two-level header coordinate along one axis.
type Headers struct {
	// Level1 is the outer header, or the only one.
	Level1 string
	// Level2 is the inner header when the axis has two levels.
	Level2 string
	// Fallback is set when no header was found and Level1 is a positional
	// placeholder.
	Fallback bool
}

// Locator resolves the row and column headers of data cells by walking up
// and left from them inside a detected region.
type Locator struct {
	sheet    *grid.Sheet
	norm     *normalize.Normalizer
	region   Region
	params   HeaderParams
	captions map[string]bool

	blankRows map[int]bool
	blankCols map[int]bool
}

// NewLocator creates a Locator for one sheet region.
func NewLocator(s *grid.Sheet, n *normalize.Normalizer, region Region, params HeaderParams) *Locator {
	l := &Locator{
		sheet:     s,
		norm:      n,
		region:    region,
		params:    params,
		captions:  make(map[string]bool, len(params.Captions)),
		blankRows: make(map[int]bool),
		blankCols: make(map[int]bool),
	}
	for _, c := range params.Captions {
		l.captions[normalize.Fold(c)] = true
	}
	return l
}

// ColumnHeaders walks up from (row, col) to find the column headers.
func (l *Locator) ColumnHeaders(row, col int) Headers {
	innerRow := 0
	inner := ""
	for r := row - 1; r >= l.region.Bounds.R1; r-- {
		if label, ok := l.accept(r, col); ok {
			innerRow, inner = r, label
			break
		}
	}
	if inner == "" {
		return Headers{Level1: "Col_" + strconv.Itoa(col), Fallback: true}
	}

	if outer := l.outerColumn(innerRow, col, inner); outer != "" {
		return Headers{Level1: outer, Level2: inner}
	}
	return Headers{Level1: inner}
}

// RowHeaders walks left from (row, col) to find the row headers.
func (l *Locator) RowHeaders(row, col int) Headers {
	innerCol := 0
	inner := ""
	for c := col - 1; c >= l.region.Bounds.C1; c-- {
		if label, ok := l.accept(row, c); ok {
			innerCol, inner = c, label
			break
		}
	}
	if inner == "" {
		return Headers{Level1: "Row_" + strconv.Itoa(row), Fallback: true}
	}

	if outer := l.outerRow(row, innerCol, inner); outer != "" {
		return Headers{Level1: outer, Level2: inner}
	}
	return Headers{Level1: inner}
}

// outerColumn looks above the inner column header for a more general one.
// A header written once over a span of columns is found by looking left
// along its row. The search stays inside the header band: it stops at a
// blank row or at a merged cell reaching into the row header columns (a
// title).
func (l *Locator) outerColumn(innerRow, col int, inner string) string {
	innerOrigin := l.origin(innerRow, col)
	for r := innerRow - 1; r >= l.region.Bounds.R1; r-- {
		if l.blankRow(r) {
			return ""
		}
		if rng, ok := l.sheet.MergeAt(r, col); ok && rng.C1 < l.region.Data.C1 {
			return ""
		}
		if l.origin(r, col) == innerOrigin {
			continue
		}
		if label, ok := l.accept(r, col); ok {
			if label != inner {
				return label
			}
			continue
		}
		if l.sheet.Get(r, col).HasValue() {
			continue
		}
		for c := col - 1; c >= l.region.Data.C1; c-- {
			if !l.sheet.Get(r, c).HasValue() {
				continue
			}
			if label, ok := l.accept(r, c); ok && label != inner {
				return label
			}
			break
		}
	}
	return ""
}

// outerRow looks left of the inner row header for a more general one. A
// header written once for a group of rows is found by looking up its
// column, not above the first data row.
func (l *Locator) outerRow(row, innerCol int, inner string) string {
	innerOrigin := l.origin(row, innerCol)
	for c := innerCol - 1; c >= l.region.Bounds.C1; c-- {
		if l.blankCol(c) {
			return ""
		}
		if rng, ok := l.sheet.MergeAt(row, c); ok && rng.R1 < l.region.Data.R1 {
			return ""
		}
		if l.origin(row, c) == innerOrigin {
			continue
		}
		if label, ok := l.accept(row, c); ok {
			if label != inner {
				return label
			}
			continue
		}
		if l.sheet.Get(row, c).HasValue() {
			continue
		}
		for r := row - 1; r >= l.region.Data.R1; r-- {
			if !l.sheet.Get(r, c).HasValue() {
				continue
			}
			if label, ok := l.accept(r, c); ok && label != inner {
				return label
			}
			break
		}
	}
	return ""
}

// accept applies the header acceptance test to the effective cell at
// (row, col) and returns its label.
func (l *Locator) accept(row, col int) (string, bool) {
	cl := l.norm.Classify(l.sheet.Get(row, col))
	switch cl.Kind {
	case normalize.Total:
		return normalize.TotalLabel, true
	case normalize.Year, normalize.Month:
		return cl.Label, true
	case normalize.Text:
		if l.captions[normalize.Fold(cl.Label)] {
			return "", false
		}
		if utf8.RuneCountInString(cl.Label) >= l.params.MinLabelLength {
			return cl.Label, true
		}
	case normalize.Number:
		// Small category codes ("4" for a star rating) on header fills.
		if cl.Value == math.Trunc(cl.Value) && math.Abs(cl.Value) < l.params.NumberHeaderMax &&
			l.sheet.IsShaded(row, col) {
			return cl.Label, true
		}
	}
	return "", false
}

// origin returns the cell holding the value shown at (row, col).
func (l *Locator) origin(row, col int) models.CellRef {
	if rng, ok := l.sheet.MergeAt(row, col); ok {
		return models.CellRef{Row: rng.R1, Col: rng.C1}
	}
	return models.CellRef{Row: row, Col: col}
}

// blankRow reports whether a row has no value across the data columns.
func (l *Locator) blankRow(row int) bool {
	if blank, ok := l.blankRows[row]; ok {
		return blank
	}
	blank := true
	for c := l.region.Data.C1; c <= l.region.Data.C2; c++ {
		if l.sheet.Get(row, c).HasValue() {
			blank = false
			break
		}
	}
	l.blankRows[row] = blank
	return blank
}

// blankCol reports whether a column has no value across the data rows.
func (l *Locator) blankCol(col int) bool {
	if blank, ok := l.blankCols[col]; ok {
		return blank
	}
	blank := true
	for r := l.region.Data.R1; r <= l.region.Data.R2; r++ {
		if l.sheet.Get(r, col).HasValue() {
			blank = false
			break
		}
	}
	l.blankCols[col] = blank
	return blank
}
