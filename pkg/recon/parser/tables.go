package parser

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
)

// ErrNoDataDetected indicates that every detection strategy found no data
// cell in the sheet.
var ErrNoDataDetected = errors.New("no data detected")

// RegionParams holds parameters for table region detection.
type RegionParams struct {
	// Margin is how many rows/columns the data bounds are padded by to take
	// in the header bands.
	Margin int `mapstructure:"margin"`
	// MarkerWords flag filter panels and footnotes ("filtro", "nota", "fonte").
	MarkerWords []string `mapstructure:"marker_words"`
	// MarkerScanRows limits the rows scanned for markers by the last strategy.
	MarkerScanRows int `mapstructure:"marker_scan_rows"`
}

// DefaultRegionParams returns default region detection parameters.
func DefaultRegionParams() RegionParams {
	return RegionParams{
		Margin:         5,
		MarkerWords:    []string{"filtro", "filter", "nota", "fonte"},
		MarkerScanRows: 20,
	}
}

// Strategy is one stage of region detection: a predicate selecting candidate
// data cells.
type Strategy struct {
	Name   string
	Accept func(row, col int, c grid.Cell) bool
}

// Region is the detected data grid of a sheet.
type Region struct {
	// Bounds is the padded region, header bands included.
	Bounds models.CellRange
	// Data is the tight bounding box of the candidate data cells.
	Data models.CellRange
	// Stage is the name of the strategy that produced the region.
	Stage string
	// Cells is the number of candidate data cells.
	Cells int

	strategy Strategy
}

// Accepts reports whether the winning strategy selects the cell as data.
func (r Region) Accepts(row, col int, c grid.Cell) bool {
	if r.strategy.Accept == nil || !r.Bounds.Contains(row, col) {
		return false
	}
	return r.strategy.Accept(row, col, c)
}

// Strategies returns the ordered detection ladder for a sheet:
// unshaded values, values, any nonzero native number, and unshaded values
// outside marker rows.
func Strategies(s *grid.Sheet, n *normalize.Normalizer, params RegionParams) []Strategy {
	isValue := func(c grid.Cell) bool {
		return n.Classify(c).Kind == normalize.Number
	}
	unshaded := func(row, col int, c grid.Cell) bool {
		return isValue(c) && !s.IsShaded(row, col)
	}
	markers := markerRows(s, params, params.MarkerScanRows)

	return []Strategy{
		{Name: "unshaded-values", Accept: unshaded},
		{Name: "values", Accept: func(_, _ int, c grid.Cell) bool {
			return isValue(c)
		}},
		{Name: "any-numeric", Accept: func(_, _ int, c grid.Cell) bool {
			return c.Kind == grid.Number && c.Number != 0
		}},
		{Name: "unmarked-values", Accept: func(row, col int, c grid.Cell) bool {
			return !markers[row] && unshaded(row, col, c)
		}},
	}
}

// DetectRegion finds the data grid of a sheet using the first strategy that
// selects at least one cell. The tight bounds are padded by the margin,
// clipped to the sheet and never extended across filter or footnote blocks.
func DetectRegion(s *grid.Sheet, n *normalize.Normalizer, params RegionParams) (Region, error) {
	strategy, cells := firstNonEmpty(s, Strategies(s, n, params))
	if len(cells) == 0 {
		return Region{}, errors.Wrapf(ErrNoDataDetected, "sheet %q", s.Name)
	}

	data := findDataBounds(cells)
	bounds := padBounds(s, data, params)

	return Region{
		Bounds:   bounds,
		Data:     data,
		Stage:    strategy.Name,
		Cells:    len(cells),
		strategy: strategy,
	}, nil
}

// firstNonEmpty applies strategies in order and returns the first one that
// selects any cell, with its selection.
func firstNonEmpty(s *grid.Sheet, strategies []Strategy) (Strategy, []models.CellRef) {
	for _, st := range strategies {
		var cells []models.CellRef
		s.Each(func(row, col int, c grid.Cell) {
			if st.Accept(row, col, c) {
				cells = append(cells, models.CellRef{Row: row, Col: col})
			}
		})
		if len(cells) > 0 {
			return st, cells
		}
	}
	return Strategy{}, nil
}

// findDataBounds finds the bounding box of the given cells.
func findDataBounds(cells []models.CellRef) models.CellRange {
	b := models.CellRange{R1: -1, C1: -1, R2: -1, C2: -1}
	for _, ref := range cells {
		if b.R1 < 0 || ref.Row < b.R1 {
			b.R1 = ref.Row
		}
		if b.R2 < 0 || ref.Row > b.R2 {
			b.R2 = ref.Row
		}
		if b.C1 < 0 || ref.Col < b.C1 {
			b.C1 = ref.Col
		}
		if b.C2 < 0 || ref.Col > b.C2 {
			b.C2 = ref.Col
		}
	}
	return b
}

// padBounds expands data by the margin, clipped to the sheet. Vertical
// padding stops short of marker blocks (filter panels, notes, sources).
func padBounds(s *grid.Sheet, data models.CellRange, params RegionParams) models.CellRange {
	maxRow, maxCol := s.Dimensions()
	b := models.CellRange{
		R1: max(1, data.R1-params.Margin),
		C1: max(1, data.C1-params.Margin),
		R2: min(maxRow, data.R2+params.Margin),
		C2: min(maxCol, data.C2+params.Margin),
	}

	blocked := markerBlocks(s, data, params)
	for r := data.R1 - 1; r >= b.R1; r-- {
		if blocked[r] {
			b.R1 = r + 1
			break
		}
	}
	for r := data.R2 + 1; r <= b.R2; r++ {
		if blocked[r] {
			b.R2 = r - 1
			break
		}
	}
	return b
}

// markerRows returns rows (up to limit, 0 for all) containing a marker word.
func markerRows(s *grid.Sheet, params RegionParams, limit int) map[int]bool {
	rows := make(map[int]bool)
	s.Each(func(row, _ int, c grid.Cell) {
		if limit > 0 && row > limit {
			return
		}
		if c.Kind != grid.Text {
			return
		}
		text := normalize.Fold(c.Text)
		for _, w := range params.MarkerWords {
			if w != "" && strings.Contains(text, normalize.Fold(w)) {
				rows[row] = true
				return
			}
		}
	})
	return rows
}

// markerBlocks returns the rows of marker blocks: a row containing a marker
// word followed by the rows that only hold values left of the data columns
// (the entries of a filter panel). Rows inside the data bounds never block.
func markerBlocks(s *grid.Sheet, data models.CellRange, params RegionParams) map[int]bool {
	markers := markerRows(s, params, 0)
	sideOnly := make(map[int]bool)
	inData := make(map[int]bool)
	s.Each(func(row, col int, c grid.Cell) {
		if !c.HasValue() {
			return
		}
		if col >= data.C1 && col <= data.C2 {
			inData[row] = true
			return
		}
		sideOnly[row] = true
	})

	starts := make([]int, 0, len(markers))
	for r := range markers {
		starts = append(starts, r)
	}
	sort.Ints(starts)

	blocked := make(map[int]bool)
	for _, r := range starts {
		if r >= data.R1 && r <= data.R2 {
			continue
		}
		blocked[r] = true
		for next := r + 1; sideOnly[next] && !inData[next] && !markers[next]; next++ {
			if next >= data.R1 && next <= data.R2 {
				break
			}
			blocked[next] = true
		}
	}
	return blocked
}
