package parser

import (
	"github.com/cockroachdb/errors"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
)

// Params configures data point extraction.
type Params struct {
	Region RegionParams `mapstructure:"region"`
	Header HeaderParams `mapstructure:"header"`
	// RoundToDisplayed rounds values to the decimals shown by their number
	// format.
	RoundToDisplayed bool `mapstructure:"round_to_displayed"`
}

// DefaultParams returns default extraction parameters.
func DefaultParams() Params {
	return Params{
		Region:           DefaultRegionParams(),
		Header:           DefaultHeaderParams(),
		RoundToDisplayed: true,
	}
}

// Extraction is the set of data points found in one sheet.
type Extraction struct {
	// Sheet is the sheet name.
	Sheet string
	// Region is the detected data region (zero when none was found).
	Region Region
	// Points are the data points in row-major order.
	Points []models.DataPoint
	// FallbackHeaders counts points that needed a positional placeholder
	// on at least one axis.
	FallbackHeaders int
}

// ExtractPoints extracts every data point of a sheet. When no data region is
// detected it returns an empty Extraction together with ErrNoDataDetected.
func ExtractPoints(s *grid.Sheet, n *normalize.Normalizer, params Params) (*Extraction, error) {
	ext := &Extraction{Sheet: s.Name}

	region, err := DetectRegion(s, n, params.Region)
	if err != nil {
		return ext, err
	}
	ext.Region = region

	loc := NewLocator(s, n, region, params.Header)
	b := region.Bounds
	for row := b.R1; row <= b.R2; row++ {
		for col := b.C1; col <= b.C2; col++ {
			cell := s.Raw(row, col)
			if !region.Accepts(row, col, cell) {
				continue
			}
			cl := n.Classify(cell)
			if cl.Kind != normalize.Number {
				continue
			}

			value := cl.Value
			if params.RoundToDisplayed {
				if d, ok := normalize.DisplayDecimals(cell.NumFmt); ok {
					value = normalize.Round(value, d)
				}
			}

			cols := loc.ColumnHeaders(row, col)
			rows := loc.RowHeaders(row, col)
			if cols.Fallback || rows.Fallback {
				ext.FallbackHeaders++
			}

			ext.Points = append(ext.Points, models.DataPoint{
				ColumnLevel1: label(n, cols.Level1),
				ColumnLevel2: label(n, cols.Level2),
				RowLevel1:    label(n, rows.Level1),
				RowLevel2:    label(n, rows.Level2),
				Value:        value,
				Origin:       models.CellRef{Row: row, Col: col},
			})
		}
	}

	if len(ext.Points) == 0 {
		return ext, errors.Wrapf(ErrNoDataDetected, "sheet %q: region %s yielded no values", s.Name, region.Stage)
	}
	return ext, nil
}

// label normalizes a non-empty header label.
func label(n *normalize.Normalizer, s string) string {
	if s == "" {
		return ""
	}
	return n.Label(s)
}
