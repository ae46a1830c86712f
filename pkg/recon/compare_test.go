package recon

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

// totalSheet is a one-value crosstab: 2020 over the column, Total on the row.
func totalSheet(name string, value float64) *grid.Sheet {
	s := grid.NewSheet(name)
	s.SetText(1, 1, name)
	s.SetNumber(3, 2, 2020)
	s.SetText(4, 1, "Total")
	s.SetNumber(4, 2, value)
	return s
}

func TestCompare_EndToEnd(t *testing.T) {
	tests := []struct {
		name        string
		recreated   float64
		tolerance   float64
		matches     int
		differences int
		diff        float64
	}{
		{"identical", 100, 1.0, 1, 0, 0},
		{"within tolerance", 101, 1.0, 1, 0, 1},
		{"outside tolerance", 101, 0.5, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			published := grid.NewMemoryWorkbook("published.xlsx", totalSheet("Quadro 1", 100))
			recreated := grid.NewMemoryWorkbook("recreated.xlsx", totalSheet("Quadro 1", tt.recreated))

			cfg := DefaultConfig().WithLogger(zaptest.NewLogger(t))
			cfg.NumericTolerance = tt.tolerance

			res, err := Compare("Quadro 1", recreated, published, cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.matches, res.CorrectMatches)
			assert.Equal(t, tt.differences, res.ValueDifferences)
			assert.Equal(t, "unshaded-values", res.PublishedStage)

			all := append(append([]models.Comparison{}, res.Matches...), res.Differences...)
			require.Len(t, all, 1)
			assert.Equal(t, "col1=2020|row1=Total", all[0].Coordinate)
			assert.Equal(t, tt.diff, *all[0].Difference)
		})
	}
}

func TestCompare_StarGlyphHeaders(t *testing.T) {
	pub := grid.NewSheet("Hotelaria")
	pub.SetText(2, 2, "***")
	pub.SetText(2, 3, "****")
	pub.SetText(3, 1, "Algarve")
	pub.SetNumber(3, 2, 120)
	pub.SetNumber(3, 3, 80)

	rec := grid.NewSheet("Hotelaria")
	rec.SetNumber(2, 2, 3)
	rec.Shade(2, 2)
	rec.SetNumber(2, 3, 4)
	rec.Shade(2, 3)
	rec.SetText(3, 1, "Algarve")
	rec.SetNumber(3, 2, 120)
	rec.SetNumber(3, 3, 80)

	res, err := Compare("Hotelaria",
		grid.NewMemoryWorkbook("rec", rec),
		grid.NewMemoryWorkbook("pub", pub),
		DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, res.CorrectMatches)
	assert.Equal(t, 0, res.MissingInPublished)
	assert.Equal(t, 0, res.MissingInRecreated)
	assert.Equal(t, 1.0, res.Accuracy)
}

func TestCompare_NoData(t *testing.T) {
	empty := grid.NewSheet("Quadro 1")
	empty.SetText(1, 1, "Sem dados")

	res, err := Compare("Quadro 1",
		grid.NewMemoryWorkbook("rec", empty),
		grid.NewMemoryWorkbook("pub", totalSheet("Quadro 1", 100)),
		DefaultConfig())
	require.NoError(t, err)

	assert.True(t, res.RecreatedNoData)
	assert.False(t, res.PublishedNoData)
	assert.True(t, res.NoData())
	assert.Equal(t, 1, res.MissingInRecreated)
	assert.Equal(t, 0.0, res.Accuracy)
}

func TestCompare_SheetNotFound(t *testing.T) {
	_, err := Compare("Quadro 9",
		grid.NewMemoryWorkbook("rec.xlsx", totalSheet("Quadro 1", 1)),
		grid.NewMemoryWorkbook("pub.xlsx", totalSheet("Quadro 1", 1)),
		DefaultConfig())
	require.Error(t, err)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "pub.xlsx", inputErr.Path)
	assert.Equal(t, "Quadro 9", inputErr.Sheet)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestCompare_InvalidRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Normalize.YearMin, cfg.Normalize.YearMax = 2030, 1900

	wb := grid.NewMemoryWorkbook("x", totalSheet("Q", 1))
	_, err := Compare("Q", wb, wb, cfg)
	assert.Error(t, err)
}

func TestCommonSheets(t *testing.T) {
	a := grid.NewMemoryWorkbook("a", grid.NewSheet("Q3"), grid.NewSheet("Q1"), grid.NewSheet("Q2"))
	b := grid.NewMemoryWorkbook("b", grid.NewSheet("Q2"), grid.NewSheet("Q3"), grid.NewSheet("Extra"))

	assert.Equal(t, []string{"Q3", "Q2"}, CommonSheets(a, b))
}

// writeWorkbook saves sheets, each a list of rows starting at A1.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any, order ...string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for _, name := range order {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SaveAs(path))
}

func crosstab(total float64) [][]any {
	return [][]any{
		{"Quadro"},
		{},
		{nil, 2019, 2020},
		{"Norte", 10, 20},
		{"Total", 50, total},
	}
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	publishedPath := filepath.Join(dir, "published.xlsx")
	recreatedPath := filepath.Join(dir, "recreated.xlsx")

	writeWorkbook(t, publishedPath, map[string][][]any{
		"Quadro 1": crosstab(100),
		"Quadro 2": crosstab(100),
	}, "Quadro 1", "Quadro 2")
	writeWorkbook(t, recreatedPath, map[string][][]any{
		"Quadro 1": crosstab(103),
		"Extra":    crosstab(100),
	}, "Quadro 1", "Extra")

	cfg := DefaultConfig().WithLogger(zaptest.NewLogger(t))

	t.Run("common sheets by default", func(t *testing.T) {
		report, err := CompareFiles(context.Background(), publishedPath, recreatedPath, nil, cfg)
		require.NoError(t, err)

		assert.NotEmpty(t, report.RunID)
		assert.False(t, report.GeneratedAt.IsZero())
		require.Len(t, report.Sheets, 1)

		sh := report.Sheets[0]
		assert.Equal(t, "Quadro 1", sh.Sheet)
		assert.Empty(t, sh.Error)
		assert.Equal(t, 4, sh.PublishedPoints)
		assert.Equal(t, 3, sh.CorrectMatches)
		assert.Equal(t, 1, sh.ValueDifferences)
		assert.Equal(t, 3.0, *sh.Differences[0].Difference)
		assert.Equal(t, 1, report.Summary.SheetsCompared)
		assert.Equal(t, 0.75, report.Summary.Accuracy)
	})

	t.Run("missing sheet does not stop the others", func(t *testing.T) {
		report, err := CompareFiles(context.Background(), publishedPath, recreatedPath,
			[]string{"Quadro 2", "Quadro 1"}, cfg)
		require.NoError(t, err)
		require.Len(t, report.Sheets, 2)

		assert.Equal(t, "Quadro 2", report.Sheets[0].Sheet)
		assert.True(t, report.Sheets[0].Failed())
		assert.Contains(t, report.Sheets[0].Error, "sheet not found")

		assert.Equal(t, "Quadro 1", report.Sheets[1].Sheet)
		assert.False(t, report.Sheets[1].Failed())
		assert.Equal(t, 3, report.Sheets[1].CorrectMatches)

		assert.Equal(t, 1, report.Summary.SheetsCompared)
		assert.Equal(t, 1, report.Summary.SheetsFailed)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := CompareFiles(context.Background(), filepath.Join(dir, "nope.xlsx"), recreatedPath, nil, cfg)
		require.Error(t, err)

		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := CompareFiles(ctx, publishedPath, recreatedPath, []string{"Quadro 1"}, cfg)
		require.Error(t, err)
		require.NotNil(t, report)
		assert.True(t, report.Sheets[0].Failed())
	})

	t.Run("sheet timeout", func(t *testing.T) {
		timed := cfg
		timed.SheetTimeout = time.Nanosecond

		report, err := CompareFiles(context.Background(), publishedPath, recreatedPath, []string{"Quadro 1"}, timed)
		require.NoError(t, err)
		require.Len(t, report.Sheets, 1)

		sh := report.Sheets[0]
		assert.True(t, sh.Failed())
		assert.Contains(t, sh.Error, `sheet "Quadro 1"`)
		assert.Contains(t, sh.Error, context.DeadlineExceeded.Error())
		assert.Equal(t, 1, report.Summary.SheetsFailed)
	})
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "published.xlsx")
	writeWorkbook(t, path, map[string][][]any{"Quadro 1": crosstab(100)}, "Quadro 1")

	ext, err := ExtractFile(path, "Quadro 1", DefaultConfig())
	require.NoError(t, err)
	require.Len(t, ext.Points, 4)
	assert.Equal(t, "2019", ext.Points[0].ColumnLevel1)
	assert.Equal(t, "Norte", ext.Points[0].RowLevel1)

	_, err = ExtractFile(path, "Quadro 7", DefaultConfig())
	assert.ErrorIs(t, err, ErrSheetNotFound)
}
