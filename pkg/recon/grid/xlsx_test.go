package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFromExcelize(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "A1", "Quadro 1"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "2020"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 100))
	require.NoError(t, f.SetCellValue(sheet, "C3", 12.345))
	require.NoError(t, f.MergeCell(sheet, "B2", "C2"))

	shaded, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "B2", "C2", shaded))

	twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C3", "C3", twoDecimals))

	s, err := FromExcelize(f, sheet)
	require.NoError(t, err)

	assert.Equal(t, sheet, s.Name)
	assert.Equal(t, Text, s.Get(1, 1).Kind)
	assert.Equal(t, "Quadro 1", s.Get(1, 1).Text)

	assert.Equal(t, Text, s.Get(2, 2).Kind, "numeric string stays text")
	assert.Equal(t, "2020", s.Get(2, 3).Text, "merged cell resolves to origin")
	assert.True(t, s.IsShaded(2, 2))
	assert.True(t, s.IsShaded(2, 3))

	assert.Equal(t, Number, s.Get(3, 2).Kind)
	assert.Equal(t, 100.0, s.Get(3, 2).Number)
	assert.False(t, s.IsShaded(3, 2))
	assert.Equal(t, "General", s.Get(3, 2).NumFmt)

	assert.InDelta(t, 12.345, s.Get(3, 3).Number, 1e-9)
	assert.Equal(t, "0.00", s.Get(3, 3).NumFmt)
}

func TestFromExcelize_SheetNotFound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := FromExcelize(f, "Missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		typ  excelize.CellType
		want Cell
	}{
		{"unset number", "42.5", excelize.CellTypeUnset, Cell{Kind: Number, Number: 42.5}},
		{"typed number", "7", excelize.CellTypeNumber, Cell{Kind: Number, Number: 7}},
		{"unset text", "abc", excelize.CellTypeUnset, Cell{Kind: Text, Text: "abc"}},
		{"shared string", "1976", excelize.CellTypeSharedString, Cell{Kind: Text, Text: "1976"}},
		{"bool true", "1", excelize.CellTypeBool, Cell{Kind: Text, Text: "TRUE"}},
		{"bool false", "0", excelize.CellTypeBool, Cell{Kind: Text, Text: "FALSE"}},
		{"error", "#N/A", excelize.CellTypeError, Cell{Kind: Text, Text: "#N/A"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeValue(tt.raw, tt.typ))
		})
	}
}

func TestFromExcelize_DateCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	monthYear, err := f.NewStyle(&excelize.Style{NumFmt: 17})
	require.NoError(t, err)
	custom := "dd/mm/yyyy"
	dayMonthYear, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue(sheet, "A1", 43831))
	require.NoError(t, f.SetCellStyle(sheet, "A1", "A1", monthYear))
	require.NoError(t, f.SetCellValue(sheet, "B1", 43862))
	require.NoError(t, f.SetCellStyle(sheet, "B1", "B1", dayMonthYear))
	require.NoError(t, f.SetCellValue(sheet, "C1", 43831))

	s, err := FromExcelize(f, sheet)
	require.NoError(t, err)

	for _, col := range []int{1, 2} {
		c := s.Get(1, col)
		assert.Equal(t, Date, c.Kind, "column %d", col)
		assert.NotEmpty(t, c.Text)
		assert.NotEqual(t, "43831", c.Text)
		assert.NotEqual(t, "43862", c.Text)
	}
	assert.Equal(t, Cell{Kind: Number, Number: 43831, NumFmt: "General"}, s.Get(1, 3))
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"General", false},
		{"0.00", false},
		{"#,##0", false},
		{"0.00E+00", false},
		{`#,##0 "hab."`, false},
		{`0.0\m`, false},
		{"[Red]0.00", false},
		{"mmm-yy", true},
		{"dd/mm/yyyy", true},
		{"[$-409]mmmm yyyy", true},
		{"hh:mm", true},
		{"[h]:mm", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormat(tt.code))
		})
	}
}
