package grid

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// builtinNumFmts maps the built-in number format ids that affect displayed
// precision to their format codes.
var builtinNumFmts = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[Red](#,##0.00)",
	48: "##0.0E+0",
}

// builtinDateFmts lists the built-in number format ids that render dates
// and times.
var builtinDateFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true,
	21: true, 22: true, 45: true, 46: true, 47: true,
}

type styleInfo struct {
	shaded bool
	numFmt string
	date   bool
}

// styleCache resolves style ids once per workbook sheet load.
type styleCache struct {
	f      *excelize.File
	styles map[int]styleInfo
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, styles: make(map[int]styleInfo)}
}

func (c *styleCache) get(id int) styleInfo {
	if info, ok := c.styles[id]; ok {
		return info
	}
	info := styleInfo{numFmt: "General"}
	if st, err := c.f.GetStyle(id); err == nil && st != nil {
		info.shaded = fillShaded(st.Fill)
		switch {
		case st.CustomNumFmt != nil && *st.CustomNumFmt != "":
			info.numFmt = *st.CustomNumFmt
			info.date = isDateFormat(info.numFmt)
		case builtinDateFmts[st.NumFmt]:
			info.date = true
		default:
			if code, ok := builtinNumFmts[st.NumFmt]; ok {
				info.numFmt = code
			}
		}
	}
	c.styles[id] = info
	return info
}

// FromExcelize loads one worksheet of an excelize workbook into a Sheet.
func FromExcelize(f *excelize.File, sheetName string) (*Sheet, error) {
	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, errors.Wrapf(ErrSheetNotFound, "sheet %q", sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read rows of sheet %q", sheetName)
	}

	s := NewSheet(sheetName)
	styles := newStyleCache(f)

	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		for colIdx, raw := range row {
			colNum := colIdx + 1
			axis, err := excelize.CoordinatesToCellName(colNum, rowNum)
			if err != nil {
				continue
			}

			info := styleInfo{numFmt: "General"}
			if styleID, err := f.GetCellStyle(sheetName, axis); err == nil {
				info = styles.get(styleID)
			}

			var cell Cell
			if raw != "" {
				typ, _ := f.GetCellType(sheetName, axis)
				cell = decodeValue(raw, typ)
				if info.date && cell.Kind == Number {
					shown, err := f.GetCellValue(sheetName, axis)
					if err != nil || shown == "" {
						shown = raw
					}
					cell = Cell{Kind: Date, Text: shown}
				}
			}
			cell.Shaded = info.shaded
			cell.NumFmt = info.numFmt

			if cell.HasValue() || cell.Shaded {
				s.Set(rowNum, colNum, cell)
			}
		}
	}

	merges, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, errors.Wrapf(err, "read merged cells of sheet %q", sheetName)
	}
	for _, mc := range merges {
		if rng, ok := parseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis()); ok {
			s.Merge(rng)
		}
	}

	return s, nil
}

// decodeValue turns a raw cell value into a typed Cell.
// Cells without an explicit type attribute hold numbers.
func decodeValue(raw string, typ excelize.CellType) Cell {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return Cell{Kind: Number, Number: v}
		}
	case excelize.CellTypeBool:
		if raw == "1" {
			return Cell{Kind: Text, Text: "TRUE"}
		}
		return Cell{Kind: Text, Text: "FALSE"}
	}
	return Cell{Kind: Text, Text: raw}
}

// isDateFormat reports whether a custom number format code renders a date or
// time. Quoted literals, escaped characters and bracketed colors or locales
// are ignored; elapsed-time brackets such as [h] count.
func isDateFormat(code string) bool {
	runes := []rune(strings.ToLower(code))
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '"':
			for i++; i < len(runes) && runes[i] != '"'; i++ {
			}
		case '\\', '_', '*':
			i++
		case '[':
			end := i + 1
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			inner := string(runes[i+1 : min(end, len(runes))])
			if inner != "" && strings.Trim(inner, "hms") == "" {
				return true
			}
			i = end
		case 'd', 'm', 'y', 'h', 's':
			return true
		default:
			if unicode.IsLetter(r) {
				// words such as "General"
				for i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
					i++
				}
			}
		}
	}
	return false
}
