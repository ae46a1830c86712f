package grid

import (
	"strconv"
	"strings"

	"github.com/extrame/xls"
)

// FromXLS loads a legacy BIFF worksheet into a Sheet.
// The BIFF reader exposes neither fills nor merged ranges, so shading and
// merge resolution are unavailable for .xls input.
func FromXLS(ws *xls.WorkSheet) *Sheet {
	s := NewSheet(ws.Name)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			continue
		}
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			raw := strings.TrimSpace(row.Col(c))
			if raw == "" {
				continue
			}
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				s.Set(r+1, c+1, Cell{Kind: Number, Number: v, NumFmt: "General"})
				continue
			}
			s.Set(r+1, c+1, Cell{Kind: Text, Text: raw, NumFmt: "General"})
		}
	}
	return s
}
