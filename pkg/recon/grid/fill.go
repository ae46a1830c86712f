package grid

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// noFillColors are fill colors that render as an unfilled cell.
var noFillColors = map[string]bool{
	"":       true,
	"AUTO":   true,
	"NONE":   true,
	"WHITE":  true,
	"FFFFFF": true,
	"000000": true,
}

// isNoFillColor reports whether an RGB/ARGB color string means "no fill".
func isNoFillColor(color string) bool {
	c := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	return noFillColors[c]
}

// fillShaded reports whether a fill is visible.
// A pattern without a resolvable color (theme or indexed) counts as shaded.
func fillShaded(fill excelize.Fill) bool {
	switch fill.Type {
	case "gradient":
		return len(fill.Color) > 0
	case "pattern":
	default:
		return false
	}
	if fill.Pattern == 0 {
		return false
	}
	if len(fill.Color) == 0 {
		return true
	}
	for _, c := range fill.Color {
		if !isNoFillColor(c) {
			return true
		}
	}
	return false
}
