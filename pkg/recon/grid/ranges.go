package grid

import (
	"strings"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/xuri/excelize/v2"
)

// parseRange parses a range string like $A$1:$D$10 or A1:D10.
// A single cell reference yields a one-cell range.
func parseRange(rangeStr string) (models.CellRange, bool) {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.CellRange{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.CellRange{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.CellRange{}, false
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	return models.CellRange{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}
