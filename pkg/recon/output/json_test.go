package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.Report {
	diff, rec, pub := 1.0, 101.0, 100.0
	report := &models.Report{
		RunID:         "run-1",
		PublishedFile: "published.xlsx",
		RecreatedFile: "recreated.xlsx",
		Tolerance:     0.5,
		Sheets: []models.SheetResult{{
			Sheet:            "Quadro 1",
			PublishedPoints:  1,
			RecreatedPoints:  1,
			ValueDifferences: 1,
			Differences: []models.Comparison{{
				Coordinate:     "col1=2020|row1=Total",
				MatchType:      models.MatchExact,
				Score:          1,
				RecreatedValue: &rec,
				PublishedValue: &pub,
				Difference:     &diff,
				OriginRow:      4,
				OriginCol:      2,
			}},
		}},
	}
	report.Summarize()
	return report
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleReport(), false)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])

	summary := decoded["summary"].(map[string]any)
	assert.Equal(t, 1.0, summary["value_differences"])
	assert.Equal(t, 0.0, summary["accuracy"])

	sheet := decoded["sheets"].([]any)[0].(map[string]any)
	entry := sheet["differences"].([]any)[0].(map[string]any)
	assert.Equal(t, "col1=2020|row1=Total", entry["coordinate"])
	assert.Equal(t, 1.0, entry["difference"])
	assert.NotContains(t, sheet, "matches")
}

func TestToJSON_Pretty(t *testing.T) {
	data, err := ToJSON(sampleReport(), true)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"run_id\": \"run-1\"")
}

func TestSheetToJSON_MissingValuesAreNull(t *testing.T) {
	v := 5.0
	sheet := &models.SheetResult{
		Sheet: "Quadro 2",
		MissingRecreated: []models.Comparison{{
			Coordinate:     "col1=2019|row1=Ilhas",
			MatchType:      models.MatchNone,
			PublishedValue: &v,
		}},
	}

	data, err := SheetToJSON(sheet, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recreated_value":null`)
	assert.Contains(t, string(data), `"published_value":5`)
	assert.Contains(t, string(data), `"match_type":"none"`)
}

func TestPointsToJSON(t *testing.T) {
	data, err := PointsToJSON(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = PointsToJSON([]models.DataPoint{{
		ColumnLevel1: "2020",
		RowLevel1:    "Norte",
		Value:        12.5,
		Origin:       models.CellRef{Row: 4, Col: 2},
	}}, false)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"column_level_1":"2020","row_level_1":"Norte","value":12.5,"origin":{"row":4,"col":2}}]`, string(data))
}
