// Package output serializes reconciliation reports.
package output

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
)

// ToJSON serializes a report to JSON.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	return marshal(report, pretty)
}

// SheetToJSON serializes a single sheet result to JSON.
func SheetToJSON(sheet *models.SheetResult, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// PointsToJSON serializes extracted data points to JSON.
func PointsToJSON(points []models.DataPoint, pretty bool) ([]byte, error) {
	if points == nil {
		points = []models.DataPoint{}
	}
	return marshal(points, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode JSON")
	}
	return data, nil
}
