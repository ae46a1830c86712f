// Package match pairs data points of two sheets by coordinate key and
// classifies every point as a match, a value difference or missing on one
// side.
package match

import (
	"strings"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/models"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
)

// Level names in key order.
const (
	LevelCol1 = "col1"
	LevelCol2 = "col2"
	LevelRow1 = "row1"
	LevelRow2 = "row2"
)

// Level is one named component of a coordinate key.
type Level struct {
	Name  string
	Label string
}

// Key is the coordinate of a data point: its non-empty header levels after
// label normalization and forward semantic equivalence.
type Key []Level

// KeyOf builds the coordinate key of a data point.
func KeyOf(p models.DataPoint, n *normalize.Normalizer) Key {
	raw := [...]Level{
		{LevelCol1, p.ColumnLevel1},
		{LevelCol2, p.ColumnLevel2},
		{LevelRow1, p.RowLevel1},
		{LevelRow2, p.RowLevel2},
	}
	key := make(Key, 0, len(raw))
	for _, lv := range raw {
		if strings.TrimSpace(lv.Label) == "" {
			continue
		}
		key = append(key, Level{Name: lv.Name, Label: n.Canonical(lv.Label)})
	}
	return key
}

// String renders the key as "col1=2020|row1=Total".
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, lv := range k {
		parts[i] = lv.Name + "=" + lv.Label
	}
	return strings.Join(parts, "|")
}

// ID is the case-insensitive identity of the key.
func (k Key) ID() string {
	parts := make([]string, len(k))
	for i, lv := range k {
		parts[i] = lv.Name + "=" + normalize.Fold(lv.Label)
	}
	return strings.Join(parts, "|")
}

// SameShape reports whether both keys have the same level names in order.
func (k Key) SameShape(o Key) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if k[i].Name != o[i].Name {
			return false
		}
	}
	return true
}

// Get returns the label of the named level.
func (k Key) Get(name string) (string, bool) {
	for _, lv := range k {
		if lv.Name == name {
			return lv.Label, true
		}
	}
	return "", false
}
