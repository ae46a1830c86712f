package models

// MatchType describes how a recreated point was paired with a published one.
type MatchType string

const (
	// MatchExact pairs points whose coordinate keys are identical.
	MatchExact MatchType = "exact"
	// MatchSemantic pairs points whose levels are equal or equivalent.
	MatchSemantic MatchType = "semantic"
	// MatchFuzzy pairs points whose keys are similar above the threshold.
	MatchFuzzy MatchType = "fuzzy"
	// MatchNone marks points with no counterpart.
	MatchNone MatchType = "none"
)

// Comparison is one itemized entry of a sheet reconciliation.
type Comparison struct {
	// Coordinate is the coordinate key of the recreated point, or of the
	// published point for entries missing in the recreated sheet.
	Coordinate string `json:"coordinate"`
	// MatchedCoordinate is the published key paired with Coordinate when it differs.
	MatchedCoordinate string `json:"matched_coordinate,omitempty"`
	// MatchType is how the pair was found.
	MatchType MatchType `json:"match_type"`
	// Score is the fuzzy score (1 for exact and semantic pairs).
	Score float64 `json:"score,omitempty"`
	// RecreatedValue is nil when the point is missing in the recreated sheet.
	RecreatedValue *float64 `json:"recreated_value"`
	// PublishedValue is nil when the point is missing in the published sheet.
	PublishedValue *float64 `json:"published_value"`
	// Difference is recreated minus published, nil when either side is missing.
	Difference *float64 `json:"difference"`
	// OriginRow is the row of the originating cell (recreated side when present).
	OriginRow int `json:"origin_row"`
	// OriginCol is the column of the originating cell (recreated side when present).
	OriginCol int `json:"origin_col"`
	// PublishedRow is the row of the published cell, 0 when absent.
	PublishedRow int `json:"published_row,omitempty"`
	// PublishedCol is the column of the published cell, 0 when absent.
	PublishedCol int `json:"published_col,omitempty"`
}

// Duplicate reports a coordinate key produced by more than one cell of a sheet.
type Duplicate struct {
	// Side is "published" or "recreated".
	Side string `json:"side"`
	// Coordinate is the colliding key.
	Coordinate string `json:"coordinate"`
	// Kept is the cell whose value was used.
	Kept CellRef `json:"kept"`
	// Dropped is the later cell ignored for matching.
	Dropped CellRef `json:"dropped"`
	// Value is the dropped cell's value.
	Value float64 `json:"value"`
}

// SheetResult represents the reconciliation of one sheet.
type SheetResult struct {
	// Sheet is the compared sheet name.
	Sheet string `json:"sheet"`
	// PublishedPoints is the number of distinct published coordinates.
	PublishedPoints int `json:"published_points"`
	// RecreatedPoints is the number of distinct recreated coordinates.
	RecreatedPoints int `json:"recreated_points"`
	// CorrectMatches counts pairs within tolerance.
	CorrectMatches int `json:"correct_matches"`
	// ValueDifferences counts pairs outside tolerance.
	ValueDifferences int `json:"value_differences"`
	// MissingInPublished counts recreated points without a published counterpart.
	MissingInPublished int `json:"missing_in_published"`
	// MissingInRecreated counts published points never claimed by a recreated point.
	MissingInRecreated int `json:"missing_in_recreated"`
	// Accuracy is CorrectMatches / RecreatedPoints (0 when there are none).
	Accuracy float64 `json:"accuracy"`

	Matches          []Comparison `json:"matches,omitempty"`
	Differences      []Comparison `json:"differences,omitempty"`
	MissingPublished []Comparison `json:"missing_published,omitempty"`
	MissingRecreated []Comparison `json:"missing_recreated,omitempty"`
	Duplicates       []Duplicate  `json:"duplicates,omitempty"`

	// PublishedNoData is set when no data region was detected in the published sheet.
	PublishedNoData bool `json:"published_no_data,omitempty"`
	// RecreatedNoData is set when no data region was detected in the recreated sheet.
	RecreatedNoData bool `json:"recreated_no_data,omitempty"`
	// PublishedStage is the detection strategy that produced the published region.
	PublishedStage string `json:"published_stage,omitempty"`
	// RecreatedStage is the detection strategy that produced the recreated region.
	RecreatedStage string `json:"recreated_stage,omitempty"`
	// Error holds the input failure for this sheet, if any.
	Error string `json:"error,omitempty"`
}

// NoData reports whether either side had no detectable data.
func (r *SheetResult) NoData() bool {
	return r.PublishedNoData || r.RecreatedNoData
}

// Failed reports whether the sheet could not be compared.
func (r *SheetResult) Failed() bool {
	return r.Error != ""
}
