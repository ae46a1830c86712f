package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
)

// Similarity returns the normalized Levenshtein similarity of two labels in
// [0, 1], compared case-insensitively.
func Similarity(a, b string) float64 {
	a, b = normalize.Fold(a), normalize.Fold(b)
	if a == b {
		return 1
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// score compares two keys level by level: 1 for equal or equivalent labels,
// the similarity when it reaches levelThreshold, 0 otherwise. The sum is
// divided by the number of distinct level names on both sides, so keys of
// different arity are penalized.
func score(a, b Key, n *normalize.Normalizer, levelThreshold float64) float64 {
	names := make(map[string]bool, len(a)+len(b))
	for _, lv := range a {
		names[lv.Name] = true
	}
	for _, lv := range b {
		names[lv.Name] = true
	}
	if len(names) == 0 {
		return 0
	}

	var total float64
	for _, lv := range a {
		other, ok := b.Get(lv.Name)
		if !ok {
			continue
		}
		if n.Equal(lv.Label, other) {
			total++
			continue
		}
		if sim := Similarity(lv.Label, other); sim >= levelThreshold {
			total += sim
		}
	}
	return total / float64(len(names))
}
