package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// TotalLabel is the canonical label of total-family headers.
const TotalLabel = "Total"

// CollapseSpace composes the string to NFC, trims it and collapses internal
// whitespace (including non-breaking spaces) to single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Fold returns the case-folded, space-collapsed form used for comparisons.
func Fold(s string) string {
	// Casers are stateful; one per call keeps Fold safe for concurrent use.
	return cases.Fold().String(CollapseSpace(s))
}

// Label converts a raw header into its canonical label: total-family tokens
// become "Total", conventional phrasings are rewritten ("de 15 a 24" ->
// "15 - 24", "65 anos ou mais" -> "65+", "menos de 15 anos" -> "< 15") and
// whitespace is collapsed.
func (n *Normalizer) Label(s string) string {
	label := CollapseSpace(s)
	if n.totals[Fold(label)] {
		return TotalLabel
	}
	for _, rw := range n.rewrites {
		label = rw.re.ReplaceAllString(label, rw.replace)
	}
	label = CollapseSpace(label)
	if n.totals[Fold(label)] {
		return TotalLabel
	}
	return label
}

// Canonical returns the label after normalization and forward equivalence,
// the form used to build coordinate keys.
func (n *Normalizer) Canonical(s string) string {
	return n.equiv.Canonical(n.Label(s))
}

// Equivalent applies one symmetric lookup in the equivalence table.
func (n *Normalizer) Equivalent(s string) string {
	return n.equiv.Equivalent(s)
}

// Equal reports whether two labels are equal or one-step equivalent.
func (n *Normalizer) Equal(a, b string) bool {
	return n.equiv.Equal(a, b)
}
