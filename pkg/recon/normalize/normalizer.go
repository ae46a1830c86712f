// Package normalize turns raw cell content into canonical numbers and header
// labels, and resolves known notational variants of the same category.
//
// All tables are carried by a Normalizer built from Rules, so alternative
// tables can be injected without touching package state.
package normalize

import (
	"regexp"

	"github.com/cockroachdb/errors"
)

// Rewrite is an ordered label rewrite rule (regexp syntax, $1-style
// replacement).
type Rewrite struct {
	Pattern string `mapstructure:"pattern"`
	Replace string `mapstructure:"replace"`
}

// Rules holds the fixed tables and thresholds used for normalization.
type Rules struct {
	// YearMin and YearMax bound integer values treated as calendar years.
	YearMin int `mapstructure:"year_min"`
	YearMax int `mapstructure:"year_max"`
	// TotalTokens collapse to the canonical "Total" label (case-insensitive).
	TotalTokens []string `mapstructure:"total_tokens"`
	// Placeholders are separator or "no data" tokens that count as blank.
	Placeholders []string `mapstructure:"placeholders"`
	// Months are month names and abbreviations.
	Months []string `mapstructure:"months"`
	// Rewrites are applied to labels in order. Placeholder cells are
	// rejected as headers before any rewrite, so a rule such as the "n.d."
	// one only shapes labels passed to Label directly.
	Rewrites []Rewrite `mapstructure:"rewrites"`
	// Equivalences is the pairwise semantic equivalence table.
	Equivalences []Pair `mapstructure:"equivalences"`
}

// DefaultRules returns the Portuguese statistics tables.
func DefaultRules() Rules {
	return Rules{
		YearMin: 1900,
		YearMax: 2030,
		TotalTokens: []string{
			"", "total", "(total)", "totais", "total geral", "todos", "(todos)",
			"geral", "(geral)", "conjunto", "soma", "sum", "all",
			"(em branco)", "em branco", "blank", "(blank)", "vazio", "(vazio)",
		},
		Placeholders: []string{
			"-", "–", "—", ".", "..", "...", "…", "*", "•", "·", "x", "§",
			"n.d.", "n.d", "nd", "s/d", "n/a",
		},
		Months: []string{
			"janeiro", "fevereiro", "março", "abril", "maio", "junho",
			"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
			"jan", "fev", "mar", "abr", "mai", "jun",
			"jul", "ago", "set", "out", "nov", "dez",
			"january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
			"feb", "apr", "aug", "sep", "oct", "dec",
		},
		Rewrites: []Rewrite{
			{Pattern: `(?i)\(em\s+branco\)`, Replace: "Total"},
			{Pattern: `(?i)\bde\s+(\d+)\s+a\s+(\d+)`, Replace: "${1} - ${2}"},
			{Pattern: `(?i)(\d+)\s*anos?\s*ou\s*mais`, Replace: "${1}+"},
			{Pattern: `(?i)menos\s+de\s+(\d+)\s*anos?`, Replace: "< ${1}"},
			{Pattern: `(?i)^n\.?\s*d\.?$`, Replace: "Não disponível"},
		},
		Equivalences: []Pair{
			{From: "****", To: "4"},
			{From: "***", To: "3"},
			{From: "**", To: "2"},
			{From: "*", To: "1"},
			{From: "*****", To: "5"},
			{From: "(Em branco)", To: "Total"},
			{From: "HM", To: "Total"},
		},
	}
}

type compiledRewrite struct {
	re      *regexp.Regexp
	replace string
}

// Normalizer applies a fixed set of Rules. It is immutable after New and safe
// for concurrent use.
type Normalizer struct {
	yearMin      float64
	yearMax      float64
	totals       map[string]bool
	placeholders map[string]bool
	months       map[string]bool
	rewrites     []compiledRewrite
	equiv        Equivalences
}

// New compiles rules into a Normalizer.
func New(rules Rules) (*Normalizer, error) {
	if rules.YearMax < rules.YearMin {
		return nil, errors.Newf("year range [%d, %d] is empty", rules.YearMin, rules.YearMax)
	}

	n := &Normalizer{
		yearMin:      float64(rules.YearMin),
		yearMax:      float64(rules.YearMax),
		totals:       foldSet(rules.TotalTokens),
		placeholders: foldSet(rules.Placeholders),
		months:       foldSet(rules.Months),
		equiv:        NewEquivalences(rules.Equivalences),
	}
	for _, rw := range rules.Rewrites {
		re, err := regexp.Compile(rw.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "label rewrite %q", rw.Pattern)
		}
		n.rewrites = append(n.rewrites, compiledRewrite{re: re, replace: rw.Replace})
	}
	return n, nil
}

// Default returns a Normalizer built from DefaultRules.
func Default() *Normalizer {
	n, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return n
}

// Equivalences returns the semantic equivalence table.
func (n *Normalizer) Equivalences() Equivalences {
	return n.equiv
}

func foldSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[Fold(v)] = true
	}
	return set
}
