package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/grid"
)

// Kind is the classification of a cell's content.
type Kind int

const (
	// Blank is an empty cell, a separator or a "no data" placeholder.
	Blank Kind = iota
	// Total is a total-family token ("Total", "(em branco)", "Geral", ...).
	Total
	// Year is an integer in the configured year range.
	Year
	// Month is a month name, optionally followed by a year.
	Month
	// Text is any other label.
	Text
	// Number is a statistical measurement.
	Number
)

var kindNames = [...]string{"blank", "total", "year", "month", "text", "number"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Class is the result of classifying a cell.
type Class struct {
	Kind Kind
	// Label is the trimmed textual form of the content.
	Label string
	// Value is the parsed number for Number and Year kinds.
	Value float64
	// Native is true when the value came from a numeric cell type.
	Native bool
}

// Classify classifies a grid cell. Every component that needs to tell data
// from headers goes through this function.
func (n *Normalizer) Classify(c grid.Cell) Class {
	switch c.Kind {
	case grid.Number:
		return n.classifyNumber(c.Number, true)
	case grid.Text:
		return n.classifyText(c.Text)
	case grid.Date:
		return n.classifyDate(c.Text)
	}
	return Class{Kind: Blank}
}

// ClassifyValue classifies a raw value (nil, a Go number or a string).
func (n *Normalizer) ClassifyValue(raw any) Class {
	if raw == nil {
		return Class{Kind: Blank}
	}
	if v, ok := toFloat(raw); ok {
		return n.classifyNumber(v, true)
	}
	switch v := raw.(type) {
	case string:
		return n.classifyText(v)
	case grid.Cell:
		return n.Classify(v)
	}
	return Class{Kind: Blank}
}

func (n *Normalizer) classifyNumber(v float64, native bool) Class {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Class{Kind: Blank}
	}
	label := strconv.FormatFloat(v, 'f', -1, 64)
	if n.IsYear(v) {
		return Class{Kind: Year, Label: label, Value: v, Native: native}
	}
	return Class{Kind: Number, Label: label, Value: v, Native: native}
}

func (n *Normalizer) classifyText(s string) Class {
	label := CollapseSpace(s)
	folded := Fold(label)
	switch {
	case label == "":
		return Class{Kind: Blank}
	case n.placeholders[folded], isErrorLiteral(label):
		return Class{Kind: Blank, Label: label}
	case n.totals[folded]:
		return Class{Kind: Total, Label: label}
	}

	if v, ok := ParseNumber(label); ok {
		c := n.classifyNumber(v, false)
		c.Label = label
		return c
	}
	if n.isMonth(folded) {
		return Class{Kind: Month, Label: label}
	}
	return Class{Kind: Text, Label: label}
}

// classifyDate treats the displayed form of a date cell as a label.
// Dates are never measurements.
func (n *Normalizer) classifyDate(s string) Class {
	label := CollapseSpace(s)
	switch {
	case label == "":
		return Class{Kind: Blank}
	case n.isMonth(Fold(label)):
		return Class{Kind: Month, Label: label}
	}
	return Class{Kind: Text, Label: label}
}

// isMonth matches "janeiro", "Jan.", "jan 2020", "janeiro de 2020".
func (n *Normalizer) isMonth(folded string) bool {
	tokens := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	found := false
	for _, tok := range tokens {
		switch {
		case n.months[tok]:
			found = true
		case tok == "de" || isDigits(tok):
		default:
			return false
		}
	}
	return found
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// isErrorLiteral matches spreadsheet error values such as #N/A or #DIV/0!.
func isErrorLiteral(s string) bool {
	switch strings.ToUpper(s) {
	case "#N/A", "#DIV/0!", "#REF!", "#VALUE!", "#NAME?", "#NUM!", "#NULL!":
		return true
	}
	return false
}
