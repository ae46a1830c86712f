package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber converts a textual number written with either Portuguese or
// English separators into a float. It does not apply the year filter.
//
// A number may carry a short trailing quality flag ("123 e", "1 234,5 Pe"),
// which is dropped. Any other letters make the string a label ("Quadro 1",
// "T1 2020", "15 anos").
func ParseNumber(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" || s == "-" || !flagOnly(s) {
		return 0, false
	}

	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")

	switch {
	case commas == 0 && dots <= 1:
		// dot is the decimal separator
	case commas == 1 && dots == 0:
		s = strings.Replace(s, ",", ".", 1)
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		parts := strings.Split(s, ".")
		last := parts[len(parts)-1]
		if len(last) <= 2 {
			s = strings.Join(parts[:len(parts)-1], "") + "." + last
		} else {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			return r
		}
		return -1
	}, s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// maxFlagLetters bounds the length of a trailing quality flag.
const maxFlagLetters = 2

// flagOnly reports whether the letters of a whitespace-free string, if any,
// form a trailing flag after a number.
func flagOnly(s string) bool {
	letters := 0
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r) && letters > 0:
			return false
		}
	}
	if letters == 0 {
		return true
	}
	first := []rune(s)[0]
	return letters <= maxFlagLetters && (unicode.IsDigit(first) || strings.ContainsRune("+-.", first))
}

// IsYear reports whether v is an integer inside the configured year range.
func (n *Normalizer) IsYear(v float64) bool {
	return v == math.Trunc(v) && v >= n.yearMin && v <= n.yearMax
}

// Value converts a raw value (nil, a Go number or a string) into a
// statistical measurement. Blanks, placeholders, text and year-like integers
// are not values.
func (n *Normalizer) Value(raw any) (float64, bool) {
	c := n.ClassifyValue(raw)
	if c.Kind != Number {
		return 0, false
	}
	return c.Value, true
}

// toFloat casts native Go numeric types.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
