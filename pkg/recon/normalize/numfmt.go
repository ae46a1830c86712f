package normalize

import (
	"math"
	"strings"
)

// DisplayDecimals returns the number of decimals a number format displays.
// It reports false for General, text and scientific formats.
func DisplayDecimals(format string) (int, bool) {
	section := strings.SplitN(format, ";", 2)[0]
	section = stripLiterals(section)
	if section == "" || strings.EqualFold(section, "general") || section == "@" {
		return 0, false
	}
	if strings.ContainsAny(section, "Ee") {
		return 0, false
	}
	if !strings.ContainsAny(section, "0#?") {
		return 0, false
	}

	decimals := 0
	if i := strings.IndexByte(section, '.'); i >= 0 {
		for _, r := range section[i+1:] {
			if r != '0' && r != '#' && r != '?' {
				break
			}
			decimals++
		}
	}
	if strings.Contains(section, "%") {
		decimals += 2
	}
	return decimals, true
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// stripLiterals removes quoted text, bracketed sections and escaped
// characters from a format section.
func stripLiterals(s string) string {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\' || r == '_' || r == '*':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
