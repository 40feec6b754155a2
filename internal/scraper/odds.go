package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// oddsRangePattern matches "A - B" low-high odds ranges (place and
// quinella-place pools).
var oddsRangePattern = regexp.MustCompile(`^\s*[0-9]+(?:\.[0-9]+)?\s*-\s*[0-9]+(?:\.[0-9]+)?\s*$`)

// oddsPlaceholders are the site's not-yet-published markers.
var oddsPlaceholders = map[string]bool{
	"-":     true,
	"--":    true,
	"---.-": true,
}

// normalizeOdds strips thousands separators and surrounding whitespace.
func normalizeOdds(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
}

// parseNumericOdds parses a plain odds value. Placeholders, ranges, and
// non-numeric text report false.
func parseNumericOdds(value string) (float64, bool) {
	text := strings.TrimSpace(value)
	if text == "" || oddsPlaceholders[text] {
		return 0, false
	}
	text = strings.ReplaceAll(text, ",", "")
	if strings.Contains(text, "-") {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// hasAvailableOdds reports whether an odds text carries a published value:
// either a plain number or an "A - B" range.
func hasAvailableOdds(value string) bool {
	text := strings.TrimSpace(value)
	if text == "" || oddsPlaceholders[text] {
		return false
	}
	if _, ok := parseNumericOdds(text); ok {
		return true
	}
	return oddsRangePattern.MatchString(text)
}

// comboSortKey decodes a "-"-joined combination into its numeric tuple.
func comboSortKey(combo string) []int {
	var key []int
	for _, part := range strings.Split(combo, "-") {
		if isDigits(part) {
			n, _ := strconv.Atoi(part)
			key = append(key, n)
		}
	}
	return key
}

// lessComboKeys orders numeric tuples lexicographically.
func lessComboKeys(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
