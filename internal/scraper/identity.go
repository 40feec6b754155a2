package scraper

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/htmltable"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// raceNameSelectors is the fixed priority order for the race name.
var raceNameSelectors = []string{"h1", ".RaceName", ".RaceData01", "title"}

// ExtractRaceID returns the race_id query parameter of a URL, or "".
func ExtractRaceID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("race_id")
}

// RaceDateFromID derives a YYYY-MM-DD date from the first 8 digits of a race
// identifier. Identifiers with fewer than 8 digits, or whose prefix is not a
// valid date, yield "".
func RaceDateFromID(raceID string) string {
	if raceID == "" {
		return ""
	}
	var digits strings.Builder
	for _, r := range raceID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() < 8 {
		return ""
	}
	t, err := time.Parse("20060102", digits.String()[:8])
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// futureRaceHint returns a diagnostic hint when the race date lies strictly
// after today, or "".
func futureRaceHint(raceDate string) string {
	if raceDate == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", raceDate)
	if err != nil {
		return ""
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if t.After(today) {
		return fmt.Sprintf("race_date=%s は未来日付", raceDate)
	}
	return ""
}

// extractRaceName returns the first non-empty candidate text among the
// race-name selectors.
func extractRaceName(doc *goquery.Document) string {
	for _, selector := range raceNameSelectors {
		if text := htmltable.CellText(doc.Find(selector).First()); text != "" {
			return text
		}
	}
	return ""
}

// discoverOddsLinks collects same-page anchors whose text or href mentions a
// bet-type name, resolved against the race URL.
func discoverOddsLinks(doc *goquery.Document, baseURL string) map[string]string {
	links := make(map[string]string)
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		text := htmltable.CellText(anchor)
		href, _ := anchor.Attr("href")
		if text == "" && href == "" {
			return
		}
		for _, bt := range bettype.All() {
			if strings.Contains(text, bt.Label()) || strings.Contains(href, bt.Label()) {
				links[bt.Label()] = resolveURL(base, href)
			}
		}
	})
	return links
}

func resolveURL(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// entry-row field heuristics: header labels first, positional columns as
// fallback for headerless entry tables.
var (
	horseNumberKeys = []string{"馬番", "col_2", "col_1"}
	horseNameKeys   = []string{"馬名", "col_4", "col_3"}
)

// horseNumberFromEntry returns the entry row's horse number with leading
// zeros stripped, or "".
func horseNumberFromEntry(row *record.Record) string {
	for _, key := range horseNumberKeys {
		value := strings.TrimSpace(row.GetFuzzy(key))
		if isDigits(value) {
			return stripLeadingZeros(value)
		}
	}
	return ""
}

// horseNameFromEntry returns the entry row's horse name, or "".
func horseNameFromEntry(row *record.Record) string {
	for _, key := range horseNameKeys {
		if value := strings.TrimSpace(row.GetFuzzy(key)); value != "" {
			return value
		}
	}
	return ""
}

// horseNumbersFromEntries returns the distinct horse numbers of the entry
// rows in first-seen order.
func horseNumbersFromEntries(entries []*record.Record) []string {
	var values []string
	seen := make(map[string]bool)
	for _, row := range entries {
		value := horseNumberFromEntry(row)
		if value != "" && !seen[value] {
			seen[value] = true
			values = append(values, value)
		}
	}
	return values
}

// horseNamesByNumber indexes entry rows by horse number.
func horseNamesByNumber(entries []*record.Record) map[string]string {
	names := make(map[string]string)
	for _, row := range entries {
		if no := horseNumberFromEntry(row); no != "" {
			names[no] = horseNameFromEntry(row)
		}
	}
	return names
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func stripLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
