package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// collectOdds runs the per-bet-type retrieval chain: JSON API first, then
// the primary odds page, then the abroad layout. The returned URL map keys
// every page consulted; err is non-nil only for fetch failures, which the
// caller converts into an error status for this bet type alone.
func (s *Scraper) collectOdds(raceID string, bt bettype.BetType, entries []*record.Record) ([]*record.Record, map[string]string, error) {
	urls := make(map[string]string)

	typeURL := bt.OddsURL(s.baseURL, raceID)
	abroadURL := bt.AbroadURL(s.baseURL, raceID)
	if typeURL == "" && abroadURL == "" {
		return nil, urls, nil
	}

	primaryURL := typeURL
	if primaryURL == "" {
		primaryURL = abroadURL
	}
	urls[bt.Label()] = primaryURL

	// API path wins over HTML scraping when it yields rows. An API failure
	// is not an error; the HTML fallbacks still run.
	if raceID != "" && bt.APICode() != "" {
		payload, err := s.fetchAPIPayload(raceID, bt.APICode(), primaryURL)
		if err == nil {
			if rows := extractAPIRows(payload, bt, entries); len(rows) > 0 {
				urls[bt.Label()+"_api"] = s.apiURL
				return rows, urls, nil
			}
		}
	}

	switch {
	case !bt.IsCombination():
		return s.collectWinPlaceOdds(bt, primaryURL, abroadURL, urls)
	case bt.ComboSize() == 3:
		return s.collectTripleOddsWithFallback(bt, primaryURL, abroadURL, urls, entries)
	default:
		return s.collectPairOdds(bt, primaryURL, abroadURL, urls)
	}
}

// collectWinPlaceOdds scrapes a win/place page: heading-routed extraction
// first, position-based fallback second, abroad layout last.
func (s *Scraper) collectWinPlaceOdds(bt bettype.BetType, primaryURL, abroadURL string, urls map[string]string) ([]*record.Record, map[string]string, error) {
	doc, err := s.fetchDocument(primaryURL)
	if err != nil {
		return nil, urls, err
	}
	rows := winPlaceRowsFromDocument(doc, bt)
	if len(rows) > 0 {
		return rows, urls, nil
	}

	if abroadURL != "" && abroadURL != primaryURL {
		fallbackDoc, err := s.fetchDocument(abroadURL)
		if err != nil {
			return nil, urls, err
		}
		fallbackRows := winPlaceRowsFromDocument(fallbackDoc, bt)
		if len(fallbackRows) > 0 {
			urls[bt.Label()+"_fallback"] = abroadURL
			return fallbackRows, urls, nil
		}
	}
	return rows, urls, nil
}

func winPlaceRowsFromDocument(doc *goquery.Document, bt bettype.BetType) []*record.Record {
	rows := extractOddsByBetType(doc)[bt]
	if len(rows) == 0 {
		rows = extractWinPlaceByPosition(doc)[bt]
	}
	return rows
}

// collectPairOdds scrapes a 2-way combination page (bracket quinella,
// quinella, quinella place, exacta) from its combination cells.
func (s *Scraper) collectPairOdds(bt bettype.BetType, primaryURL, abroadURL string, urls map[string]string) ([]*record.Record, map[string]string, error) {
	doc, err := s.fetchDocument(primaryURL)
	if err != nil {
		return nil, urls, err
	}
	rows := recordsFromCartItems(extractCartItems(doc, bt))
	if len(rows) > 0 {
		return rows, urls, nil
	}

	if abroadURL != "" && abroadURL != primaryURL {
		fallbackDoc, err := s.fetchDocument(abroadURL)
		if err != nil {
			return nil, urls, err
		}
		fallbackRows := recordsFromCartItems(extractCartItems(fallbackDoc, bt))
		if len(fallbackRows) > 0 {
			urls[bt.Label()+"_fallback"] = abroadURL
			return fallbackRows, urls, nil
		}
	}
	return rows, urls, nil
}

// collectTripleOddsWithFallback runs the axis-based enumeration against the
// primary page, then the abroad layout.
func (s *Scraper) collectTripleOddsWithFallback(bt bettype.BetType, primaryURL, abroadURL string, urls map[string]string, entries []*record.Record) ([]*record.Record, map[string]string, error) {
	rows, jikuURLs, err := s.collectTripleOdds(primaryURL, bt, entries)
	for key, value := range jikuURLs {
		urls[key] = value
	}
	if err != nil {
		return nil, urls, err
	}
	if len(rows) > 0 {
		return rows, urls, nil
	}

	if abroadURL != "" && abroadURL != primaryURL {
		fallbackRows, fallbackJikuURLs, err := s.collectTripleOdds(abroadURL, bt, entries)
		for key, value := range fallbackJikuURLs {
			urls["fallback_"+key] = value
		}
		if err != nil {
			return nil, urls, err
		}
		if len(fallbackRows) > 0 {
			urls[bt.Label()+"_fallback"] = abroadURL
			return fallbackRows, urls, nil
		}
	}
	return rows, urls, nil
}

// collectTripleOdds enumerates a 3-way combination market (trio, trifecta)
// through per-axis sub-pages: one fetch per selectable axis value, merged by
// the page-native cart-item key across axis fetches. An N-horse race means
// up to N sequential sub-fetches.
func (s *Scraper) collectTripleOdds(poolURL string, bt bettype.BetType, entries []*record.Record) ([]*record.Record, map[string]string, error) {
	doc, err := s.fetchDocument(poolURL)
	if err != nil {
		return nil, nil, err
	}

	jikuValues := extractJikuValues(doc)
	if len(jikuValues) == 0 {
		jikuValues = horseNumbersFromEntries(entries)
	}

	merged := make(map[string]cartItem)
	jikuURLs := make(map[string]string)

	for _, jiku := range jikuValues {
		jikuURL := fmt.Sprintf("%s&jiku=%s", poolURL, jiku)
		jikuURLs[fmt.Sprintf("%s_jiku_%s", bt.Label(), jiku)] = jikuURL

		jikuDoc, err := s.fetchDocument(jikuURL)
		if err != nil {
			return nil, jikuURLs, err
		}
		for _, item := range extractCartItems(jikuDoc, bt) {
			if item.key == "" {
				continue
			}
			merged[item.key] = item
		}
	}

	items := make([]cartItem, 0, len(merged))
	for _, item := range merged {
		items = append(items, item)
	}
	sortCartItems(items)
	return recordsFromCartItems(items), jikuURLs, nil
}

// extractJikuValues reads the selectable axis values from the page's option
// elements, keeping all-digit values in first-seen order.
func extractJikuValues(doc *goquery.Document) []string {
	var values []string
	seen := make(map[string]bool)
	doc.Find("option[value]").Each(func(_ int, option *goquery.Selection) {
		value, _ := option.Attr("value")
		value = strings.TrimSpace(value)
		if isDigits(value) && !seen[value] {
			seen[value] = true
			values = append(values, value)
		}
	})
	return values
}
