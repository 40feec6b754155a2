// Package scraper extracts race metadata and betting-odds tables from
// netkeiba race pages and the JRA odds JSON API.
//
// One Scrape call fetches the race page, derives the race identity and the
// entries table, then collects odds for all eight bet types: the JSON API is
// tried first, then the primary odds page, then the "abroad" page layout.
// Failures are isolated per bet type; the returned Result always carries all
// eight pools with a status each.
package scraper

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/config"
	"github.com/ymatsuda/keiba-odds/internal/htmltable"
	"github.com/ymatsuda/keiba-odds/internal/logger"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// Scraper fetches and parses race pages. The underlying HTTP client is
// reused across all fetches of a scrape for connection reuse; it holds no
// cross-race state.
type Scraper struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
	baseURL        string
	apiURL         string
}

// New creates a Scraper with the given options. A nil cfg uses the defaults.
func New(cfg *config.Config) *Scraper {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
		baseURL:        cfg.BaseURL,
		apiURL:         cfg.APIURL,
	}
}

// Scrape fetches the race page and collects entries, odds, and per-pool
// statuses. It fails only when the race page itself cannot be fetched or
// parsed; per-bet-type failures surface as "error" statuses in the result.
func (s *Scraper) Scrape(raceURL string) (*Result, error) {
	doc, err := s.fetchDocument(raceURL)
	if err != nil {
		return nil, fmt.Errorf("fetching race page: %w", err)
	}

	raceID := ExtractRaceID(raceURL)
	raceDate := RaceDateFromID(raceID)

	result := &Result{
		RaceURL:    raceURL,
		RaceID:     raceID,
		RaceName:   extractRaceName(doc),
		RaceDate:   raceDate,
		Entries:    s.extractEntries(doc),
		Odds:       make(map[string][]*record.Record, len(bettype.All())),
		OddsStatus: make(map[string]*Status, len(bettype.All())),
		OddsLinks:  discoverOddsLinks(doc, raceURL),
	}

	for _, bt := range bettype.All() {
		rows, urls, err := s.collectOdds(raceID, bt, result.Entries)
		if err != nil {
			failedURL := bt.OddsURL(s.baseURL, raceID)
			if failedURL == "" {
				failedURL = bt.AbroadURL(s.baseURL, raceID)
			}
			errRow := record.New()
			errRow.Set("error", err.Error())
			errRow.Set("source_url", failedURL)
			result.Odds[bt.Label()] = []*record.Record{errRow}
			result.OddsStatus[bt.Label()] = &Status{
				Status:    StatusError,
				Rows:      0,
				Message:   err.Error(),
				SourceURL: failedURL,
			}
			logger.Error("odds collection failed", logger.Fields{
				"bet_type": bt.Label(),
				"url":      failedURL,
			}, err)
			continue
		}

		result.Odds[bt.Label()] = rows
		for key, value := range urls {
			if _, ok := result.OddsLinks[key]; !ok {
				result.OddsLinks[key] = value
			}
		}
		result.OddsStatus[bt.Label()] = s.classify(bt, rows, urls, raceDate)
	}

	return result, nil
}

// fetchDocument fetches a page and parses it into a goquery document. The
// response body passes through charset detection because the site serves
// EUC-JP pages with unreliable encoding declarations.
func (s *Scraper) fetchDocument(url string) (*goquery.Document, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", s.acceptLanguage)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	logger.IncrCounter("scraper.fetch")
	logger.RecordTiming("scraper.fetch", time.Since(start))
	logger.Debug("fetched page", logger.Fields{"url": url})

	return doc, nil
}

// extractEntries locates the entry table by keyword, falling back to the
// largest table on the page.
func (s *Scraper) extractEntries(doc *goquery.Document) []*record.Record {
	table := htmltable.FindTableByKeywords(doc, []string{"馬名"})
	if table == nil {
		table = htmltable.FindLargestTable(doc)
	}
	if table == nil {
		return nil
	}
	logger.Debug("entry table located", logger.Fields{
		"label": htmltable.ResolveTableLabel(doc, table),
	})
	return htmltable.ParseTable(table)
}
