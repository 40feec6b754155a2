package scraper

import "github.com/ymatsuda/keiba-odds/internal/record"

// Row field labels, matching the site's column names so exported rows keep
// the source vocabulary.
const (
	fieldHorseNumber = "馬番"
	fieldHorseName   = "馬名"
	fieldOdds        = "オッズ"
	fieldCombination = "組み合わせ"
	fieldPopularity  = "人気"
	fieldGate        = "ゲート"
)

// Status values for a bet type's odds extraction.
const (
	StatusOK          = "ok"
	StatusMissing     = "missing"
	StatusUnavailable = "unavailable"
	StatusError       = "error"
)

// Status describes the outcome of odds extraction for one bet type.
type Status struct {
	Status    string `json:"status"`
	Rows      int    `json:"rows"`
	Message   string `json:"message"`
	SourceURL string `json:"source_url"`
}

// Result is the full outcome of scraping one race page. Odds and OddsStatus
// always carry an entry for every bet type, keyed by the pool's site label.
type Result struct {
	RaceURL    string                      `json:"race_url"`
	RaceID     string                      `json:"race_id"`
	RaceName   string                      `json:"race_name"`
	RaceDate   string                      `json:"race_date"`
	Entries    []*record.Record            `json:"entries"`
	Odds       map[string][]*record.Record `json:"odds"`
	OddsStatus map[string]*Status          `json:"odds_status"`
	OddsLinks  map[string]string           `json:"odds_links"`
}
