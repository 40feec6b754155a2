// Package bettype enumerates the eight netkeiba wagering pools and the
// per-pool constants needed to reach their odds pages and the JRA odds API.
package bettype

import "fmt"

// BetType identifies one of the eight wagering pools offered per race.
type BetType int

const (
	Win BetType = iota
	Place
	BracketQuinella
	Quinella
	QuinellaPlace
	Exacta
	Trio
	Trifecta
)

type info struct {
	label    string // pool name as it appears on the site
	pageCode string // "type" token of the odds pages
	apiCode  string // "type" token of the JSON odds API
	arity    int    // horse numbers per combination; 0 for single-horse pools
	alias    string // filesystem-safe name for exported CSV files
}

var table = [...]info{
	Win:             {"単勝", "b1", "1", 0, "win"},
	Place:           {"複勝", "b1", "2", 0, "place"},
	BracketQuinella: {"枠連", "b2", "3", 2, "bracket_quinella"},
	Quinella:        {"馬連", "b4", "4", 2, "quinella"},
	QuinellaPlace:   {"ワイド", "b5", "5", 2, "quinella_place"},
	Exacta:          {"馬単", "b6", "6", 2, "exacta"},
	Trio:            {"三連複", "b7", "7", 3, "trio"},
	Trifecta:        {"三連単", "b8", "8", 3, "trifecta"},
}

// All returns every bet type in the site's display order.
func All() []BetType {
	return []BetType{Win, Place, BracketQuinella, Quinella, QuinellaPlace, Exacta, Trio, Trifecta}
}

// FromLabel resolves a site label (e.g. "馬連") back to its bet type.
func FromLabel(label string) (BetType, bool) {
	for _, b := range All() {
		if b.Label() == label {
			return b, true
		}
	}
	return 0, false
}

// Label returns the pool name as used on the site and in exported rows.
func (b BetType) Label() string { return table[b].label }

// PageCode returns the "type" query token of the odds pages.
func (b BetType) PageCode() string { return table[b].pageCode }

// APICode returns the "type" query token of the JSON odds API.
func (b BetType) APICode() string { return table[b].apiCode }

// ComboSize returns the number of horse numbers per combination, or 0 for
// the single-horse pools (win, place).
func (b BetType) ComboSize() int { return table[b].arity }

// IsCombination reports whether the pool pays on a combination of horses.
func (b BetType) IsCombination() bool { return table[b].arity > 0 }

// CSVAlias returns the ASCII file name used for this pool's CSV export.
func (b BetType) CSVAlias() string { return table[b].alias }

func (b BetType) String() string { return table[b].label }

// OddsURL returns the primary pool page URL, or "" when raceID is absent.
func (b BetType) OddsURL(base, raceID string) string {
	if raceID == "" {
		return ""
	}
	return fmt.Sprintf("%s/odds/index.html?type=%s&race_id=%s", base, b.PageCode(), raceID)
}

// AbroadURL returns the secondary ("abroad" layout) pool page URL, or ""
// when raceID is absent.
func (b BetType) AbroadURL(base, raceID string) string {
	if raceID == "" {
		return ""
	}
	return fmt.Sprintf("%s/odds/abroad.html?type=%s&race_id=%s", base, b.PageCode(), raceID)
}
