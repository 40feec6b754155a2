package scraper

import (
	"fmt"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// classify decides a bet type's status after extraction. No rows means
// "missing"; rows without a single published odds value mean "unavailable"
// (pre-sale). Both diagnostics are enriched with an API-provided reason and
// a future-race-date hint when available.
func (s *Scraper) classify(bt bettype.BetType, rows []*record.Record, urls map[string]string, raceDate string) *Status {
	sourceURL := urls[bt.Label()]
	dateHint := futureRaceHint(raceDate)

	if len(rows) == 0 {
		message := bt.Label() + "のオッズを取得できませんでした"
		if reason := s.fetchOddsReason(sourceURL, bt); reason != "" {
			message = fmt.Sprintf("%s (api_reason: %s)", message, reason)
		}
		if dateHint != "" {
			message = fmt.Sprintf("%s (%s)", message, dateHint)
		}
		return &Status{
			Status:    StatusMissing,
			Rows:      0,
			Message:   message,
			SourceURL: sourceURL,
		}
	}

	for _, row := range rows {
		if hasAvailableOdds(row.Get(fieldOdds)) {
			return &Status{
				Status:    StatusOK,
				Rows:      len(rows),
				Message:   bt.Label() + "のオッズを取得しました",
				SourceURL: sourceURL,
			}
		}
	}

	message := bt.Label() + "は発売前または未更新の可能性があります"
	if reason := s.fetchOddsReason(sourceURL, bt); reason != "" {
		message = fmt.Sprintf("%s (api_reason: %s)", message, reason)
	}
	if dateHint != "" {
		message = fmt.Sprintf("%s (%s)", message, dateHint)
	}
	return &Status{
		Status:    StatusUnavailable,
		Rows:      len(rows),
		Message:   message,
		SourceURL: sourceURL,
	}
}
