package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/htmltable"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// extractOddsByBetType routes each heading's following table to bet-type
// buckets by substring match on the heading text. Two composite headings
// (win+place, quinella+quinella-place) split one table into two row sets.
// Unmatched headings contribute nothing.
func extractOddsByBetType(doc *goquery.Document) map[bettype.BetType][]*record.Record {
	result := make(map[bettype.BetType][]*record.Record, len(bettype.All()))
	for _, bt := range bettype.All() {
		result[bt] = nil
	}

	ix := htmltable.IndexNodes(doc)
	doc.Find("h1, h2, h3, h4").Each(func(_ int, heading *goquery.Selection) {
		title := htmltable.CellText(heading)
		// Full-width "３" appears in some trio/trifecta headings.
		title = strings.ReplaceAll(title, "３", "3")

		table := htmltable.NextTableAfter(doc, ix, heading)
		if table == nil {
			return
		}
		rows := htmltable.ParseTable(table)
		if len(rows) == 0 {
			return
		}

		switch {
		case strings.Contains(title, "単勝") && strings.Contains(title, "複勝"):
			winRows, placeRows := splitWinPlaceRows(rows)
			if len(winRows) > 0 {
				result[bettype.Win] = winRows
			}
			if len(placeRows) > 0 {
				result[bettype.Place] = placeRows
			}
		case strings.Contains(title, "馬連") && strings.Contains(title, "ワイド"):
			quinellaRows, wideRows := splitQuinellaWideRows(rows)
			if len(quinellaRows) > 0 {
				result[bettype.Quinella] = quinellaRows
			}
			if len(wideRows) > 0 {
				result[bettype.QuinellaPlace] = wideRows
			}
		case strings.Contains(title, "枠連"):
			result[bettype.BracketQuinella] = rows
		case strings.Contains(title, "馬単"):
			result[bettype.Exacta] = rows
		case strings.Contains(title, "3連複"):
			result[bettype.Trio] = rows
		case strings.Contains(title, "3連単"):
			result[bettype.Trifecta] = rows
		}
	})

	return result
}

// splitWinPlaceRows splits a combined win/place table into the two pools'
// row shapes, renaming the per-pool odds column to the common odds field.
func splitWinPlaceRows(rows []*record.Record) (winRows, placeRows []*record.Record) {
	for _, row := range rows {
		winValue := row.GetFuzzy("単勝オッズ")
		if winValue == "" {
			winValue = row.GetFuzzy("単勝")
		}
		placeValue := row.GetFuzzy("複勝オッズ")
		if placeValue == "" {
			placeValue = row.GetFuzzy("複勝")
		}

		winRow := record.New()
		placeRow := record.New()
		for _, pair := range []struct{ field, value string }{
			{fieldPopularity, row.GetFuzzy(fieldPopularity)},
			{fieldGate, row.GetFuzzy("ゲート")},
			{fieldHorseNumber, row.GetFuzzy(fieldHorseNumber)},
			{fieldHorseName, row.GetFuzzy(fieldHorseName)},
		} {
			winRow.Set(pair.field, pair.value)
			placeRow.Set(pair.field, pair.value)
		}
		winRow.Set(fieldOdds, normalizeOdds(winValue))
		placeRow.Set(fieldOdds, normalizeOdds(placeValue))

		winRows = append(winRows, winRow)
		placeRows = append(placeRows, placeRow)
	}
	return winRows, placeRows
}

// splitQuinellaWideRows splits a combined quinella/quinella-place table.
func splitQuinellaWideRows(rows []*record.Record) (quinellaRows, wideRows []*record.Record) {
	for _, row := range rows {
		pair := row.GetFuzzy(fieldCombination)
		if pair == "" {
			pair = row.GetFuzzy("組合せ")
		}
		popularity := row.GetFuzzy(fieldPopularity)
		quinellaOdds := row.GetFuzzy(fieldOdds)
		wideOdds := row.GetFuzzy("ワイド・オッズ")
		if wideOdds == "" {
			wideOdds = row.GetFuzzy("ワイド")
		}

		quinellaRow := record.New()
		quinellaRow.Set(fieldPopularity, popularity)
		quinellaRow.Set(fieldCombination, pair)
		quinellaRow.Set(fieldOdds, normalizeOdds(quinellaOdds))
		quinellaRows = append(quinellaRows, quinellaRow)

		wideRow := record.New()
		wideRow.Set(fieldPopularity, popularity)
		wideRow.Set(fieldCombination, pair)
		wideRow.Set(fieldOdds, normalizeOdds(wideOdds))
		wideRows = append(wideRows, wideRow)
	}
	return quinellaRows, wideRows
}
