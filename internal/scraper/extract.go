package scraper

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/htmltable"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// cartNumberPattern extracts the trailing numeric tokens of a cart-item
// attribute, e.g. "odds_4_7" or "umatan_202401010101_4_7".
var cartNumberPattern = regexp.MustCompile(`_(\d+)`)

// cartItem is one combination cell before conversion to an output row. key
// is the raw cart-item attribute, the page-native dedup key.
type cartItem struct {
	key   string
	combo string
	nums  []int
	odds  string
}

// extractCartItems scans combination cells (td[cart-item]) and keeps those
// whose attribute ends in exactly the bet type's arity of horse numbers.
// Results are deduplicated by attribute value (last write wins) and sorted
// ascending by decoded numeric tuple.
func extractCartItems(doc *goquery.Document, bt bettype.BetType) []cartItem {
	want := bt.ComboSize()

	var items []cartItem
	doc.Find("td[cart-item]").Each(func(_ int, cell *goquery.Selection) {
		attr, _ := cell.Attr("cart-item")
		matches := cartNumberPattern.FindAllStringSubmatch(attr, -1)
		if len(matches) < want {
			return
		}

		tokens := matches[len(matches)-want:]
		parts := make([]string, 0, want)
		nums := make([]int, 0, want)
		for _, m := range tokens {
			parts = append(parts, m[1])
			nums = append(nums, atoiDigits(m[1]))
		}

		odds := htmltable.CellText(cell.Find("span#odds").First())
		if cell.Find("span#odds").Length() == 0 {
			odds = htmltable.CellText(cell)
		}

		items = append(items, cartItem{
			key:   attr,
			combo: strings.Join(parts, "-"),
			nums:  nums,
			odds:  normalizeOdds(odds),
		})
	})

	return dedupCartItems(items)
}

// dedupCartItems collapses items sharing a dedup key (the raw attribute, or
// the combination when absent) and sorts by numeric tuple.
func dedupCartItems(items []cartItem) []cartItem {
	dedup := make(map[string]cartItem, len(items))
	for _, item := range items {
		key := item.key
		if key == "" {
			key = item.combo
		}
		dedup[key] = item
	}

	merged := make([]cartItem, 0, len(dedup))
	for _, item := range dedup {
		merged = append(merged, item)
	}
	sortCartItems(merged)
	return merged
}

func sortCartItems(items []cartItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if lessComboKeys(items[i].nums, items[j].nums) {
			return true
		}
		if lessComboKeys(items[j].nums, items[i].nums) {
			return false
		}
		return items[i].combo < items[j].combo
	})
}

// recordsFromCartItems converts combination cells to output rows.
func recordsFromCartItems(items []cartItem) []*record.Record {
	var rows []*record.Record
	for _, item := range items {
		row := record.New()
		row.Set(fieldCombination, item.combo)
		row.Set(fieldOdds, item.odds)
		rows = append(rows, row)
	}
	return rows
}

// extractWinPlaceByPosition is the position-based fallback for win/place
// pages whose headings could not be matched: the first table is the win
// pool and the second the place pool, with positional column guesses.
func extractWinPlaceByPosition(doc *goquery.Document) map[bettype.BetType][]*record.Record {
	result := map[bettype.BetType][]*record.Record{
		bettype.Win:   nil,
		bettype.Place: nil,
	}
	tables := doc.Find("table")
	if tables.Length() < 2 {
		return result
	}
	result[bettype.Win] = parseWinPlaceTable(tables.Eq(0))
	result[bettype.Place] = parseWinPlaceTable(tables.Eq(1))
	return result
}

func parseWinPlaceTable(table *goquery.Selection) []*record.Record {
	var rows []*record.Record
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, htmltable.CellText(td))
		})
		if len(cells) < 3 {
			return
		}

		horseNo := strings.TrimSpace(cells[1])
		if !isDigits(horseNo) {
			horseNo = ""
			for _, cell := range cells {
				if isDigits(strings.TrimSpace(cell)) {
					horseNo = strings.TrimSpace(cell)
					break
				}
			}
		}
		if horseNo == "" {
			return
		}

		row := record.New()
		row.Set(fieldHorseNumber, horseNo)
		row.Set(fieldHorseName, strings.TrimSpace(cells[len(cells)-2]))
		row.Set(fieldOdds, normalizeOdds(cells[len(cells)-1]))
		rows = append(rows, row)
	})
	return rows
}

func atoiDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
