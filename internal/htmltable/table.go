// Package htmltable turns generic markup tables into ordered records and
// locates the right table within a page using keyword and heading-adjacency
// heuristics.
package htmltable

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/keiba-odds/internal/record"
)

// ParseTable converts a table selection into an ordered sequence of records.
//
// Headers come from the first row's th cells, or from a thead row when the
// first row has none. Data rows zip cell texts with the headers when the
// counts match, otherwise fall back to positional col_N keys. Rows without
// td cells are skipped; empty values are kept.
func ParseTable(table *goquery.Selection) []*record.Record {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil
	}

	var headers []string
	rows.First().Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, CellText(th))
	})
	if len(headers) == 0 {
		thead := table.Find("thead tr").First()
		thead.Find("th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, CellText(th))
		})
	}

	var data []*record.Record
	rows.Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		values := make([]string, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			values = append(values, CellText(td))
		})

		row := record.New()
		if len(headers) == len(values) {
			for j, value := range values {
				row.Set(headers[j], value)
			}
		} else {
			for j, value := range values {
				row.Set(fmt.Sprintf("col_%d", j+1), value)
			}
		}
		data = append(data, row)
	})
	return data
}

// CellText returns the selection's text with whitespace runs collapsed to
// single spaces and surrounding whitespace trimmed.
func CellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
