package htmltable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// labelTags is the fixed search order for a table's preceding label element.
var labelTags = []string{"h1", "h2", "h3", "h4", "dt", "p", "span", "div"}

// FindTableByKeywords returns the first table whose full text contains every
// keyword, or nil.
func FindTableByKeywords(doc *goquery.Document, keywords []string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		text := CellText(table)
		for _, keyword := range keywords {
			if !strings.Contains(text, keyword) {
				return true
			}
		}
		found = table
		return false
	})
	return found
}

// FindLargestTable returns the table with the most rows, or nil when the
// page has no tables.
func FindLargestTable(doc *goquery.Document) *goquery.Selection {
	var largest *goquery.Selection
	most := -1
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if n := table.Find("tr").Length(); n > most {
			most = n
			largest = table
		}
	})
	return largest
}

// ResolveTableLabel returns the table's human label: its caption text when
// present and non-empty, else the text of the nearest preceding element per
// tag in labelTags order, else "".
func ResolveTableLabel(doc *goquery.Document, table *goquery.Selection) string {
	caption := table.Find("caption").First()
	if caption.Length() > 0 {
		if text := CellText(caption); text != "" {
			return text
		}
	}

	ix := IndexNodes(doc)
	tablePos, ok := ix.position(table)
	if !ok {
		return ""
	}
	for _, tag := range labelTags {
		var nearest *goquery.Selection
		doc.Find(tag).Each(func(_ int, el *goquery.Selection) {
			pos, ok := ix.position(el)
			if !ok || pos >= tablePos {
				return
			}
			nearest = el
		})
		if nearest != nil {
			if text := CellText(nearest); text != "" {
				return text
			}
		}
	}
	return ""
}

// NodeIndex maps every node of a document to its depth-first position,
// enabling document-order comparisons across unrelated subtrees.
type NodeIndex map[*html.Node]int

// IndexNodes walks the document and assigns depth-first positions.
func IndexNodes(doc *goquery.Document) NodeIndex {
	ix := make(NodeIndex)
	pos := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		ix[n] = pos
		pos++
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}
	return ix
}

func (ix NodeIndex) position(s *goquery.Selection) (int, bool) {
	if len(s.Nodes) == 0 {
		return 0, false
	}
	pos, ok := ix[s.Nodes[0]]
	return pos, ok
}

// NextTableAfter returns the first table appearing after the element in
// document order, or nil.
func NextTableAfter(doc *goquery.Document, ix NodeIndex, el *goquery.Selection) *goquery.Selection {
	elPos, ok := ix.position(el)
	if !ok {
		return nil
	}
	var next *goquery.Selection
	nextPos := -1
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		pos, ok := ix.position(table)
		if !ok || pos <= elPos {
			return
		}
		if nextPos == -1 || pos < nextPos {
			nextPos = pos
			next = table
		}
	})
	return next
}
