package scraper

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/keiba-odds/internal/record"
)

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test HTML: %v", err)
	}
	return doc
}

func TestExtractRaceID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://race.netkeiba.com/race/shutuba.html?race_id=202401010101", "202401010101"},
		{"https://race.netkeiba.com/race/shutuba.html?race_id=202401010101&rf=race_list", "202401010101"},
		{"https://race.netkeiba.com/race/shutuba.html", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractRaceID(tt.url); got != tt.want {
			t.Errorf("ExtractRaceID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestRaceDateFromID(t *testing.T) {
	tests := []struct {
		raceID string
		want   string
	}{
		{"202401010101", "2024-01-01"},
		{"2024123199", "2024-12-31"},
		{"20240101", "2024-01-01"},
		{"2024010", ""},       // fewer than 8 digits
		{"", ""},              // absent
		{"20241301xx01", ""},  // month 13 is not a date
		{"abc20240101", "2024-01-01"}, // non-digits ignored
	}
	for _, tt := range tests {
		if got := RaceDateFromID(tt.raceID); got != tt.want {
			t.Errorf("RaceDateFromID(%q) = %q, want %q", tt.raceID, got, tt.want)
		}
	}
}

func TestFutureRaceHint(t *testing.T) {
	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	if got := futureRaceHint(future); got == "" {
		t.Error("expected a hint for a future race date")
	} else if !strings.Contains(got, future) {
		t.Errorf("hint %q should embed the race date", got)
	}

	past := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if got := futureRaceHint(past); got != "" {
		t.Errorf("hint for past date = %q, want empty", got)
	}
	today := time.Now().Format("2006-01-02")
	if got := futureRaceHint(today); got != "" {
		t.Errorf("hint for today = %q, want empty", got)
	}
	if got := futureRaceHint(""); got != "" {
		t.Errorf("hint for absent date = %q, want empty", got)
	}
	if got := futureRaceHint("not-a-date"); got != "" {
		t.Errorf("hint for bad date = %q, want empty", got)
	}
}

func TestExtractRaceName(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "h1 wins",
			html: `<title>t</title><h1>第100回 テスト記念</h1><div class="RaceName">ignored</div>`,
			want: "第100回 テスト記念",
		},
		{
			name: "class fallback",
			html: `<title>t</title><div class="RaceName">テスト記念</div>`,
			want: "テスト記念",
		},
		{
			name: "title fallback",
			html: `<title>レースページ</title><h1></h1>`,
			want: "レースページ",
		},
		{
			name: "nothing",
			html: `<p>no name here</p>`,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractRaceName(docFromString(t, tt.html)); got != tt.want {
				t.Errorf("extractRaceName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscoverOddsLinks(t *testing.T) {
	doc := docFromString(t, `
		<a href="/odds/index.html?type=b4&race_id=1">馬連オッズ</a>
		<a href="https://example.com/other">unrelated</a>`)

	links := discoverOddsLinks(doc, "https://race.netkeiba.com/race/shutuba.html?race_id=1")
	got, ok := links["馬連"]
	if !ok {
		t.Fatal("expected a 馬連 link")
	}
	want := "https://race.netkeiba.com/odds/index.html?type=b4&race_id=1"
	if got != want {
		t.Errorf("link = %q, want %q", got, want)
	}
	if len(links) != 1 {
		t.Errorf("len(links) = %d, want 1", len(links))
	}
}

func entryRow(pairs ...string) *record.Record {
	r := record.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestHorseNumberFromEntry(t *testing.T) {
	tests := []struct {
		name string
		row  *record.Record
		want string
	}{
		{"labelled", entryRow("馬番", "07", "馬名", "A"), "7"},
		{"labelled with space", entryRow("馬 番", "12"), "12"},
		{"positional col_2", entryRow("col_1", "x", "col_2", "3"), "3"},
		{"positional col_1", entryRow("col_1", "4"), "4"},
		{"non-numeric", entryRow("馬番", "abc"), ""},
		{"empty", entryRow(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := horseNumberFromEntry(tt.row); got != tt.want {
				t.Errorf("horseNumberFromEntry() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHorseNameFromEntry(t *testing.T) {
	if got := horseNameFromEntry(entryRow("馬名", "Horse A")); got != "Horse A" {
		t.Errorf("horseNameFromEntry() = %q", got)
	}
	if got := horseNameFromEntry(entryRow("col_4", "Horse B")); got != "Horse B" {
		t.Errorf("horseNameFromEntry() = %q", got)
	}
	if got := horseNameFromEntry(entryRow("col_3", "Horse C")); got != "Horse C" {
		t.Errorf("horseNameFromEntry() = %q", got)
	}
	if got := horseNameFromEntry(entryRow()); got != "" {
		t.Errorf("horseNameFromEntry() = %q, want empty", got)
	}
}

func TestHorseNumbersFromEntries(t *testing.T) {
	entries := []*record.Record{
		entryRow("馬番", "2"),
		entryRow("馬番", "1"),
		entryRow("馬番", "2"), // duplicate
		entryRow("馬番", ""),
	}
	got := horseNumbersFromEntries(entries)
	want := []string{"2", "1"}
	if len(got) != len(want) {
		t.Fatalf("horseNumbersFromEntries() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %q, want %q (first-seen order)", i, got[i], want[i])
		}
	}
}
