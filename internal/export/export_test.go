package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ymatsuda/keiba-odds/internal/record"
)

func row(pairs ...string) *record.Record {
	r := record.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"単勝", "win"},
		{"複勝", "place"},
		{"枠連", "bracket_quinella"},
		{"馬連", "quinella"},
		{"ワイド", "quinella_place"},
		{"馬単", "exacta"},
		{"三連複", "trio"},
		{"三連単", "trifecta"},
		{"Some/Odd Name", "some_odd_name"},
	}
	for _, tt := range tests {
		if got := SafeFileName(tt.name); got != tt.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriteOddsCSVFiles(t *testing.T) {
	dir := t.TempDir()
	odds := map[string][]*record.Record{
		"単勝": {
			row("馬番", "1", "オッズ", "2.5"),
			row("馬番", "2", "オッズ", "10.1", "備考", "note"),
		},
		"三連単": {},
	}

	written, err := WriteOddsCSVFiles(odds, dir)
	if err != nil {
		t.Fatalf("WriteOddsCSVFiles() error = %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("len(written) = %d, want 2", len(written))
	}

	data, err := os.ReadFile(filepath.Join(dir, "win.csv"))
	if err != nil {
		t.Fatalf("reading win.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("win.csv lines = %d, want 3", len(lines))
	}
	// Header is the union of row keys in first-seen order.
	if lines[0] != "馬番,オッズ,備考" {
		t.Errorf("header = %q, want %q", lines[0], "馬番,オッズ,備考")
	}
	if lines[1] != "1,2.5," {
		t.Errorf("row 1 = %q, want %q", lines[1], "1,2.5,")
	}

	empty, err := os.ReadFile(filepath.Join(dir, "trifecta.csv"))
	if err != nil {
		t.Fatalf("reading trifecta.csv: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("trifecta.csv should be empty, got %d bytes", len(empty))
	}
}

func TestWriteResultJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "race_data.json")
	result := map[string]string{"race_id": "202401010101"}

	if err := WriteResultJSON(result, path, 2); err != nil {
		t.Fatalf("WriteResultJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["race_id"] != "202401010101" {
		t.Errorf("race_id = %q", decoded["race_id"])
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("output should be indented")
	}
}
