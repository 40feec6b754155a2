package scraper

import "testing"

func TestNormalizeOdds(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,234.5", "1234.5"},
		{"  2.5 ", "2.5"},
		{"12.3 - 45.6", "12.3 - 45.6"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeOdds(tt.in); got != tt.want {
			t.Errorf("normalizeOdds(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseNumericOdds(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.5", 1.5, true},
		{"1,234.5", 1234.5, true},
		{" 42 ", 42, true},
		{"-", 0, false},
		{"--", 0, false},
		{"---.-", 0, false},
		{"", 0, false},
		{"1.5 - 2.3", 0, false}, // ranges are not a single number
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumericOdds(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseNumericOdds(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHasAvailableOdds(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1.5", true},
		{"1.5 - 2.3", true},
		{"2.1-3.4", true},
		{"1,234.5", true},
		{"-", false},
		{"--", false},
		{"---.-", false},
		{"", false},
		{"  ", false},
		{"取消", false},
		{"1.5 - ", false},
	}
	for _, tt := range tests {
		if got := hasAvailableOdds(tt.in); got != tt.want {
			t.Errorf("hasAvailableOdds(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestComboSortKey(t *testing.T) {
	key := comboSortKey("1-2-10")
	want := []int{1, 2, 10}
	if len(key) != len(want) {
		t.Fatalf("comboSortKey() = %v, want %v", key, want)
	}
	for i := range want {
		if key[i] != want[i] {
			t.Errorf("key[%d] = %d, want %d", i, key[i], want[i])
		}
	}
}

func TestLessComboKeys(t *testing.T) {
	tests := []struct {
		a, b []int
		want bool
	}{
		{[]int{1, 2}, []int{1, 10}, true},
		{[]int{1, 10}, []int{1, 2}, false},
		{[]int{1, 2}, []int{1, 2}, false},
		{[]int{1}, []int{1, 2}, true},
	}
	for _, tt := range tests {
		if got := lessComboKeys(tt.a, tt.b); got != tt.want {
			t.Errorf("lessComboKeys(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
