// Package export writes scrape results to disk: the full result as JSON and
// the odds rows as one CSV file per bet type.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// SafeFileName maps a bet-type label to its ASCII CSV alias, or sanitizes
// unknown names for filesystem use.
func SafeFileName(name string) string {
	if bt, ok := bettype.FromLabel(name); ok {
		return bt.CSVAlias()
	}
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// WriteOddsCSVFiles writes one CSV file per bet type into dir and returns
// the written paths. Headers are the union of row keys in first-seen order;
// an empty row set produces an empty file.
func WriteOddsCSVFiles(odds map[string][]*record.Record, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating csv directory: %w", err)
	}

	var written []string
	for _, name := range orderedOddsKeys(odds) {
		path := filepath.Join(dir, SafeFileName(name)+".csv")
		if err := writeCSVFile(path, odds[name]); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// orderedOddsKeys returns the odds map keys with the known bet types first,
// in site order, then any extra keys sorted.
func orderedOddsKeys(odds map[string][]*record.Record) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, bt := range bettype.All() {
		if _, ok := odds[bt.Label()]; ok {
			keys = append(keys, bt.Label())
			seen[bt.Label()] = true
		}
	}
	var extra []string
	for name := range odds {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func writeCSVFile(path string, rows []*record.Record) error {
	if len(rows) == 0 {
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return fmt.Errorf("writing csv file: %w", err)
		}
		return nil
	}

	var header []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, key := range row.Keys() {
			if !seen[key] {
				seen[key] = true
				header = append(header, key)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		values := make([]string, len(header))
		for i, key := range header {
			values[i] = row.Get(key)
		}
		if err := w.Write(values); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv file: %w", err)
	}
	return nil
}

// WriteResultJSON writes a scrape result as indented JSON, creating parent
// directories as needed. indent is the number of spaces per level; zero or
// negative writes compact JSON.
func WriteResultJSON(result interface{}, path string, indent int) error {
	var (
		data []byte
		err  error
	)
	if indent > 0 {
		data, err = json.MarshalIndent(result, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
