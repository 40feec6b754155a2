package scraper

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/ymatsuda/keiba-odds/internal/bettype"
	"github.com/ymatsuda/keiba-odds/internal/logger"
	"github.com/ymatsuda/keiba-odds/internal/record"
)

// apiPayload is the JRA odds endpoint envelope. Odds values stay raw so a
// single malformed entry is skipped instead of failing the whole decode.
type apiPayload struct {
	Data   *apiData    `json:"data"`
	Reason interface{} `json:"reason"`
	Status interface{} `json:"status"`
}

type apiData struct {
	Odds map[string]map[string]json.RawMessage `json:"odds"`
}

// typedOdds returns the payload's odds map for an API type code, or nil.
func (p *apiPayload) typedOdds(apiCode string) map[string]json.RawMessage {
	if p == nil || p.Data == nil {
		return nil
	}
	return p.Data.Odds[apiCode]
}

// fetchAPIPayload calls the numeric-odds JSON endpoint for one bet type,
// sending the pool page URL as referer.
func (s *Scraper) fetchAPIPayload(raceID, apiCode, referer string) (*apiPayload, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("pid", "api_get_jra_odds")
	params.Set("input", "UTF-8")
	params.Set("output", "json")
	params.Set("race_id", raceID)
	params.Set("type", apiCode)
	params.Set("action", "init")
	params.Set("sort", "odds")
	params.Set("compress", "0")

	req, err := http.NewRequest("GET", s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", s.acceptLanguage)
	req.Header.Set("Referer", referer)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching odds API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	payload, err := decodeAPIPayload(body)
	if err != nil {
		return nil, err
	}

	logger.IncrCounter("scraper.api_fetch")
	logger.RecordTiming("scraper.api_fetch", time.Since(start))

	return payload, nil
}

// decodeAPIPayload unmarshals the endpoint response, repairing loosely
// formed JSON and retrying once when the strict decode fails.
func decodeAPIPayload(body []byte) (*apiPayload, error) {
	var payload apiPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(body))
		if repairErr != nil {
			return nil, fmt.Errorf("parsing odds payload: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			return nil, fmt.Errorf("parsing repaired odds payload: %w", err)
		}
	}
	return &payload, nil
}

// extractAPIRows converts a typed API payload into odds rows for one bet
// type. Single-horse pools key on horse numbers; combination pools key on
// fixed-width concatenated horse-number chunks. Rows with wrong-arity or
// non-numeric keys are discarded whole.
func extractAPIRows(payload *apiPayload, bt bettype.BetType, entries []*record.Record) []*record.Record {
	typed := payload.typedOdds(bt.APICode())
	if len(typed) == 0 {
		return nil
	}

	keys := make([]string, 0, len(typed))
	for key := range typed {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if !bt.IsCombination() {
		return extractAPISingleRows(typed, keys, bt, entries)
	}
	return extractAPIComboRows(typed, keys, bt)
}

func extractAPISingleRows(typed map[string]json.RawMessage, keys []string, bt bettype.BetType, entries []*record.Record) []*record.Record {
	names := horseNamesByNumber(entries)

	var rows []*record.Record
	for _, key := range keys {
		values := decodeAPIValues(typed[key])
		if len(values) == 0 {
			continue
		}
		horseNo := key
		if isDigits(horseNo) {
			horseNo = stripLeadingZeros(horseNo)
		}
		odds := values[0]
		// Place odds carry a low-high pair in the first two elements.
		if bt == bettype.Place && len(values) >= 2 && values[1] != "" && values[1] != "0" {
			odds = values[0] + " - " + values[1]
		}
		row := record.New()
		row.Set(fieldHorseNumber, horseNo)
		row.Set(fieldHorseName, names[horseNo])
		row.Set(fieldOdds, normalizeOdds(odds))
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return horseNumberSortKey(rows[i]) < horseNumberSortKey(rows[j])
	})
	return rows
}

func extractAPIComboRows(typed map[string]json.RawMessage, keys []string, bt bettype.BetType) []*record.Record {
	size := bt.ComboSize()

	var rows []*record.Record
	for _, key := range keys {
		values := decodeAPIValues(typed[key])
		if len(values) == 0 {
			continue
		}
		combo, ok := decodeComboKey(key, size)
		if !ok {
			continue
		}
		odds := values[0]
		// Quinella-place odds carry a low-high pair.
		if bt == bettype.QuinellaPlace && len(values) >= 2 && values[1] != "" && values[1] != "0" {
			odds = values[0] + " - " + values[1]
		}
		row := record.New()
		row.Set(fieldCombination, combo)
		row.Set(fieldOdds, normalizeOdds(odds))
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return lessComboKeys(comboSortKey(rows[i].Get(fieldCombination)), comboSortKey(rows[j].Get(fieldCombination)))
	})
	return rows
}

// decodeComboKey splits a concatenated 2-digit-per-horse key into its
// combination string. Keys of the wrong arity or with non-numeric chunks
// report false.
func decodeComboKey(key string, size int) (string, bool) {
	var chunks []string
	for i := 0; i < len(key); i += 2 {
		end := i + 2
		if end > len(key) {
			end = len(key)
		}
		chunks = append(chunks, key[i:end])
	}
	if len(chunks) != size {
		return "", false
	}
	parts := make([]string, 0, size)
	for _, chunk := range chunks {
		if !isDigits(chunk) {
			return "", false
		}
		parts = append(parts, stripLeadingZeros(chunk))
	}
	return strings.Join(parts, "-"), true
}

// decodeAPIValues turns a raw odds value list into trimmed strings. Values
// that are not a list yield nil, dropping just that row.
func decodeAPIValues(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var values []interface{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, apiScalarString(v))
	}
	return out
}

// apiScalarString renders an API scalar as trimmed text. Zero and empty
// values render as "" so they read as absent.
func apiScalarString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// horseNumberSortKey orders rows by numeric horse number, pushing
// non-numeric rows to the end.
func horseNumberSortKey(row *record.Record) int {
	no := row.Get(fieldHorseNumber)
	if !isDigits(no) {
		return 9999
	}
	n, _ := strconv.Atoi(no)
	return n
}

// fetchOddsReason re-queries the JSON endpoint to surface an API-provided
// reason when odds came back empty. Every failure is swallowed; absence of
// a reason is a normal outcome.
func (s *Scraper) fetchOddsReason(sourceURL string, bt bettype.BetType) string {
	raceID := ExtractRaceID(sourceURL)
	if raceID == "" {
		return ""
	}
	payload, err := s.fetchAPIPayload(raceID, bt.APICode(), sourceURL)
	if err != nil {
		return ""
	}
	if len(payload.typedOdds(bt.APICode())) > 0 {
		// The endpoint has odds after all; nothing to explain.
		return ""
	}
	if reason := diagnosticString(payload.Reason); reason != "" {
		return reason
	}
	return diagnosticString(payload.Status)
}

// diagnosticString renders a reason/status scalar, treating empty and zero
// values as absent.
func diagnosticString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
