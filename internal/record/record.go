// Package record provides an ordered field/value record for scraped table rows.
//
// Scraped tables carry meaning in their column order, and the exporters
// (JSON and CSV) must reproduce that order. A plain map loses it, so Record
// keeps fields in first-set order and marshals to a JSON object with the
// same ordering.
package record

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Record is an ordered mapping from column label to raw cell text.
type Record struct {
	keys   []string
	values map[string]string
}

// New creates an empty Record.
func New() *Record {
	return &Record{
		values: make(map[string]string),
	}
}

// Set stores a field value. Setting an existing key overwrites the value but
// keeps the key's original position.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key, or "" if the key is absent.
func (r *Record) Get(key string) string {
	return r.values[key]
}

// Lookup returns the value for key and whether it was present.
func (r *Record) Lookup(key string) (string, bool) {
	value, ok := r.values[key]
	return value, ok
}

// GetFuzzy returns the value for key, comparing stored keys with all spaces
// removed. Site tables sometimes pad header labels with whitespace
// (e.g. "馬 番"), so lookups by canonical label must tolerate that.
func (r *Record) GetFuzzy(key string) string {
	want := stripSpaces(key)
	for _, k := range r.keys {
		if stripSpaces(k) == want {
			return r.values[k]
		}
	}
	return ""
}

// Keys returns the field names in first-set order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the record as a JSON object preserving field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '　' {
			return -1
		}
		return r
	}, s)
}
