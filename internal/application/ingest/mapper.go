// Package ingest resolves free-form spreadsheet columns and normalizes raw
// cell values into typed canonical values. Every function here is total:
// unreadable input yields nil or the documented fallback, never an error.
package ingest

import (
	"sort"
	"strings"
	"unicode"
)

// RawRow is one input record keyed by whatever header names the file used.
type RawRow map[string]string

// Blank reports whether every cell is empty or whitespace.
func (r RawRow) Blank() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// NormalizeKey lowercases s and drops everything that is not a letter or digit,
// so "Vendor Phone", "vendor_phone" and "VENDOR-PHONE" compare equal.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Index is a RawRow with its keys normalized once for repeated lookups.
type Index struct {
	values map[string][]string
}

func NewIndex(row RawRow) Index {
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[string][]string, len(row))
	for _, key := range keys {
		normalized := NormalizeKey(key)
		values[normalized] = append(values[normalized], row[key])
	}
	return Index{values: values}
}

// Resolve returns the first non-empty value whose column matches one of the
// candidates, trying candidates in order of preference.
func (ix Index) Resolve(candidates []string) (string, bool) {
	for _, candidate := range candidates {
		for _, value := range ix.values[NormalizeKey(candidate)] {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

func Resolve(row RawRow, candidates []string) (string, bool) {
	return NewIndex(row).Resolve(candidates)
}
