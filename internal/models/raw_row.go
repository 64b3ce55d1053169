package models

import (
	"strconv"
	"strings"
)

// RawRow is one spreadsheet data row keyed by header string. Cells hold the
// scalar the reader produced (string, float64, int, or nil for blanks).
// Accessors take an ordered key chain so the fallback policy for each field
// lives with the caller instead of being scattered across lookups.
type RawRow map[string]any

// Has reports whether the column exists in the row at all, regardless of
// whether its cell is blank.
func (r RawRow) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Value returns the raw cell for the first key present in the row.
func (r RawRow) Value(keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// String renders the first populated cell in the chain as a trimmed string.
// Absent or blank cells yield the fallback.
func (r RawRow) String(fallback string, keys ...string) string {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(cellString(v))
		if s != "" {
			return s
		}
	}
	return fallback
}

// Float parses the first populated cell in the chain as a number. failed is
// true when a cell was present but not parseable; the fallback is substituted
// both for missing and unparseable values.
func (r RawRow) Float(fallback float64, keys ...string) (value float64, failed bool) {
	for _, key := range keys {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, false
		case float32:
			return float64(n), false
		case int:
			return float64(n), false
		case int64:
			return float64(n), false
		}
		s := strings.TrimSpace(cellString(v))
		if s == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fallback, true
		}
		return parsed, false
	}
	return fallback, false
}

// Int parses the first populated cell in the chain as an integer, accepting
// numeric cells and decimal strings. Semantics match Float.
func (r RawRow) Int(fallback int, keys ...string) (value int, failed bool) {
	f, failed := r.Float(float64(fallback), keys...)
	if failed {
		return fallback, true
	}
	return int(f), false
}

func cellString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
