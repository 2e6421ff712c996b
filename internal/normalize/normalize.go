// Package normalize validates and converts raw AI-reported values into typed,
// bounded domain values. Every rule takes a dynamically-typed value as decoded
// from JSON and returns a pointer that is nil when the value is missing,
// malformed, or out of range. Rules never return errors: a bad value is
// "unknown", not a failure.
package normalize

import (
	"math"
	"strings"
)

// numeric extracts a float64 from a decoded JSON value. Only values that
// arrive as numbers from the decoder qualify; numeric strings do not.
func numeric(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// IntInRange returns floor(value) if value is numeric and the floored result
// falls within [min, max], nil otherwise.
func IntInRange(value any, min, max int) *int {
	f, ok := numeric(value)
	if !ok {
		return nil
	}
	n := int(math.Floor(f))
	if n < min || n > max {
		return nil
	}
	return &n
}

// PositiveInt returns floor(value) if value is numeric and floors to a
// positive integer, nil otherwise.
func PositiveInt(value any) *int {
	f, ok := numeric(value)
	if !ok {
		return nil
	}
	n := int(math.Floor(f))
	if n <= 0 {
		return nil
	}
	return &n
}

// DecimalInRange returns value rounded to the given number of decimal places
// if it is numeric and within [min, max], nil otherwise.
func DecimalInRange(value any, min, max float64, decimals int) *float64 {
	f, ok := numeric(value)
	if !ok {
		return nil
	}
	if f < min || f > max {
		return nil
	}
	pow := math.Pow(10, float64(decimals))
	rounded := math.Round(f*pow) / pow
	return &rounded
}

// TrimmedString returns the trimmed string if value is a string that is
// non-empty after trimming, nil otherwise.
func TrimmedString(value any) *string {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringList filters a decoded list down to its non-empty trimmed string
// elements, preserving order. Returns nil if value is not a list or no
// elements survive the filter.
func StringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		// An already-normalized []string passes through unchanged, so the
		// rule stays idempotent regardless of where the value came from.
		if ss, isStrings := value.([]string); isStrings {
			items = make([]any, len(ss))
			for i, s := range ss {
				items[i] = s
			}
		} else {
			return nil
		}
	}

	var out []string
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
