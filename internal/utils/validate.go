package utils

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// Pure input validators. Every user-supplied value that reaches a
// data-modifying statement goes through one of these first; the injection
// boundary itself is parameter binding, these gate shape and range.

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	fieldNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// ValidateEmail reports whether s has local@domain.tld shape: ASCII local
// part, a dotted domain and a 2+ letter suffix.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateFieldName reports whether s is a safe identifier. It is used
// exclusively to allow-list which columns a partial update may target and
// never to validate user-facing data.
func ValidateFieldName(s string) bool {
	return fieldNamePattern.MatchString(s)
}

// NumericValue coerces a decoded JSON value into a float64. It accepts the
// numeric types the json package produces plus numeric strings, and reports
// false for everything else.
func NumericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

// ValidateNumeric attempts numeric coercion of v and checks the optional
// bounds. It returns false, never an error, on non-numeric or out-of-range
// input.
func ValidateNumeric(v any, min, max *float64) bool {
	f, ok := NumericValue(v)
	if !ok {
		return false
	}
	if min != nil && f < *min {
		return false
	}
	if max != nil && f > *max {
		return false
	}
	return true
}

// Float is a convenience for passing literal bounds to ValidateNumeric.
func Float(v float64) *float64 { return &v }
