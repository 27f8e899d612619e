package dsl

import (
	"fmt"
	"strconv"
	"strings"
)

// unit suffixes that generated text sometimes attaches to numeric
// property values; they carry no information and are stripped.
var unitSuffixes = []string{"dB", "db", "DB", "%", "cents", "Cents", "ms", "s", "Hz", "hz"}

// CleanValue converts the raw right-hand side of a SET_PROP into a
// typed value: bool, int64, float64, or string. Quoted strings lose
// their quotes; trailing unit suffixes on numbers are stripped.
func CleanValue(raw string) any {
	s := strings.TrimSpace(raw)

	for _, unit := range unitSuffixes {
		if trimmed, ok := strings.CutSuffix(s, unit); ok {
			trimmed = strings.TrimSpace(trimmed)
			// Only strip when what remains parses as a number,
			// so names like "Boss" or "Levels" survive intact.
			if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
				s = trimmed
				break
			}
		}
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// FormatValue renders a property value in canonical DSL form: booleans
// as True/False, numbers bare, everything else quoted.
func FormatValue(v any) string {
	switch val := v.(type) {
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}
