package normalizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// stringOfValue formats v the way fix-invalid-defaults compares a default
// against an enum element: strings as-is, numbers with invariant
// (locale-free) formatting, everything else via its natural text form.
func stringOfValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

// isWholeNumber reports whether f has no fractional part, i.e. is a valid
// JSON representation of an integer.
func isWholeNumber(f float64) bool {
	return f == float64(int64(f))
}

// parseFloatStrict parses s as a base-10 float using invariant (locale-
// free) formatting rules, for coercing a string default into a numeric one.
func parseFloatStrict(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// stripControlChars removes every Unicode control character from s except
// \n, \r, \t, as clean-for-serialization requires.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// isRFC3339RoundTrip reports whether s parses as RFC 3339 and formats back
// to exactly the same string, the round-trip test fix-invalid-defaults
// uses for date-time defaults.
func isRFC3339RoundTrip(s string) bool {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return false
	}
	return t.Format(time.RFC3339) == s
}

// needsYAMLQuoting reports whether s would be misread as a YAML mapping
// (or similar) if emitted unquoted: contains ": ", or starts/ends with ":".
func needsYAMLQuoting(s string) bool {
	if s == "" {
		return false
	}
	if strings.Contains(s, ": ") {
		return true
	}
	if strings.HasPrefix(s, ":") || strings.HasSuffix(s, ":") {
		return true
	}
	return false
}

// isAlreadyQuoted reports whether s is already wrapped in double quotes.
func isAlreadyQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// quoteYAMLUnsafe wraps s in double quotes, escaping internal double
// quotes, if it needs it and isn't already quoted.
func quoteYAMLUnsafe(s string) string {
	if !needsYAMLQuoting(s) || isAlreadyQuoted(s) {
		return s
	}
	escaped := strings.ReplaceAll(s, `"`, `\"`)
	return `"` + escaped + `"`
}
