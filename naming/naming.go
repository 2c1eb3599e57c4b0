// Package naming provides the pure string-transformation rules used by the
// identifier pass (spec.md §4.3): sanitizing raw strings into component
// names and operation IDs, validating identifiers against the generator
// rule, and deriving a readable suffix from a media type.
package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Sanitize replaces every character not in [A-Za-z0-9_] with '_'.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isAlnumOrUnderscore(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isAlnumOrUnderscore(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ValidateComponent sanitizes s into a usable component name: Sanitize(s),
// then prepend "C" if the result doesn't start with a letter, and return
// "UnnamedComponent" for empty input.
func ValidateComponent(s string) string {
	if s == "" {
		return "UnnamedComponent"
	}
	san := Sanitize(s)
	if san == "" {
		return "UnnamedComponent"
	}
	if r := rune(san[0]); !unicode.IsLetter(r) {
		return "C" + san
	}
	return san
}

// NormalizeOpID strips "(" and ")", replaces runs of non-alphanumerics with
// "-", collapses repeated dashes, trims leading/trailing dashes, prepends
// "op-" if the result doesn't start with a letter, and returns "unnamed"
// for empty input.
func NormalizeOpID(s string) string {
	s = strings.ReplaceAll(s, "(", "")
	s = strings.ReplaceAll(s, ")", "")

	var b strings.Builder
	b.Grow(len(s))
	lastWasDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastWasDash = false
			continue
		}
		if !lastWasDash {
			b.WriteByte('-')
			lastWasDash = true
		}
	}

	trimmed := strings.Trim(b.String(), "-")
	if trimmed == "" {
		return "unnamed"
	}
	if r := rune(trimmed[0]); !unicode.IsLetter(r) {
		return "op-" + trimmed
	}
	return trimmed
}

// IsValidIdentifier reports whether s is non-empty and every character is
// in [A-Za-z0-9_\-.].
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

// IsStrictIdentifier reports whether s satisfies the stricter rule applied when a name targets
// a code generator: ^[A-Za-z][A-Za-z0-9_]*$.
func IsStrictIdentifier(s string) bool {
	if s == "" {
		return false
	}
	first := rune(s[0])
	if !unicode.IsLetter(first) {
		return false
	}
	for _, r := range s[1:] {
		if !isAlnumOrUnderscore(r) {
			return false
		}
	}
	return true
}

// MediaTypeSuffix turns a content-type like "application/json" into a
// PascalCase-ish suffix ("Json") suitable for composing with an operation
// ID when extracting an inline request/response schema (spec.md §4.5).
// Parameters and a leading "x-" vendor marker are dropped; each remaining
// slash/plus/hyphen-delimited segment is title-cased and concatenated.
func MediaTypeSuffix(contentType string) string {
	ct := contentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	ct = strings.TrimPrefix(ct, "application/")
	ct = strings.TrimPrefix(ct, "x-")

	var parts []string
	for _, seg := range strings.FieldsFunc(ct, func(r rune) bool {
		return r == '/' || r == '+' || r == '-' || r == '.'
	}) {
		if seg == "" {
			continue
		}
		parts = append(parts, titleCaser.String(seg))
	}
	if len(parts) == 0 {
		return "Body"
	}
	return strings.Join(parts, "")
}

// CaseInsensitiveSet is a lookup set used by the disambiguation routines
// (rename_invalid_component_schemas, ensure_unique_operation_ids,
// resolve_schema_operation_name_collisions), all of which compare
// case-insensitively.
type CaseInsensitiveSet map[string]struct{}

// NewCaseInsensitiveSet builds a set from the given names.
func NewCaseInsensitiveSet(names ...string) CaseInsensitiveSet {
	s := make(CaseInsensitiveSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

func (s CaseInsensitiveSet) Add(name string) { s[strings.ToLower(name)] = struct{}{} }

func (s CaseInsensitiveSet) Has(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Disambiguate returns candidate unchanged if it isn't already in taken;
// otherwise appends "_1", "_2", ... until it finds a name not in taken.
// Does not add the result to taken — callers must do that themselves once
// the name is committed.
func Disambiguate(candidate string, taken CaseInsensitiveSet) string {
	if !taken.Has(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		next := candidate + "_" + strconv.Itoa(i)
		if !taken.Has(next) {
			return next
		}
	}
}
