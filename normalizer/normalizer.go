// Package normalizer implements the schema normalizer (spec.md §4.4): a
// family of idempotent, depth-first passes over the schema graph that
// clean empty subtrees, dedupe composition branches, coerce invalid
// defaults, drop dead enum/default noise, inject a type for object-shaped
// untyped schemas, and make descriptions safe to re-emit as YAML.
package normalizer

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/refs"
)

// Clean recursively filters allOf/oneOf/anyOf, in every schema the
// document reaches, to keep only branches that are References or
// non-empty schemas (spec.md §4.4 Clean).
func Clean(doc *document.Document) {
	for slot := range document.WalkSchemaSlots(doc) {
		if isNestedLocation(slot.Location) {
			continue
		}
		cur := slot.Get()
		if cur == nil || cur.IsReference() || cur.Schema == nil {
			continue
		}
		cleanSchema(cur.Schema, make(map[*document.Schema]bool))
	}
}

func cleanSchema(s *document.Schema, visited map[*document.Schema]bool) {
	if s == nil || visited[s] {
		return
	}
	visited[s] = true

	s.AllOf = filterNonEmptyBranches(s.AllOf, visited)
	s.OneOf = filterNonEmptyBranches(s.OneOf, visited)
	s.AnyOf = filterNonEmptyBranches(s.AnyOf, visited)

	if s.Properties != nil {
		for _, v := range s.Properties.All() {
			if v != nil && !v.IsReference() && v.Schema != nil {
				cleanSchema(v.Schema, visited)
			}
		}
	}
	if s.Items != nil && !s.Items.IsReference() && s.Items.Schema != nil {
		cleanSchema(s.Items.Schema, visited)
	}
	if s.AdditionalProperties != nil && !s.AdditionalProperties.IsReference() && s.AdditionalProperties.Schema != nil {
		cleanSchema(s.AdditionalProperties.Schema, visited)
	}
}

func filterNonEmptyBranches(branches []*document.SchemaOrRef, visited map[*document.Schema]bool) []*document.SchemaOrRef {
	if len(branches) == 0 {
		return branches
	}
	kept := make([]*document.SchemaOrRef, 0, len(branches))
	for _, b := range branches {
		if b == nil {
			continue
		}
		if b.IsReference() {
			kept = append(kept, b)
			continue
		}
		if b.Schema == nil {
			continue
		}
		cleanSchema(b.Schema, visited)
		if !b.Schema.IsEmpty() {
			kept = append(kept, b)
		}
	}
	return kept
}

// DeduplicateCompositionBranches removes, from every allOf/oneOf/anyOf with
// at least 2 entries, later branches whose $ref target is identical to an
// earlier one; inline branches are never removed this way (spec.md §4.4).
func DeduplicateCompositionBranches(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		s.AllOf = dedupeBranches(s.AllOf)
		s.OneOf = dedupeBranches(s.OneOf)
		s.AnyOf = dedupeBranches(s.AnyOf)
	})
}

func dedupeBranches(branches []*document.SchemaOrRef) []*document.SchemaOrRef {
	if len(branches) < 2 {
		return branches
	}
	seen := make(map[refs.Reference]bool, len(branches))
	kept := make([]*document.SchemaOrRef, 0, len(branches))
	for _, b := range branches {
		if b == nil {
			continue
		}
		if b.IsReference() {
			if seen[*b.Ref] {
				continue
			}
			seen[*b.Ref] = true
		}
		kept = append(kept, b)
	}
	return kept
}

// FixInvalidDefaults coerces every schema's default to match its enum or
// type, per the rules in spec.md §4.4.
func FixInvalidDefaults(doc *document.Document) {
	forEachSchemaNode(doc, fixInvalidDefault)
}

func fixInvalidDefault(s *document.Schema) {
	if len(s.Enum) > 0 {
		if s.Default != nil {
			def := stringOfValue(s.Default)
			matched := false
			for _, e := range s.Enum {
				if stringOfValue(e) == def {
					s.Default = e
					matched = true
					break
				}
			}
			if !matched {
				s.Default = s.Enum[0]
			}
		}
	} else if s.Default != nil {
		switch s.Type {
		case "boolean":
			coerceBoolDefault(s)
		case "array":
			coerceArrayDefault(s)
		case "integer":
			coerceIntDefault(s)
		case "number":
			coerceNumberDefault(s)
		case "string":
			if s.Format == "date-time" {
				coerceDateTimeDefault(s)
			}
		}
	}

	// Guard: a string default on a typeless-but-composed, enum-less schema
	// is always cleared.
	if _, isString := s.Default.(string); isString && s.Type != "string" && len(s.Enum) == 0 && s.Type == "" {
		if len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
			s.Default = nil
		}
	}

	// Object schemas with a non-object default are cleared unconditionally.
	if s.Type == "object" && s.Default != nil {
		if _, ok := s.Default.(map[string]any); !ok {
			s.Default = nil
		}
	}
}

func coerceBoolDefault(s *document.Schema) {
	switch v := s.Default.(type) {
	case bool:
		return
	case string:
		switch v {
		case "true":
			s.Default = true
			return
		case "false":
			s.Default = false
			return
		}
	case float64:
		if v == 0 {
			s.Default = false
			return
		}
		if v == 1 {
			s.Default = true
			return
		}
	}
	s.Default = false
}

func coerceArrayDefault(s *document.Schema) {
	if _, ok := s.Default.([]any); ok {
		return
	}
	s.Default = []any{}
}

func coerceIntDefault(s *document.Schema) {
	switch v := s.Default.(type) {
	case float64:
		if isWholeNumber(v) {
			return
		}
	case int:
		return
	case int64:
		return
	case string:
		if f, err := parseFloatStrict(v); err == nil && isWholeNumber(f) {
			s.Default = f
			return
		}
	}
	s.Default = nil
}

func coerceNumberDefault(s *document.Schema) {
	switch v := s.Default.(type) {
	case float64, float32, int, int64:
		_ = v
		return
	case string:
		if f, err := parseFloatStrict(v); err == nil {
			s.Default = f
			return
		}
	}
	s.Default = nil
}

func coerceDateTimeDefault(s *document.Schema) {
	str, ok := s.Default.(string)
	if !ok || !isRFC3339RoundTrip(str) {
		s.Default = nil
	}
}

// DeepCleanSchema drops empty-string default/example and nulls out of
// enum lists (spec.md §4.4 Deep-clean schema).
func DeepCleanSchema(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		if str, ok := s.Default.(string); ok && str == "" {
			s.Default = nil
		}
		if str, ok := s.Example.(string); ok && str == "" {
			s.Example = nil
		}
		if len(s.Enum) > 0 {
			kept := make([]any, 0, len(s.Enum))
			for _, e := range s.Enum {
				if e != nil {
					kept = append(kept, e)
				}
			}
			s.Enum = kept
		}
	})
}

// CleanForSerialization strips disallowed control characters from every
// string-valued default/example/enum element/description/title in the
// schema graph (spec.md §4.4 Clean for serialization).
func CleanForSerialization(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		s.Description = stripControlChars(s.Description)
		s.Title = stripControlChars(s.Title)
		if str, ok := s.Default.(string); ok {
			s.Default = stripControlChars(str)
		}
		if str, ok := s.Example.(string); ok {
			s.Example = stripControlChars(str)
		}
		for i, e := range s.Enum {
			if str, ok := e.(string); ok {
				s.Enum[i] = stripControlChars(str)
			}
		}
	})
}

// InjectNullableType sets type=object on any untyped, enum-less schema
// that looks object-shaped: it has properties, an additionalProperties
// facet, or an inline composition branch that is itself clearly an object
// (spec.md §4.4 Inject type for nullable-looking schemas).
func InjectNullableType(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		if s.Type != "" || len(s.Enum) > 0 {
			return
		}
		if looksObjectShaped(s) {
			s.Type = "object"
		}
	})
}

func looksObjectShaped(s *document.Schema) bool {
	if s.Properties.Len() > 0 {
		return true
	}
	if s.AdditionalProperties != nil || s.AdditionalPropertiesAllowed != nil {
		return true
	}
	for _, list := range [][]*document.SchemaOrRef{s.AllOf, s.OneOf, s.AnyOf} {
		for _, b := range list {
			if b == nil || b.IsReference() || b.Schema == nil {
				continue
			}
			if b.Schema.Type == "object" || b.Schema.Properties.Len() > 0 {
				return true
			}
		}
	}
	return false
}
