package rewriter

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/refengine"
)

// isTyped reports whether a property slot counts as "typed" for the
// shadowing check: a reference, or an inline schema with a type,
// composition, items, or enum (spec.md §4.5 Remove shadowing untyped
// properties defines "untyped" as the negation of this).
func isTyped(slot *document.SchemaOrRef) bool {
	if slot == nil {
		return false
	}
	if slot.IsReference() {
		return true
	}
	if slot.Schema == nil {
		return true
	}
	s := slot.Schema
	if s.Type != "" {
		return true
	}
	if len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		return true
	}
	if s.Items != nil {
		return true
	}
	if len(s.Enum) > 0 {
		return true
	}
	return false
}

// RemoveShadowingUntypedProperties deletes a property from the $ref
// fragment of an allOf when an inline fragment in the same allOf
// redeclares that property with a real type and the base only declared it
// untyped (spec.md §4.5 Remove shadowing untyped properties).
func RemoveShadowingUntypedProperties(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		if len(s.AllOf) < 2 {
			return
		}
		var base *document.Schema
		var override *document.Schema
		for _, b := range s.AllOf {
			if b == nil {
				continue
			}
			if b.IsReference() && base == nil {
				if target, ok := refengine.Resolve(doc, *b.Ref); ok {
					base = target
				}
				continue
			}
			if !b.IsReference() && b.Schema != nil && b.Schema.Properties.Len() > 0 && override == nil {
				override = b.Schema
			}
		}
		if base == nil || override == nil || base.Properties == nil {
			return
		}
		for name, overrideProp := range override.Properties.All() {
			if !isTyped(overrideProp) {
				continue
			}
			baseProp, ok := base.Properties.Get(name)
			if !ok || isTyped(baseProp) {
				continue
			}
			base.Properties.Delete(name)
		}
	})
}

// RemoveRedundantDerivedValueOverride keeps only the first allOf fragment
// that defines a well-defined "value" property, deleting that property
// (and dropping it from required) from every later fragment that also
// defines it (spec.md §4.5 Remove redundant derived value override).
func RemoveRedundantDerivedValueOverride(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		if len(s.AllOf) < 2 {
			return
		}
		foundFirst := false
		for _, b := range s.AllOf {
			if b == nil || b.IsReference() || b.Schema == nil || b.Schema.Properties == nil {
				continue
			}
			val, ok := b.Schema.Properties.Get("value")
			if !ok {
				continue
			}
			if !foundFirst {
				if isWellDefined(val) {
					foundFirst = true
				}
				continue
			}
			b.Schema.Properties.Delete("value")
			b.Schema.Required = removeFromSlice(b.Schema.Required, "value")
		}
	})
}

func isWellDefined(slot *document.SchemaOrRef) bool {
	return slot != nil && (slot.IsReference() || (slot.Schema != nil && !slot.Schema.IsEmpty()))
}
