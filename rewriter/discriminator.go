package rewriter

import (
	"fmt"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refengine"
	"github.com/oasnormalize/rewriter/refs"
	"github.com/oasnormalize/rewriter/rewritelog"
)

func isEnumOnly(s *document.Schema) bool {
	return s != nil && len(s.Enum) > 0 && s.Properties.Len() == 0 &&
		len(s.AllOf) == 0 && len(s.OneOf) == 0 && len(s.AnyOf) == 0 && s.Items == nil
}

// PromoteEnumBranchesUnderDiscriminator wraps every oneOf/anyOf branch of
// a discriminated schema that is an enum-only component reference in a new
// "<branch>_setting" object component carrying a "value" reference back to
// the enum and the discriminator's property as a plain string, then
// repoints the branch list and discriminator mapping at the wrapper
// (spec.md §4.5 Promote enum branches under a discriminator). Inline
// enum-only branches are left unchanged and logged at warn: only branches
// that reference a component are wrapped, and no pass extracts inline
// oneOf/anyOf branches into components.
func PromoteEnumBranchesUnderDiscriminator(doc *document.Document, log rewritelog.Logger) {
	if log == nil {
		log = rewritelog.NopLogger{}
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}
	taken := namingTakenSet(doc)

	forEachSchemaNode(doc, func(s *document.Schema) {
		if s.Discriminator == nil {
			return
		}
		s.OneOf = promoteEnumBranches(doc, s, s.OneOf, taken, log)
		s.AnyOf = promoteEnumBranches(doc, s, s.AnyOf, taken, log)
	})
}

func promoteEnumBranches(doc *document.Document, parent *document.Schema, list []*document.SchemaOrRef, taken naming.CaseInsensitiveSet, log rewritelog.Logger) []*document.SchemaOrRef {
	for i, b := range list {
		if b == nil {
			continue
		}
		if !b.IsReference() {
			if isEnumOnly(b.Schema) {
				log.Warn("inline enum branch under discriminator left unchanged", "index", i)
			}
			continue
		}
		branchName, ok := b.Ref.ComponentName("schemas")
		if !ok {
			continue
		}
		target, ok := refengine.Resolve(doc, *b.Ref)
		if !ok || !isEnumOnly(target) {
			continue
		}

		wrapperName := naming.Disambiguate(branchName+"_setting", taken)
		taken.Add(wrapperName)

		props := orderedmap.New[string, *document.SchemaOrRef]()
		props.Set("value", document.Reference(refs.NewComponent("schemas", branchName)))
		props.Set(parent.Discriminator.PropertyName, document.Inline(&document.Schema{Type: "string"}))
		wrapper := &document.Schema{Type: "object", Properties: props, Required: []string{"value"}}
		doc.Components.Schemas.Set(wrapperName, document.Inline(wrapper))

		oldRef := refs.NewComponent("schemas", branchName)
		newRef := refs.NewComponent("schemas", wrapperName)
		list[i] = document.Reference(newRef)

		if parent.Discriminator.Mapping != nil {
			for key, mappedRef := range parent.Discriminator.Mapping.All() {
				if mappedRef == oldRef {
					parent.Discriminator.Mapping.Set(key, newRef)
				}
			}
		}
		log.Debug("promoted enum branch under discriminator", "branch", branchName, "wrapper", wrapperName)
	}
	return list
}

// EnsureDiscriminatorForPolymorphicSchemas synthesizes a discriminator for
// every polymorphic schema (oneOf/anyOf with >= 2 branches) that doesn't
// already have one: propertyName "type", an injected required string
// "type" property, and a mapping entry per $ref branch keyed by the
// branch's own type-enum value, its component ID, or a synthesized
// "branch_<n>" fallback; inline branches get no mapping entry
// (spec.md §4.5 Ensure discriminator for oneOf/anyOf).
func EnsureDiscriminatorForPolymorphicSchemas(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		ensureDiscriminator(doc, s, s.OneOf)
		ensureDiscriminator(doc, s, s.AnyOf)
	})
}

func ensureDiscriminator(doc *document.Document, s *document.Schema, branches []*document.SchemaOrRef) {
	if len(branches) < 2 || s.Discriminator != nil {
		return
	}

	mapping := orderedmap.New[string, refs.Reference]()
	for i, b := range branches {
		if b == nil || !b.IsReference() {
			continue
		}
		mapping.Set(branchMappingKey(doc, b, i), *b.Ref)
	}

	s.Discriminator = &document.Discriminator{PropertyName: "type", Mapping: mapping}
	if s.Properties == nil {
		s.Properties = orderedmap.New[string, *document.SchemaOrRef]()
	}
	if !s.Properties.Has("type") {
		s.Properties.Set("type", document.Inline(&document.Schema{Type: "string"}))
	}
	if !containsString(s.Required, "type") {
		s.Required = append(s.Required, "type")
	}
}

func branchMappingKey(doc *document.Document, b *document.SchemaOrRef, index int) string {
	if target, ok := refengine.Resolve(doc, *b.Ref); ok {
		if typeProp, ok := target.Properties.Get("type"); ok && !typeProp.IsReference() && typeProp.Schema != nil && len(typeProp.Schema.Enum) == 1 {
			if str, ok := typeProp.Schema.Enum[0].(string); ok {
				return str
			}
		}
	}
	if name, ok := b.Ref.ComponentName("schemas"); ok {
		return name
	}
	return fmt.Sprintf("branch_%d", index+1)
}
