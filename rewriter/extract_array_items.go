package rewriter

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/refs"
)

// ExtractInlineArrayItemSchemas promotes the inline object `items` schema
// of every array-typed component schema into its own component, named
// "<parent>_item" and disambiguated with a numeric suffix, replacing
// `items` with a reference to it (spec.md §4.5 Extract inline array-item
// schemas).
func ExtractInlineArrayItemSchemas(doc *document.Document) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}
	taken := namingTakenSet(doc)

	names := make([]string, 0, doc.Components.Schemas.Len())
	for name := range doc.Components.Schemas.All() {
		names = append(names, name)
	}

	for _, name := range names {
		slot, ok := doc.Components.Schemas.Get(name)
		if !ok || slot.IsReference() || slot.Schema == nil {
			continue
		}
		s := slot.Schema
		if s.Type != "array" || s.Items == nil || s.Items.IsReference() || s.Items.Schema == nil {
			continue
		}
		item := s.Items.Schema
		if item.Properties.Len() == 0 {
			continue
		}

		candidate := naming.Disambiguate(name+"_item", taken)
		taken.Add(candidate)
		doc.Components.Schemas.Set(candidate, document.Inline(item))
		s.Items = document.Reference(refs.NewComponent("schemas", candidate))
	}
}
