package rewriter

import "github.com/oasnormalize/rewriter/document"

// InlinePrimitiveComponents removes every component schema that is a pure
// primitive and replaces every reference to it, anywhere in the document,
// with an inline copy carrying its formatting facets (spec.md §4.5 Inline
// primitive components).
func InlinePrimitiveComponents(doc *document.Document) {
	if doc.Components == nil || doc.Components.Schemas == nil {
		return
	}

	prototypes := make(map[string]*document.Schema)
	for name, slot := range doc.Components.Schemas.All() {
		if slot.IsReference() || slot.Schema == nil {
			continue
		}
		if slot.Schema.IsPrimitive() {
			prototypes[name] = slot.Schema
		}
	}
	if len(prototypes) == 0 {
		return
	}

	for slot := range document.WalkSchemaSlots(doc) {
		cur := slot.Get()
		if cur == nil || !cur.IsReference() {
			continue
		}
		name, ok := cur.Ref.ComponentName("schemas")
		if !ok {
			continue
		}
		proto, found := prototypes[name]
		if !found {
			continue
		}
		slot.Set(document.Inline(clonePrimitive(proto)))
	}

	for name := range prototypes {
		doc.Components.Schemas.Delete(name)
	}
}

func clonePrimitive(s *document.Schema) *document.Schema {
	return &document.Schema{
		Type:        s.Type,
		Format:      s.Format,
		Description: s.Description,
		MinLength:   s.MinLength,
		MaxLength:   s.MaxLength,
		Pattern:     s.Pattern,
		Minimum:     s.Minimum,
		Maximum:     s.Maximum,
	}
}
