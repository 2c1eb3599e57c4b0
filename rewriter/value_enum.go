package rewriter

import (
	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/orderedmap"
	"github.com/oasnormalize/rewriter/refs"
)

// FixInlineValueEnums extracts the inline enum of a component's (or its
// single-override allOf[1]'s) "value" property into a new "<key>_value"
// component, replacing the property with a reference to it (spec.md §4.5
// Fix inline value enums).
func FixInlineValueEnums(doc *document.Document) {
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

		var props *orderedmap.Map[string, *document.SchemaOrRef]
		switch {
		case s.Properties != nil && s.Properties.Has("value"):
			props = s.Properties
		case len(s.AllOf) == 2 && !s.AllOf[1].IsReference() && s.AllOf[1].Schema != nil && s.AllOf[1].Schema.Properties.Has("value"):
			props = s.AllOf[1].Schema.Properties
		default:
			continue
		}

		val, _ := props.Get("value")
		if val == nil || val.IsReference() || val.Schema == nil || len(val.Schema.Enum) == 0 {
			continue
		}

		newName := naming.Disambiguate(name+"_value", taken)
		taken.Add(newName)
		doc.Components.Schemas.Set(newName, document.Inline(&document.Schema{
			Type: val.Schema.Type,
			Enum: val.Schema.Enum,
		}))
		props.Set("value", document.Reference(refs.NewComponent("schemas", newName)))
	}
}
