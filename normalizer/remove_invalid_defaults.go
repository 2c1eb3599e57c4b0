package normalizer

import "github.com/oasnormalize/rewriter/document"

// RemoveInvalidDefaults is the Stage 5 safety net run after every
// structural rewrite has settled: it clears (never coerces) a default
// whose Go kind no longer matches the schema's final type, catching
// defaults left stale by a type change earlier passes made (spec.md §4.6
// Stage 5 remove_invalid_defaults). FixInvalidDefaults, by contrast, runs
// earlier and tries to coerce a default into shape before giving up.
func RemoveInvalidDefaults(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		if s.Default == nil {
			return
		}
		if !defaultMatchesType(s.Default, s.Type) {
			s.Default = nil
		}
	})
}

func defaultMatchesType(def any, schemaType string) bool {
	switch schemaType {
	case "":
		return true
	case "string":
		_, ok := def.(string)
		return ok
	case "boolean":
		_, ok := def.(bool)
		return ok
	case "integer", "number":
		_, ok := def.(float64)
		return ok
	case "array":
		_, ok := def.([]any)
		return ok
	case "object":
		_, ok := def.(map[string]any)
		return ok
	default:
		return true
	}
}
