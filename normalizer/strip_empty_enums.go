package normalizer

import "github.com/oasnormalize/rewriter/document"

// StripEmptyEnumBranches drops an explicit empty enum list ("enum: []")
// from every schema node: an empty enum carries no constraint a generator
// could act on and only differs from "no enum at all" by noise in the
// source document (spec.md §4.6 Stage 4 strip_empty_enum_branches).
func StripEmptyEnumBranches(doc *document.Document) {
	forEachSchemaNode(doc, func(s *document.Schema) {
		if s.Enum != nil && len(s.Enum) == 0 {
			s.Enum = nil
		}
	})
}
