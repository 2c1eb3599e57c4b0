package normalizer

import (
	"strings"

	"github.com/oasnormalize/rewriter/document"
)

// isNestedLocation reports whether loc is a schema slot that WalkSchemaSlots
// reaches by recursing into another schema (property, item, additional
// property, or composition branch) rather than a document-level entry
// point. Passes that walk a schema tree themselves visit only the
// non-nested (root) slots and recurse from there, so each schema node is
// processed exactly once regardless of how many distinct slots the walker
// would otherwise report for it.
func isNestedLocation(loc string) bool {
	for _, marker := range []string{".properties.", ".items", ".additionalProperties", ".allOf[", ".oneOf[", ".anyOf["} {
		if strings.Contains(loc, marker) {
			return true
		}
	}
	return false
}

// forEachRootSchema calls fn for every inline schema held by a document
// root slot that isn't itself nested inside another schema. fn receives the
// schema pointer; the slot's own value is never replaced.
func forEachRootSchema(doc *document.Document, fn func(s *document.Schema)) {
	for slot := range document.WalkSchemaSlots(doc) {
		if isNestedLocation(slot.Location) {
			continue
		}
		cur := slot.Get()
		if cur == nil || cur.IsReference() || cur.Schema == nil {
			continue
		}
		fn(cur.Schema)
	}
}

// walkSchemaTree visits root and every schema node reachable from it
// through properties, items, additionalProperties, and allOf/oneOf/anyOf
// composition branches, exactly once each (by identity), applying fn in
// pre-order. $ref branches are leaves — they are never dereferenced.
func walkSchemaTree(root *document.Schema, visited map[*document.Schema]bool, fn func(*document.Schema)) {
	if root == nil || visited[root] {
		return
	}
	visited[root] = true
	fn(root)

	if root.Properties != nil {
		for _, v := range root.Properties.All() {
			if v != nil && !v.IsReference() && v.Schema != nil {
				walkSchemaTree(v.Schema, visited, fn)
			}
		}
	}
	if root.Items != nil && !root.Items.IsReference() && root.Items.Schema != nil {
		walkSchemaTree(root.Items.Schema, visited, fn)
	}
	if root.AdditionalProperties != nil && !root.AdditionalProperties.IsReference() && root.AdditionalProperties.Schema != nil {
		walkSchemaTree(root.AdditionalProperties.Schema, visited, fn)
	}
	for _, list := range [][]*document.SchemaOrRef{root.AllOf, root.OneOf, root.AnyOf} {
		for _, b := range list {
			if b != nil && !b.IsReference() && b.Schema != nil {
				walkSchemaTree(b.Schema, visited, fn)
			}
		}
	}
}

// forEachSchemaNode runs fn once per distinct schema node in the whole
// document, sharing one visited-set across every root so a schema shared
// by more than one slot is still only processed once.
func forEachSchemaNode(doc *document.Document, fn func(*document.Schema)) {
	visited := make(map[*document.Schema]bool)
	forEachRootSchema(doc, func(root *document.Schema) {
		walkSchemaTree(root, visited, fn)
	})
}
